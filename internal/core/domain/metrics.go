package domain

import (
	"time"

	"github.com/google/uuid"
)

// MetricsSnapshot is one immutable observation of campaign performance,
// produced by the tracking collaborator. Monetary figures are integer
// units (cents); derived rates are computed once at construction and
// never recomputed.
type MetricsSnapshot struct {
	CampaignID  uuid.UUID `json:"campaign_id"`
	Platform    string    `json:"platform"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Spend       int64     `json:"spend"`
	Conversions int64     `json:"conversions"`
	Revenue     int64     `json:"revenue"`
	CTR         float64   `json:"ctr"`  // clicks / impressions
	CPC         int64     `json:"cpc"`  // spend / clicks, cents
	ROAS        float64   `json:"roas"` // revenue / spend
	ObservedAt  time.Time `json:"observed_at"`
}

// NewMetricsSnapshot fills in the derived rates from the raw counters.
// Zero denominators yield zero rates.
func NewMetricsSnapshot(campaignID uuid.UUID, platform string, impressions, clicks, spend, conversions, revenue int64, at time.Time) MetricsSnapshot {
	m := MetricsSnapshot{
		CampaignID:  campaignID,
		Platform:    platform,
		Impressions: impressions,
		Clicks:      clicks,
		Spend:       spend,
		Conversions: conversions,
		Revenue:     revenue,
		ObservedAt:  at,
	}
	if impressions > 0 {
		m.CTR = float64(clicks) / float64(impressions)
	}
	if clicks > 0 {
		m.CPC = spend / clicks
	}
	if spend > 0 {
		m.ROAS = float64(revenue) / float64(spend)
	}
	return m
}

// Merge combines two snapshots for the same campaign observed on
// different platforms into one cross-platform snapshot.
func (m MetricsSnapshot) Merge(other MetricsSnapshot) MetricsSnapshot {
	return NewMetricsSnapshot(
		m.CampaignID,
		"both",
		m.Impressions+other.Impressions,
		m.Clicks+other.Clicks,
		m.Spend+other.Spend,
		m.Conversions+other.Conversions,
		m.Revenue+other.Revenue,
		m.ObservedAt,
	)
}

// PerformanceLog is one persisted metrics row. The status color is
// computed at write time so history queries do not depend on the
// thresholds in effect when they run.
type PerformanceLog struct {
	ID          uuid.UUID       `json:"id"`
	CampaignID  uuid.UUID       `json:"campaign_id"`
	Snapshot    MetricsSnapshot `json:"snapshot"`
	StatusColor StatusColor     `json:"status_color"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PerformanceSummary aggregates logged metrics over a window.
type PerformanceSummary struct {
	CampaignID uuid.UUID       `json:"campaign_id"`
	Window     time.Duration   `json:"window"`
	DataPoints int             `json:"data_points"`
	Aggregate  MetricsSnapshot `json:"aggregate"`
	Status     StatusColor     `json:"status"`
	LatestAt   time.Time       `json:"latest_at"`
}

// SummarizeMetrics folds logged snapshots into a window summary. The
// aggregate's rates are recomputed from the summed counters.
func SummarizeMetrics(campaignID uuid.UUID, window time.Duration, logs []PerformanceLog, t Thresholds) PerformanceSummary {
	var impressions, clicks, spend, conversions, revenue int64
	var latest time.Time
	for _, l := range logs {
		impressions += l.Snapshot.Impressions
		clicks += l.Snapshot.Clicks
		spend += l.Snapshot.Spend
		conversions += l.Snapshot.Conversions
		revenue += l.Snapshot.Revenue
		if l.CreatedAt.After(latest) {
			latest = l.CreatedAt
		}
	}
	agg := NewMetricsSnapshot(campaignID, "aggregate", impressions, clicks, spend, conversions, revenue, latest)
	return PerformanceSummary{
		CampaignID: campaignID,
		Window:     window,
		DataPoints: len(logs),
		Aggregate:  agg,
		Status:     ClassifyPerformance(agg, t),
		LatestAt:   latest,
	}
}
