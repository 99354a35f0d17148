package platform

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"adflow/internal/core/domain"
)

// Sandbox emulates the ad-network APIs for environments without real
// platform credentials, mirroring the simulation mode of a production
// launcher. It implements both port.AdPlatform and port.MetricsSource.
// All methods are safe for concurrent use.
type Sandbox struct {
	mu        sync.Mutex
	rng       *rand.Rand
	campaigns map[string]*sandboxCampaign
}

type sandboxCampaign struct {
	campaignID  uuid.UUID
	platform    string
	dailyBudget int64
	spendFactor float64 // scaled down by AdjustSpendRate
	paused      bool
}

func NewSandbox() *Sandbox {
	return &Sandbox{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		campaigns: make(map[string]*sandboxCampaign),
	}
}

// Launch registers the campaign and assigns a platform campaign ID. A
// non-positive daily budget is rejected permanently, as the real
// platforms do.
func (s *Sandbox) Launch(ctx context.Context, c domain.Campaign, cr domain.Creative) (*domain.LaunchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.DailyBudget <= 0 {
		return nil, &domain.FatalError{Err: errors.New("platform rejected launch: daily budget must be positive")}
	}
	if len(cr.Content.Headlines) == 0 {
		return nil, &domain.FatalError{Err: errors.New("platform rejected launch: creative has no headline")}
	}

	platformID := fmt.Sprintf("sbx-%s-%s", c.Platform, uuid.NewString()[:8])
	s.mu.Lock()
	s.campaigns[platformID] = &sandboxCampaign{
		campaignID:  c.ID,
		platform:    c.Platform,
		dailyBudget: c.DailyBudget,
		spendFactor: 1.0,
	}
	s.mu.Unlock()

	return &domain.LaunchResult{
		PlatformCampaignID: platformID,
		Platform:           c.Platform,
		LaunchedAt:         time.Now().UTC(),
	}, nil
}

// Pause stops delivery. Pausing an unknown campaign is a permanent
// error; pausing an already-paused one succeeds without effect.
func (s *Sandbox) Pause(ctx context.Context, platformCampaignID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.campaigns[platformCampaignID]
	if !ok {
		return &domain.FatalError{Err: fmt.Errorf("unknown platform campaign %s", platformCampaignID)}
	}
	sc.paused = true
	return nil
}

// AdjustSpendRate scales delivery down by the given fraction.
func (s *Sandbox) AdjustSpendRate(ctx context.Context, platformCampaignID string, reduction float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if reduction <= 0 || reduction >= 1 {
		return &domain.FatalError{Err: fmt.Errorf("invalid spend reduction %.2f", reduction)}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.campaigns[platformCampaignID]
	if !ok {
		return &domain.FatalError{Err: fmt.Errorf("unknown platform campaign %s", platformCampaignID)}
	}
	sc.spendFactor *= 1 - reduction
	return nil
}

// FetchMetrics synthesizes a plausible snapshot proportional to the
// campaign's daily budget and current spend factor. Unlaunched or
// paused campaigns report no data.
func (s *Sandbox) FetchMetrics(ctx context.Context, c domain.Campaign, window time.Duration) (*domain.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.campaigns[c.PlatformCampaignID]
	if !ok || sc.paused {
		return nil, nil
	}

	hours := window.Hours()
	if hours <= 0 {
		hours = 1
	}
	// Roughly spend the daily budget over 24h, jittered +-30%.
	spend := int64(float64(sc.dailyBudget) * (hours / 24) * sc.spendFactor * (0.7 + s.rng.Float64()*0.6))
	if spend <= 0 {
		return nil, nil
	}
	impressions := spend * (8 + s.rng.Int63n(8)) // impressions per cent
	clicks := impressions * int64(5+s.rng.Int63n(30)) / 1000
	conversions := clicks / int64(10+s.rng.Int63n(20))
	revenue := conversions * (2000 + s.rng.Int63n(6000))

	snap := domain.NewMetricsSnapshot(c.ID, sc.platform, impressions, clicks, spend, conversions, revenue, time.Now().UTC())
	return &snap, nil
}
