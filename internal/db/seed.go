package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns with briefs, one approved creative each
// and a short tail of performance rows. Intended for local development
// against the sandbox ad platform. Campaign ids are derived from the
// campaign name so repeated runs are no-ops.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	products := []struct {
		name      string
		desc      string
		interests []string
	}{
		{"EcoCharge Power Bank", "Solar-assisted power bank for commuters and travelers", []string{"travel", "gadgets"}},
		{"TrailBlend Coffee", "Single-origin coffee roasted for outdoor enthusiasts", []string{"hiking", "coffee"}},
		{"FlexDesk Standing Desk", "Height-adjustable desk built for remote workers", []string{"home_office", "ergonomics"}},
	}

	for i, p := range products {
		campaignID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(p.name))
		brief := map[string]any{
			"product_name":        p.name,
			"product_description": p.desc,
			"selling_points":      []string{"premium quality", "fair price"},
			"special_offer":       "20% off this week",
			"brand_tone":          "friendly",
			"landing_url":         fmt.Sprintf("https://example.com/products/%d", i+1),
			"audience": map[string]any{
				"languages": []string{"en"},
				"geos":      []string{"US", "CA"},
				"age_min":   25,
				"age_max":   54,
				"interests": p.interests,
			},
		}
		briefJSON, _ := json.Marshal(brief)
		start := time.Now().AddDate(0, 0, -3)
		end := time.Now().AddDate(0, 1, 0)
		dailyBudget := int64(5000)   // 50.00
		totalBudget := int64(150000) // 1500.00
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, name, objective, platform, daily_budget, total_budget, status, platform_campaign_id, brief, start_date, end_date, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,now(),now()) ON CONFLICT DO NOTHING`,
			campaignID, p.name+" Launch", "conversions", "meta", dailyBudget, totalBudget,
			"active", fmt.Sprintf("sbx-meta-%08d", i+1), briefJSON, start, end)
		if err != nil {
			return err
		}

		creativeID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(p.name+"/creative"))
		content := map[string]any{
			"headlines":      []string{p.name + " - Premium Quality", "Discover " + p.name},
			"description":    fmt.Sprintf("%s. 20%% off this week.", p.name),
			"call_to_action": "Shop Now",
			"generator":      "template",
		}
		contentJSON, _ := json.Marshal(content)
		_, err = db.Exec(ctx, `INSERT INTO creatives (id, campaign_id, content, image, status, created_at, updated_at)
VALUES ($1,$2,$3,NULL,'approved',now(),now()) ON CONFLICT DO NOTHING`, creativeID, campaignID, contentJSON)
		if err != nil {
			return err
		}

		// a day of hourly metrics so the dashboards have something to show
		for h := 24; h > 0; h-- {
			impressions := int64(2000 + r.Intn(3000))
			clicks := impressions * int64(15+r.Intn(25)) / 1000
			spend := clicks * int64(80+r.Intn(120))
			conversions := clicks / int64(8+r.Intn(8))
			revenue := conversions * int64(3000+r.Intn(4000))
			var ctr float64
			if impressions > 0 {
				ctr = float64(clicks) / float64(impressions)
			}
			var cpc int64
			if clicks > 0 {
				cpc = spend / clicks
			}
			var roas float64
			if spend > 0 {
				roas = float64(revenue) / float64(spend)
			}
			_, err = db.Exec(ctx, `INSERT INTO performance_logs
    (id, campaign_id, platform, impressions, clicks, spend, conversions, revenue, ctr, cpc, roas, status_color, created_at)
VALUES ($1,$2,'meta',$3,$4,$5,$6,$7,$8,$9,$10,'green',$11) ON CONFLICT DO NOTHING`,
				uuid.New(), campaignID, impressions, clicks, spend, conversions, revenue,
				ctr, cpc, roas, time.Now().Add(-time.Duration(h)*time.Hour))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
