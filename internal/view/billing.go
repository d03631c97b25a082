// internal/view/billing.go
package view

import (
	"crmdash-service/internal/domain/billing"
)

// BillingStats is the admin console revenue summary. Amounts are in
// cents; churn is a percentage.
type BillingStats struct {
	MRRCents      int64   `json:"mrr_cents"`
	ARRCents      int64   `json:"arr_cents"`
	ActiveCount   int     `json:"active_count"`
	TrialingCount int     `json:"trialing_count"`
	PastDueCount  int     `json:"past_due_count"`
	CanceledCount int     `json:"canceled_count"`
	FreeTierCount int     `json:"free_tier_count"`
	ChurnRate     float64 `json:"churn_rate"`
}

// ComputeBillingStats derives MRR/ARR/churn from the subscription
// collection. MRR sums monthly-normalized amounts of active paid
// subscriptions; synthesized free-tier entries count separately. Churn
// is canceled over active-plus-canceled, zero when there is nothing to
// divide.
func ComputeBillingStats(subs []billing.Subscription) BillingStats {
	var stats BillingStats
	for _, s := range subs {
		if s.FreeTier {
			stats.FreeTierCount++
			continue
		}
		switch s.Status {
		case billing.SubActive:
			stats.ActiveCount++
			stats.MRRCents += s.MonthlyCents()
		case billing.SubTrialing:
			stats.TrialingCount++
		case billing.SubPastDue:
			stats.PastDueCount++
			stats.MRRCents += s.MonthlyCents()
		case billing.SubCanceled:
			stats.CanceledCount++
		}
	}

	stats.ARRCents = stats.MRRCents * 12

	denominator := stats.ActiveCount + stats.CanceledCount
	if denominator > 0 {
		stats.ChurnRate = float64(stats.CanceledCount) / float64(denominator) * 100
	}

	return stats
}
