// internal/domain/billing/subscription.go
package billing

import (
	"time"

	"github.com/google/uuid"
)

// Subscription statuses, mirroring the payments provider's states.
const (
	SubActive   = "active"
	SubCanceled = "canceled"
	SubPastDue  = "past_due"
	SubTrialing = "trialing"
)

const (
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// FreeTierPlan names the synthesized plan for organizations with no
// paid record.
const FreeTierPlan = "Free"

// Subscription is an organization's billing record. PlanAmount is in
// cents.
type Subscription struct {
	ID                 uuid.UUID
	OrgID              uuid.UUID
	OrgName            string
	PlanName           string
	PlanAmount         int64
	Interval           string
	Status             string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	FreeTier           bool
}

// FreeTierFor synthesizes the pseudo-subscription shown for an
// organization that has no paid record. It is never persisted.
func FreeTierFor(orgID uuid.UUID, orgName string) Subscription {
	return Subscription{
		OrgID:    orgID,
		OrgName:  orgName,
		PlanName: FreeTierPlan,
		Interval: IntervalMonth,
		Status:   SubActive,
		FreeTier: true,
	}
}

// MonthlyCents normalizes the plan amount to a monthly figure for MRR.
func (s Subscription) MonthlyCents() int64 {
	if s.Interval == IntervalYear {
		return s.PlanAmount / 12
	}
	return s.PlanAmount
}
