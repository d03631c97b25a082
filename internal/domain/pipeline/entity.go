// internal/domain/pipeline/entity.go
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stage is a pipeline bucket. The set is owner-extensible: items can
// carry stages outside the enumerated ones, and forward-only movement
// (lead -> opportunity) is advisory, never enforced.
type Stage string

const (
	StageLead        Stage = "lead"
	StageOpportunity Stage = "opportunity"
)

// KnownStages lists the enumerated buckets, in display order.
var KnownStages = []Stage{StageLead, StageOpportunity}

// FinalStatusNoSale marks a lost deal. A nil FinalStatus means the deal
// is still open; any other non-nil value means won.
const FinalStatusNoSale = "No Sale"

type Item struct {
	ID          uuid.UUID
	Title       string
	Stage       Stage
	Value       decimal.Decimal
	Probability string
	ClosingDate *time.Time
	FinalStatus *string
	CustomerID  uuid.UUID
	Customer    *CustomerRef
	CreatedAt   time.Time
}

// CustomerRef is the owning customer's contact summary embedded in a
// pipeline read.
type CustomerRef struct {
	Name    string
	Company string
	Email   string
	Phone   string
}

// Open reports whether the deal has no final outcome yet.
func (i *Item) Open() bool {
	return i.FinalStatus == nil
}

// Lost reports whether the deal closed as a no-sale.
func (i *Item) Lost() bool {
	return i.FinalStatus != nil && *i.FinalStatus == FinalStatusNoSale
}
