// internal/domain/billing/row.go
package billing

import (
	"encoding/json"
	"fmt"
	"time"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentRow is the wire shape of a quote or invoice row. Line items
// are embedded as a JSON array; amounts travel as decimal strings.
type DocumentRow struct {
	ID         string        `json:"id"`
	Number     string        `json:"number"`
	CustomerID string        `json:"customer_id"`
	Lines      []lineItemRow `json:"line_items"`
	Subtotal   json.Number   `json:"subtotal"`
	Tax        json.Number   `json:"tax"`
	Total      json.Number   `json:"total"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

type lineItemRow struct {
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
	UnitPrice   json.Number `json:"unit_price"`
	Total       json.Number `json:"total"`
}

// SubscriptionRow is the wire shape of a subscription record, with the
// owning organization embedded.
type SubscriptionRow struct {
	ID                 string    `json:"id"`
	OrgID              string    `json:"org_id"`
	PlanName           string    `json:"plan_name"`
	PlanAmount         int64     `json:"plan_amount"`
	Interval           string    `json:"interval"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	Org                *struct {
		Name string `json:"name"`
	} `json:"organizations"`
}

func ParseDocumentRow(entity string, r DocumentRow) (Document, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Document{}, &xerrors.SchemaError{Entity: entity, Field: "id", Cause: err}
	}
	customerID, err := uuid.Parse(r.CustomerID)
	if err != nil {
		return Document{}, &xerrors.SchemaError{Entity: entity, Field: "customer_id", Cause: err}
	}

	doc := Document{
		ID:         id,
		Number:     r.Number,
		CustomerID: customerID,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}

	if doc.Subtotal, err = parseAmount(entity, "subtotal", r.Subtotal); err != nil {
		return Document{}, err
	}
	if doc.Tax, err = parseAmount(entity, "tax", r.Tax); err != nil {
		return Document{}, err
	}
	if doc.Total, err = parseAmount(entity, "total", r.Total); err != nil {
		return Document{}, err
	}

	doc.Lines = make([]LineItem, 0, len(r.Lines))
	for _, l := range r.Lines {
		line := LineItem{Description: l.Description}
		if line.Quantity, err = parseAmount(entity, "line_items.quantity", l.Quantity); err != nil {
			return Document{}, err
		}
		if line.UnitPrice, err = parseAmount(entity, "line_items.unit_price", l.UnitPrice); err != nil {
			return Document{}, err
		}
		if line.Total, err = parseAmount(entity, "line_items.total", l.Total); err != nil {
			return Document{}, err
		}
		doc.Lines = append(doc.Lines, line)
	}

	return doc, nil
}

func ParseDocumentRows(entity string, rows []DocumentRow) ([]Document, error) {
	out := make([]Document, 0, len(rows))
	for i, r := range rows {
		d, err := ParseDocumentRow(entity, r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func ParseSubscriptionRow(r SubscriptionRow) (Subscription, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Subscription{}, &xerrors.SchemaError{Entity: "subscription", Field: "id", Cause: err}
	}
	orgID, err := uuid.Parse(r.OrgID)
	if err != nil {
		return Subscription{}, &xerrors.SchemaError{Entity: "subscription", Field: "org_id", Cause: err}
	}

	sub := Subscription{
		ID:                 id,
		OrgID:              orgID,
		PlanName:           r.PlanName,
		PlanAmount:         r.PlanAmount,
		Interval:           r.Interval,
		Status:             r.Status,
		CurrentPeriodStart: r.CurrentPeriodStart,
		CurrentPeriodEnd:   r.CurrentPeriodEnd,
	}
	if r.Org != nil {
		sub.OrgName = r.Org.Name
	}
	return sub, nil
}

func ParseSubscriptionRows(rows []SubscriptionRow) ([]Subscription, error) {
	out := make([]Subscription, 0, len(rows))
	for i, r := range rows {
		s, err := ParseSubscriptionRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func parseAmount(entity, field string, n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, &xerrors.SchemaError{Entity: entity, Field: field, Cause: err}
	}
	return d, nil
}
