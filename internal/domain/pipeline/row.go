// internal/domain/pipeline/row.go
package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Row is the wire shape of a pipeline record. Monetary values travel as
// decimal strings; json.Number also tolerates backends that emit bare
// numbers.
type Row struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Stage              string       `json:"stage"`
	DollarValue        json.Number  `json:"dollar_value"`
	ClosingProbability string       `json:"closing_probability"`
	ClosingDate        *string      `json:"closing_date"`
	FinalStatus        *string      `json:"final_status"`
	CustomerID         string       `json:"customer_id"`
	Customer           *customerRow `json:"customers"`
	CreatedAt          time.Time    `json:"created_at"`
}

type customerRow struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// ParseRow validates the wire shape into a domain Item. Anything
// unexpected fails with SchemaError instead of being silently cast.
func ParseRow(r Row) (Item, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Item{}, &xerrors.SchemaError{Entity: "pipeline", Field: "id", Cause: err}
	}

	value, err := decimal.NewFromString(r.DollarValue.String())
	if err != nil {
		return Item{}, &xerrors.SchemaError{Entity: "pipeline", Field: "dollar_value", Cause: err}
	}

	customerID, err := uuid.Parse(r.CustomerID)
	if err != nil {
		return Item{}, &xerrors.SchemaError{Entity: "pipeline", Field: "customer_id", Cause: err}
	}

	item := Item{
		ID:          id,
		Title:       r.Title,
		Stage:       Stage(r.Stage),
		Value:       value,
		Probability: r.ClosingProbability,
		FinalStatus: r.FinalStatus,
		CustomerID:  customerID,
		CreatedAt:   r.CreatedAt,
	}

	if r.ClosingDate != nil && *r.ClosingDate != "" {
		d, err := time.Parse("2006-01-02", *r.ClosingDate)
		if err != nil {
			return Item{}, &xerrors.SchemaError{Entity: "pipeline", Field: "closing_date", Cause: err}
		}
		item.ClosingDate = &d
	}

	if r.Customer != nil {
		item.Customer = &CustomerRef{
			Name:    r.Customer.Name,
			Company: r.Customer.Company,
			Email:   r.Customer.Email,
			Phone:   r.Customer.Phone,
		}
	}

	return item, nil
}

// ParseRows parses a fetched collection, preserving fetch order.
func ParseRows(rows []Row) ([]Item, error) {
	items := make([]Item, 0, len(rows))
	for i, r := range rows {
		item, err := ParseRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
