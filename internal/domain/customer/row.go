// internal/domain/customer/row.go
package customer

import (
	"encoding/json"
	"fmt"
	"time"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Row struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Company    string      `json:"company"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	Status     string      `json:"status"`
	TotalSpent json.Number `json:"total_spent"`
	CreatedAt  time.Time   `json:"created_at"`
}

func ParseRow(r Row) (Customer, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Customer{}, &xerrors.SchemaError{Entity: "customer", Field: "id", Cause: err}
	}

	spent := decimal.Zero
	if r.TotalSpent != "" {
		spent, err = decimal.NewFromString(r.TotalSpent.String())
		if err != nil {
			return Customer{}, &xerrors.SchemaError{Entity: "customer", Field: "total_spent", Cause: err}
		}
	}

	return Customer{
		ID:         id,
		Name:       r.Name,
		Company:    r.Company,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		Status:     r.Status,
		TotalSpent: spent,
		CreatedAt:  r.CreatedAt,
	}, nil
}

func ParseRows(rows []Row) ([]Customer, error) {
	out := make([]Customer, 0, len(rows))
	for i, r := range rows {
		c, err := ParseRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
