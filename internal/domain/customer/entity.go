// internal/domain/customer/entity.go
package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind separates the two contact tables, which share one shape.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindSupplier Kind = "supplier"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Customer is a CRM contact. TotalSpent is a denormalized accumulator
// maintained by the backend; it is never recomputed here. Deleting a
// customer cascade-deletes its pipeline items on the backend side.
type Customer struct {
	ID         uuid.UUID
	Name       string
	Company    string
	Email      string
	Phone      string
	Address    string
	Status     string
	TotalSpent decimal.Decimal
	CreatedAt  time.Time
}
