// internal/domain/billing/document.go
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote statuses.
const (
	QuoteDraft    = "draft"
	QuoteSent     = "sent"
	QuoteAccepted = "accepted"
	QuoteRejected = "rejected"
	QuoteExpired  = "expired"
)

// Invoice statuses.
const (
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

// LineItem is one ordered line of a quote or invoice. Total is computed
// once at creation (quantity x unit price) and persisted, never
// recomputed on read.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Document is the shared shape of quotes and invoices: a human-readable
// number, ordered line items and persisted totals.
type Document struct {
	ID         uuid.UUID
	Number     string
	CustomerID uuid.UUID
	Lines      []LineItem
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
}

// Totals holds the three computed document amounts.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals derives document totals from its lines at cent
// precision: subtotal = sum(quantity x unit_price), tax = subtotal x
// rate, total = subtotal + tax. Pure; persisted once at creation.
func ComputeTotals(lines []LineItem, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Quantity.Mul(l.UnitPrice))
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// FillLineTotals computes each line's total in place.
func FillLineTotals(lines []LineItem) []LineItem {
	out := make([]LineItem, len(lines))
	for i, l := range lines {
		l.Total = l.Quantity.Mul(l.UnitPrice).Round(2)
		out[i] = l
	}
	return out
}
