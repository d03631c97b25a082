package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(qty, price string) LineItem {
	return LineItem{
		Description: "item",
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestComputeTotals(t *testing.T) {
	rate := decimal.RequireFromString("0.10")

	t.Run("subtotal is the sum of quantity times unit price", func(t *testing.T) {
		totals := ComputeTotals([]LineItem{
			line("2", "10.00"),
			line("1", "5.50"),
		}, rate)

		assert.Equal(t, "25.5", totals.Subtotal.String())
		assert.Equal(t, "2.55", totals.Tax.String())
		assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
	})

	t.Run("rounds to cent precision", func(t *testing.T) {
		totals := ComputeTotals([]LineItem{line("3", "0.333")}, rate)
		assert.Equal(t, "1", totals.Subtotal.String())
		assert.Equal(t, "0.1", totals.Tax.String())
	})

	t.Run("no lines yields zero totals", func(t *testing.T) {
		totals := ComputeTotals(nil, rate)
		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Total.IsZero())
	})
}

func TestFillLineTotals(t *testing.T) {
	lines := FillLineTotals([]LineItem{line("4", "2.50"), line("1.5", "3")})
	assert.Equal(t, "10", lines[0].Total.String())
	assert.Equal(t, "4.5", lines[1].Total.String())
}

func TestMonthlyCents(t *testing.T) {
	monthly := Subscription{PlanAmount: 2900, Interval: IntervalMonth}
	assert.Equal(t, int64(2900), monthly.MonthlyCents())

	yearly := Subscription{PlanAmount: 120000, Interval: IntervalYear}
	assert.Equal(t, int64(10000), yearly.MonthlyCents())
}
