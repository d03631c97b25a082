package view

import (
	"testing"
	"time"

	"crmdash-service/internal/domain/pipeline"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func deal(title string, stage pipeline.Stage, value string, created time.Time) pipeline.Item {
	return pipeline.Item{
		ID:        uuid.New(),
		Title:     title,
		Stage:     stage,
		Value:     decimal.RequireFromString(value),
		CreatedAt: created,
	}
}

func TestStageGroups(t *testing.T) {
	now := time.Now()

	t.Run("partitions into enumerated buckets", func(t *testing.T) {
		items := []pipeline.Item{
			deal("a", pipeline.StageLead, "100", now),
			deal("b", pipeline.StageOpportunity, "150", now),
			deal("c", pipeline.StageOpportunity, "100", now),
		}

		groups := StageGroups(items)
		require.Len(t, groups, 2)

		assert.Equal(t, pipeline.StageLead, groups[0].Stage)
		assert.Equal(t, 1, groups[0].Count)
		assert.True(t, groups[0].Value.Equal(decimal.NewFromInt(100)))

		assert.Equal(t, pipeline.StageOpportunity, groups[1].Stage)
		assert.Equal(t, 2, groups[1].Count)
		assert.True(t, groups[1].Value.Equal(decimal.NewFromInt(250)))
	})

	t.Run("drops unknown stages from bucket totals", func(t *testing.T) {
		items := []pipeline.Item{
			deal("a", pipeline.StageLead, "100", now),
			deal("b", "negotiation", "999", now),
		}

		groups := StageGroups(items)
		require.Len(t, groups, 2)
		assert.Equal(t, 1, groups[0].Count)
		assert.Equal(t, 0, groups[1].Count)
	})

	t.Run("lost deals still count in buckets", func(t *testing.T) {
		lost := deal("gone", pipeline.StageOpportunity, "50", now)
		lost.FinalStatus = stringPtr(pipeline.FinalStatusNoSale)

		groups := StageGroups([]pipeline.Item{lost})
		assert.Equal(t, 1, groups[1].Count)
		assert.True(t, groups[1].Value.Equal(decimal.NewFromInt(50)))
	})

	t.Run("empty collection yields zeroed buckets", func(t *testing.T) {
		groups := StageGroups(nil)
		require.Len(t, groups, 2)
		for _, g := range groups {
			assert.Equal(t, 0, g.Count)
			assert.True(t, g.Value.IsZero())
		}
	})
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		oldValue float64
		newValue float64
		want     float64
	}{
		{"growth", 100, 150, 50},
		{"decline", 200, 100, -50},
		{"flat", 100, 100, 0},
		{"zero old with new activity", 0, 50, 100},
		{"zero old and zero new", 0, 0, 0},
		{"zero new", 80, 0, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentChange(tt.oldValue, tt.newValue), 0.0001)
		})
	}
}

func TestMonthOverMonth(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
	older := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partitions by calendar month", func(t *testing.T) {
		items := []pipeline.Item{
			deal("this", pipeline.StageLead, "300", thisMonth),
			deal("last", pipeline.StageLead, "200", lastMonth),
			deal("ancient", pipeline.StageLead, "999", older),
		}

		cmp := MonthOverMonth(items, now)
		assert.True(t, cmp.ThisMonth.Equal(decimal.NewFromInt(300)))
		assert.True(t, cmp.LastMonth.Equal(decimal.NewFromInt(200)))
		assert.InDelta(t, 50, cmp.PercentChange, 0.0001)
	})

	t.Run("lost deals are excluded", func(t *testing.T) {
		lost := deal("lost", pipeline.StageLead, "500", thisMonth)
		lost.FinalStatus = stringPtr(pipeline.FinalStatusNoSale)

		cmp := MonthOverMonth([]pipeline.Item{lost}, now)
		assert.True(t, cmp.ThisMonth.IsZero())
		assert.InDelta(t, 0, cmp.PercentChange, 0.0001)
	})

	t.Run("future-dated items are excluded from both buckets", func(t *testing.T) {
		future := time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)
		items := []pipeline.Item{
			deal("this", pipeline.StageLead, "300", thisMonth),
			deal("future", pipeline.StageLead, "900", future),
		}

		cmp := MonthOverMonth(items, now)
		assert.True(t, cmp.ThisMonth.Equal(decimal.NewFromInt(300)))
		assert.True(t, cmp.LastMonth.IsZero())
	})

	t.Run("empty previous month reports full growth", func(t *testing.T) {
		items := []pipeline.Item{deal("this", pipeline.StageLead, "10", thisMonth)}
		cmp := MonthOverMonth(items, now)
		assert.InDelta(t, 100, cmp.PercentChange, 0.0001)
	})
}

func TestAverageOpenDealValue(t *testing.T) {
	now := time.Now()

	t.Run("averages open deals only", func(t *testing.T) {
		won := deal("won", pipeline.StageOpportunity, "1000", now)
		won.FinalStatus = stringPtr("Won")

		items := []pipeline.Item{
			deal("a", pipeline.StageLead, "100", now),
			deal("b", pipeline.StageLead, "200", now),
			won,
		}

		avg := AverageOpenDealValue(items)
		assert.True(t, avg.Equal(decimal.NewFromInt(150)), "got %s", avg)
	})

	t.Run("empty open set yields zero", func(t *testing.T) {
		assert.True(t, AverageOpenDealValue(nil).IsZero())
	})

	t.Run("rounds to two decimal places", func(t *testing.T) {
		items := []pipeline.Item{
			deal("a", pipeline.StageLead, "100", now),
			deal("b", pipeline.StageLead, "100", now),
			deal("c", pipeline.StageLead, "101", now),
		}
		assert.Equal(t, "100.33", AverageOpenDealValue(items).String())
	})
}

func TestSearch(t *testing.T) {
	now := time.Now()

	withCustomer := deal("Renewal", pipeline.StageOpportunity, "750", now)
	withCustomer.Customer = &pipeline.CustomerRef{
		Name:    "Jane Doe",
		Company: "Acme Corp",
		Email:   "jane@acme.test",
		Phone:   "555-0101",
	}
	items := []pipeline.Item{
		deal("Website rebuild", pipeline.StageLead, "1200", now),
		withCustomer,
	}

	t.Run("matches customer company case-insensitively", func(t *testing.T) {
		got := Search(items, "acme")
		require.Len(t, got, 1)
		assert.Equal(t, "Renewal", got[0].Title)
	})

	t.Run("matches title", func(t *testing.T) {
		got := Search(items, "website")
		require.Len(t, got, 1)
	})

	t.Run("matches value as string", func(t *testing.T) {
		got := Search(items, "750")
		require.Len(t, got, 1)
		assert.Equal(t, "Renewal", got[0].Title)
	})

	t.Run("blank query keeps everything", func(t *testing.T) {
		assert.Len(t, Search(items, "   "), 2)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, Search(items, "zzz"))
	})
}

func TestSortItems(t *testing.T) {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	items := []pipeline.Item{
		deal("b", pipeline.StageLead, "200", base.Add(2*time.Hour)),
		deal("a", pipeline.StageLead, "100", base.Add(1*time.Hour)),
		deal("c", pipeline.StageLead, "300", base.Add(3*time.Hour)),
	}

	t.Run("by value descending", func(t *testing.T) {
		got := SortItems(items, SortByValue, true)
		assert.Equal(t, "c", got[0].Title)
		assert.Equal(t, "a", got[2].Title)
	})

	t.Run("by created_at ascending", func(t *testing.T) {
		got := SortItems(items, SortByCreatedAt, false)
		assert.Equal(t, "a", got[0].Title)
		assert.Equal(t, "c", got[2].Title)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		_ = SortItems(items, SortByValue, false)
		assert.Equal(t, "b", items[0].Title)
	})

	t.Run("ties keep fetch order", func(t *testing.T) {
		tied := []pipeline.Item{
			deal("first", pipeline.StageLead, "100", base),
			deal("second", pipeline.StageLead, "100", base),
		}
		got := SortItems(tied, SortByValue, false)
		assert.Equal(t, "first", got[0].Title)
		assert.Equal(t, "second", got[1].Title)
	})
}
