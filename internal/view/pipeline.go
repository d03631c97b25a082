// internal/view/pipeline.go
package view

import (
	"sort"
	"strings"
	"time"

	"crmdash-service/internal/domain/pipeline"

	"github.com/shopspring/decimal"
)

// StageGroup is one pipeline bucket: per-stage count and summed value.
type StageGroup struct {
	Stage pipeline.Stage  `json:"stage"`
	Count int             `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// StageGroups partitions items into the enumerated stage buckets. Items
// in unknown stages are dropped from the bucket totals but stay in the
// raw collection; lost ("No Sale") items still count here, they are only
// excluded from the month-over-month change.
func StageGroups(items []pipeline.Item) []StageGroup {
	groups := make([]StageGroup, len(pipeline.KnownStages))
	index := make(map[pipeline.Stage]int, len(pipeline.KnownStages))
	for i, s := range pipeline.KnownStages {
		groups[i] = StageGroup{Stage: s, Value: decimal.Zero}
		index[s] = i
	}

	for _, item := range items {
		i, ok := index[item.Stage]
		if !ok {
			continue
		}
		groups[i].Count++
		groups[i].Value = groups[i].Value.Add(item.Value)
	}

	return groups
}

// PercentChange computes the month-over-month percentage. The zero-old
// guard is deliberate and load-bearing: a previous month of zero yields
// 100 when anything was added and 0 otherwise, never a division error.
func PercentChange(oldValue, newValue float64) float64 {
	if oldValue == 0 {
		if newValue > 0 {
			return 100
		}
		return 0
	}
	return (newValue - oldValue) / oldValue * 100
}

// MonthComparison is the this-month / previous-month value summary.
type MonthComparison struct {
	ThisMonth     decimal.Decimal `json:"this_month"`
	LastMonth     decimal.Decimal `json:"last_month"`
	PercentChange float64         `json:"percentage_change"`
}

// MonthOverMonth sums item values created in the current calendar month
// against the previous calendar month, relative to now. Lost deals are
// excluded from both sums.
func MonthOverMonth(items []pipeline.Item, now time.Time) MonthComparison {
	thisStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastStart := thisStart.AddDate(0, -1, 0)
	nextStart := thisStart.AddDate(0, 1, 0)

	thisMonth := decimal.Zero
	lastMonth := decimal.Zero
	for _, item := range items {
		if item.Lost() {
			continue
		}
		created := item.CreatedAt.In(now.Location())
		switch {
		case !created.Before(nextStart):
			// future-dated, outside the comparison window
		case !created.Before(thisStart):
			thisMonth = thisMonth.Add(item.Value)
		case !created.Before(lastStart):
			lastMonth = lastMonth.Add(item.Value)
		}
	}

	return MonthComparison{
		ThisMonth:     thisMonth,
		LastMonth:     lastMonth,
		PercentChange: PercentChange(lastMonth.InexactFloat64(), thisMonth.InexactFloat64()),
	}
}

// AverageOpenDealValue averages the value of open deals only. An empty
// open set yields exactly zero, never NaN.
func AverageOpenDealValue(items []pipeline.Item) decimal.Decimal {
	sum := decimal.Zero
	count := 0
	for _, item := range items {
		if !item.Open() {
			continue
		}
		sum = sum.Add(item.Value)
		count++
	}
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// MatchesQuery reports whether any searchable field contains the query,
// case-insensitively: customer name/company/email/phone, title,
// probability label, value as a string, and the final status.
func MatchesQuery(item pipeline.Item, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	fields := []string{
		item.Title,
		item.Probability,
		item.Value.String(),
	}
	if item.FinalStatus != nil {
		fields = append(fields, *item.FinalStatus)
	}
	if item.Customer != nil {
		fields = append(fields,
			item.Customer.Name,
			item.Customer.Company,
			item.Customer.Email,
			item.Customer.Phone,
		)
	}

	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Search filters the collection, preserving fetch order.
func Search(items []pipeline.Item, query string) []pipeline.Item {
	out := make([]pipeline.Item, 0, len(items))
	for _, item := range items {
		if MatchesQuery(item, query) {
			out = append(out, item)
		}
	}
	return out
}

// Sort keys.
const (
	SortByCreatedAt = "created_at"
	SortByValue     = "dollar_value"
)

// SortItems returns a sorted copy. The sort is stable so ties keep the
// underlying fetch order.
func SortItems(items []pipeline.Item, key string, descending bool) []pipeline.Item {
	out := make([]pipeline.Item, len(items))
	copy(out, items)

	less := func(a, b pipeline.Item) bool {
		switch key {
		case SortByValue:
			return a.Value.LessThan(b.Value)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
