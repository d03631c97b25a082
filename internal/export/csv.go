// internal/export/csv.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"crmdash-service/internal/domain/billing"

	"github.com/shopspring/decimal"
)

// BillingCSV renders the admin billing export. The writer is a manual
// string join, matching the exported file byte-for-byte: header row,
// then one row per subscription, fields quoted only when needed.
func BillingCSV(subs []billing.Subscription) string {
	var b strings.Builder
	b.WriteString("organization,plan,amount_cents,interval,status,period_start,period_end\n")

	for _, s := range subs {
		periodStart := ""
		periodEnd := ""
		if !s.CurrentPeriodStart.IsZero() {
			periodStart = s.CurrentPeriodStart.Format("2006-01-02")
		}
		if !s.CurrentPeriodEnd.IsZero() {
			periodEnd = s.CurrentPeriodEnd.Format("2006-01-02")
		}

		fields := []string{
			csvField(s.OrgName),
			csvField(s.PlanName),
			fmt.Sprintf("%d", s.PlanAmount),
			s.Interval,
			s.Status,
			periodStart,
			periodEnd,
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	return b.String()
}

// csvField quotes a value when it contains a comma, quote or newline.
func csvField(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// ImportResult counts parsed quote rows. Imported stays zero: rows are
// parsed and validated but not persisted (pending product
// clarification of the intended import behavior).
type ImportResult struct {
	OK       int `json:"ok"`
	Failed   int `json:"failed"`
	Imported int `json:"imported"`
}

// ImportQuotes parses a quote CSV (customer_id, description, quantity,
// unit_price) and counts valid and invalid rows without persisting
// anything.
func ImportQuotes(r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return ImportResult{}, nil
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	_ = header

	var result ImportResult
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Failed++
			continue
		}
		if validQuoteRow(record) {
			result.OK++
		} else {
			result.Failed++
		}
	}

	return result, nil
}

func validQuoteRow(record []string) bool {
	if len(record) < 4 {
		return false
	}
	if strings.TrimSpace(record[0]) == "" || strings.TrimSpace(record[1]) == "" {
		return false
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(record[2])); err != nil {
		return false
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(record[3])); err != nil {
		return false
	}
	return true
}
