// internal/service/billing/number.go
package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"crmdash-service/internal/gateway"

	"go.uber.org/zap"
)

// NextNumber generates the next human-readable document number: it
// reads the most recent record ordered by number descending, parses the
// trailing integer and increments it, zero-padded to six digits. When
// the read fails, no record exists, or the last number does not parse,
// it falls back to a timestamp-derived six-digit suffix instead of
// failing. Never returns an error.
func (s *DocumentService) NextNumber(ctx context.Context) string {
	var rows []struct {
		Number string `json:"number"`
	}
	q := gateway.Query{
		Select: "number",
		Order:  gateway.Desc("number"),
		Limit:  1,
	}

	if err := s.gw.Select(ctx, s.table, q, &rows); err != nil {
		s.logger.Warn("number lookup failed, using timestamp fallback",
			zap.String("table", s.table),
			zap.Error(err),
		)
		return s.fallbackNumber()
	}
	if len(rows) == 0 {
		return s.fallbackNumber()
	}

	last, ok := trailingInt(rows[0].Number, s.prefix)
	if !ok {
		s.logger.Warn("malformed document number, using timestamp fallback",
			zap.String("number", rows[0].Number),
		)
		return s.fallbackNumber()
	}

	return fmt.Sprintf("%s%06d", s.prefix, last+1)
}

// trailingInt parses the integer after the prefix; "QUO-000042" -> 42.
func trailingInt(number, prefix string) (int, bool) {
	if !strings.HasPrefix(number, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// fallbackNumber derives a non-sequential six-digit suffix from the
// current time.
func (s *DocumentService) fallbackNumber() string {
	return fmt.Sprintf("%s%06d", s.prefix, time.Now().UnixMilli()%1000000)
}
