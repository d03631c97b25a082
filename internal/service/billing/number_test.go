package billing

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"crmdash-service/internal/gateway"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGateway answers Select with canned JSON and records mutations.
type fakeGateway struct {
	selectFn func(table string, q gateway.Query, out any) error
	inserted []any
}

func (f *fakeGateway) Select(_ context.Context, table string, q gateway.Query, out any) error {
	if f.selectFn == nil {
		return nil
	}
	return f.selectFn(table, q, out)
}

func (f *fakeGateway) Insert(_ context.Context, _ string, body, _ any) error {
	f.inserted = append(f.inserted, body)
	return nil
}

func (f *fakeGateway) Update(_ context.Context, _, _ string, _, _ any) error { return nil }
func (f *fakeGateway) Delete(_ context.Context, _, _ string) error          { return nil }

func numbersResponse(t *testing.T, out any, numbers ...string) {
	t.Helper()
	rows := make([]map[string]string, len(numbers))
	for i, n := range numbers {
		rows[i] = map[string]string{"number": n}
	}
	raw, err := json.Marshal(rows)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

var sixDigit = regexp.MustCompile(`^QUO-\d{6}$`)

func TestNextNumber(t *testing.T) {
	rate := decimal.RequireFromString("0.10")

	t.Run("increments the latest number", func(t *testing.T) {
		gw := &fakeGateway{selectFn: func(_ string, _ gateway.Query, out any) error {
			numbersResponse(t, out, "QUO-000042")
			return nil
		}}
		svc := NewQuoteService(gw, zap.NewNop(), rate)

		assert.Equal(t, "QUO-000043", svc.NextNumber(context.Background()))
	})

	t.Run("no existing records falls back to a timestamp suffix", func(t *testing.T) {
		gw := &fakeGateway{selectFn: func(_ string, _ gateway.Query, out any) error {
			numbersResponse(t, out)
			return nil
		}}
		svc := NewQuoteService(gw, zap.NewNop(), rate)

		assert.Regexp(t, sixDigit, svc.NextNumber(context.Background()))
	})

	t.Run("lookup failure falls back instead of erroring", func(t *testing.T) {
		gw := &fakeGateway{selectFn: func(_ string, _ gateway.Query, _ any) error {
			return errors.New("backend unavailable")
		}}
		svc := NewQuoteService(gw, zap.NewNop(), rate)

		assert.Regexp(t, sixDigit, svc.NextNumber(context.Background()))
	})

	t.Run("malformed latest number falls back", func(t *testing.T) {
		gw := &fakeGateway{selectFn: func(_ string, _ gateway.Query, out any) error {
			numbersResponse(t, out, "QUO-not-a-number")
			return nil
		}}
		svc := NewQuoteService(gw, zap.NewNop(), rate)

		assert.Regexp(t, sixDigit, svc.NextNumber(context.Background()))
	})

	t.Run("invoice prefix is independent", func(t *testing.T) {
		gw := &fakeGateway{selectFn: func(_ string, _ gateway.Query, out any) error {
			numbersResponse(t, out, "INV-000009")
			return nil
		}}
		svc := NewInvoiceService(gw, zap.NewNop(), rate)

		assert.Equal(t, "INV-000010", svc.NextNumber(context.Background()))
	})
}

func TestTrailingInt(t *testing.T) {
	tests := []struct {
		number string
		prefix string
		want   int
		ok     bool
	}{
		{"QUO-000042", "QUO-", 42, true},
		{"QUO-999999", "QUO-", 999999, true},
		{"INV-000001", "QUO-", 0, false},
		{"QUO-abc", "QUO-", 0, false},
		{"QUO--12", "QUO-", 0, false},
		{"", "QUO-", 0, false},
	}
	for _, tt := range tests {
		n, ok := trailingInt(tt.number, tt.prefix)
		assert.Equal(t, tt.ok, ok, tt.number)
		if tt.ok {
			assert.Equal(t, tt.want, n, tt.number)
		}
	}
}
