package pipeline

import (
	"encoding/json"
	"testing"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	t.Run("parses a full record with an embedded customer", func(t *testing.T) {
		closing := "2026-09-15"
		r := Row{
			ID:                 "0b9fbb1e-36f7-4a5f-9a63-2e8f9a3c1d20",
			Title:              "Renewal",
			Stage:              "opportunity",
			DollarValue:        json.Number("1250.50"),
			ClosingProbability: "high",
			ClosingDate:        &closing,
			CustomerID:         "58a1d7e2-9b0f-4f3a-8d2c-6f4e5a7b9c01",
			Customer: &customerRow{
				Name:    "Jane Doe",
				Company: "Acme Corp",
			},
		}

		item, err := ParseRow(r)
		require.NoError(t, err)
		assert.Equal(t, "Renewal", item.Title)
		assert.Equal(t, StageOpportunity, item.Stage)
		assert.Equal(t, "1250.5", item.Value.String())
		require.NotNil(t, item.ClosingDate)
		assert.Equal(t, "Acme Corp", item.Customer.Company)
		assert.True(t, item.Open())
	})

	t.Run("malformed value is a schema error, not a silent cast", func(t *testing.T) {
		r := Row{
			ID:          "0b9fbb1e-36f7-4a5f-9a63-2e8f9a3c1d20",
			DollarValue: json.Number("abc"),
			CustomerID:  "58a1d7e2-9b0f-4f3a-8d2c-6f4e5a7b9c01",
		}

		_, err := ParseRow(r)
		var schemaErr *xerrors.SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "dollar_value", schemaErr.Field)
	})

	t.Run("unknown stage is carried through", func(t *testing.T) {
		r := Row{
			ID:          "0b9fbb1e-36f7-4a5f-9a63-2e8f9a3c1d20",
			Stage:       "negotiation",
			DollarValue: json.Number("10"),
			CustomerID:  "58a1d7e2-9b0f-4f3a-8d2c-6f4e5a7b9c01",
		}

		item, err := ParseRow(r)
		require.NoError(t, err)
		assert.Equal(t, Stage("negotiation"), item.Stage)
	})
}

func TestParseRowsStopsAtFirstBadRow(t *testing.T) {
	rows := []Row{
		{ID: "0b9fbb1e-36f7-4a5f-9a63-2e8f9a3c1d20", DollarValue: json.Number("1"), CustomerID: "58a1d7e2-9b0f-4f3a-8d2c-6f4e5a7b9c01"},
		{ID: "not-a-uuid", DollarValue: json.Number("1"), CustomerID: "58a1d7e2-9b0f-4f3a-8d2c-6f4e5a7b9c01"},
	}
	_, err := ParseRows(rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}
