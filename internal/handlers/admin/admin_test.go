package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"crmdash-service/internal/domain/billing"
	"crmdash-service/internal/domain/ticket"
	"crmdash-service/internal/gateway"
	adminservice "crmdash-service/internal/service/admin"
	billingservice "crmdash-service/internal/service/billing"
	"crmdash-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGateway serves canned rows per table.
type fakeGateway struct {
	tables map[string]string
}

func (f *fakeGateway) Select(_ context.Context, table string, _ gateway.Query, out any) error {
	rows, ok := f.tables[table]
	if !ok {
		rows = "[]"
	}
	return json.Unmarshal([]byte(rows), out)
}

func (f *fakeGateway) Insert(_ context.Context, _ string, _, _ any) error { return nil }
func (f *fakeGateway) Update(_ context.Context, _, _ string, _, _ any) error {
	return nil
}
func (f *fakeGateway) Delete(_ context.Context, _, _ string) error { return nil }
func (f *fakeGateway) RPC(_ context.Context, _ string, _, _ any) error {
	return nil
}

type fakeFunctions struct{}

func (fakeFunctions) Invoke(context.Context, string, map[string]any, any) error { return nil }

func newTestHandler() *AdminHandler {
	gw := &fakeGateway{tables: map[string]string{
		"organizations": `[{"id":"58a1d7e2-9b0f-4f3a-8d2c-6f4e5a7b9c01","name":"Acme Corp"}]`,
		"subscriptions": `[{
			"id": "0b9fbb1e-36f7-4a5f-9a63-2e8f9a3c1d20",
			"org_id": "58a1d7e2-9b0f-4f3a-8d2c-6f4e5a7b9c01",
			"plan_name": "Pro",
			"plan_amount": 4900,
			"interval": "month",
			"status": "active",
			"organizations": {"name": "Acme Corp"}
		}]`,
	}}

	logger := zap.NewNop()
	subs := billingservice.NewSubscriptionService(gw, fakeFunctions{}, logger)
	adminSvc := adminservice.NewService(gw, logger)
	subsStore := store.NewContainer[billing.Subscription]("subscriptions", subs.List, nil, logger)
	dsarStore := store.NewContainer[ticket.DeletionRequest]("deletion_requests", adminSvc.ListDeletionRequests, nil, logger)

	return NewAdminHandler(subs, adminSvc, subsStore, dsarStore)
}

func serve(h *AdminHandler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/billing/stats", h.BillingStats)
	r.GET("/admin/billing/export", h.ExportBilling)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestBillingStatsFetchesOnFirstRead(t *testing.T) {
	h := newTestHandler()

	w := serve(h, "/admin/billing/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Stats struct {
				MRRCents    int64 `json:"mrr_cents"`
				ActiveCount int   `json:"active_count"`
			} `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(4900), body.Data.Stats.MRRCents)
	assert.Equal(t, 1, body.Data.Stats.ActiveCount)
}

func TestExportBillingFetchesOnFirstRead(t *testing.T) {
	h := newTestHandler()

	w := serve(h, "/admin/billing/export")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "billing.csv")
	assert.Contains(t, w.Body.String(), "Acme Corp,Pro,4900,month,active")
}
