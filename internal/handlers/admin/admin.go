// internal/handlers/admin/admin_handler.go
package admin

import (
	"context"
	"net/http"

	domain "crmdash-service/internal/domain/billing"
	"crmdash-service/internal/domain/ticket"
	"crmdash-service/internal/export"
	"crmdash-service/internal/pkg/response"
	adminservice "crmdash-service/internal/service/admin"
	billingservice "crmdash-service/internal/service/billing"
	"crmdash-service/internal/store"
	"crmdash-service/internal/view"

	"github.com/gin-gonic/gin"
)

// AdminHandler backs the admin console: subscription billing, refunds,
// billing stats and export, user listing and the DSAR queue.
type AdminHandler struct {
	subs      *billingservice.SubscriptionService
	adminSvc  *adminservice.Service
	subsStore *store.Container[domain.Subscription]
	dsarStore *store.Container[ticket.DeletionRequest]
}

func NewAdminHandler(
	subs *billingservice.SubscriptionService,
	adminSvc *adminservice.Service,
	subsStore *store.Container[domain.Subscription],
	dsarStore *store.Container[ticket.DeletionRequest],
) *AdminHandler {
	return &AdminHandler{
		subs:      subs,
		adminSvc:  adminSvc,
		subsStore: subsStore,
		dsarStore: dsarStore,
	}
}

// ========== Subscriptions ==========

func (h *AdminHandler) ListSubscriptions(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.subsStore.Snapshot().Items) == 0 {
		h.subsStore.FetchAll(c.Request.Context())
	}
	snap := h.subsStore.Snapshot()

	response.Success(c, http.StatusOK, "subscriptions", gin.H{
		"items":   snap.Items,
		"loading": snap.Loading,
		"error":   snap.Err,
	})
}

func (h *AdminHandler) ChangeSubscription(c *gin.Context) {
	var req domain.ChangeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	orgID := c.Param("org_id")
	_ = h.subsStore.Mutate(c.Request.Context(), func(ctx context.Context) error {
		return h.subs.Change(ctx, orgID, &req)
	})

	snap := h.subsStore.Snapshot()
	response.Success(c, http.StatusOK, "subscription changed", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

func (h *AdminHandler) CancelSubscription(c *gin.Context) {
	orgID := c.Param("org_id")
	err := h.subsStore.Mutate(c.Request.Context(), func(ctx context.Context) error {
		return h.subs.Cancel(ctx, orgID)
	})
	if err != nil {
		response.Error(c, http.StatusBadGateway, store.HumanMessage(err), err)
		return
	}
	response.Success(c, http.StatusOK, "subscription canceled", nil)
}

// RefundInvoice is a direct user action; its failure surfaces here.
func (h *AdminHandler) RefundInvoice(c *gin.Context) {
	if err := h.subs.RefundInvoice(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, http.StatusBadGateway, store.HumanMessage(err), err)
		return
	}
	response.Success(c, http.StatusOK, "invoice refunded", nil)
}

// ========== Billing analytics ==========

func (h *AdminHandler) BillingStats(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.subsStore.Snapshot().Items) == 0 {
		h.subsStore.FetchAll(c.Request.Context())
	}
	snap := h.subsStore.Snapshot()
	response.Success(c, http.StatusOK, "billing stats", gin.H{
		"stats": view.ComputeBillingStats(snap.Items),
		"error": snap.Err,
	})
}

// ExportBilling streams the billing CSV as a download.
func (h *AdminHandler) ExportBilling(c *gin.Context) {
	if len(h.subsStore.Snapshot().Items) == 0 {
		h.subsStore.FetchAll(c.Request.Context())
	}
	snap := h.subsStore.Snapshot()
	csvText := export.BillingCSV(snap.Items)

	c.Header("Content-Disposition", `attachment; filename="billing.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(csvText))
}

// ========== Users ==========

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminSvc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to list users", err)
		return
	}
	response.Success(c, http.StatusOK, "users", users)
}

// ========== Deletion requests (DSAR) ==========

func (h *AdminHandler) ListDeletionRequests(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.dsarStore.Snapshot().Items) == 0 {
		h.dsarStore.FetchAll(c.Request.Context())
	}
	snap := h.dsarStore.Snapshot()

	response.Success(c, http.StatusOK, "deletion requests", gin.H{
		"items":   snap.Items,
		"loading": snap.Loading,
		"error":   snap.Err,
	})
}

func (h *AdminHandler) TransitionDeletionRequest(c *gin.Context) {
	var req struct {
		From string `json:"from" binding:"required"`
		To   string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	id := c.Param("id")
	_ = h.dsarStore.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.adminSvc.TransitionDeletionRequest(ctx, id, req.From, req.To)
		return err
	})

	snap := h.dsarStore.Snapshot()
	response.Success(c, http.StatusOK, "deletion request updated", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}
