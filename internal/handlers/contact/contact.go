// internal/handlers/contact/contact_handler.go
package contact

import (
	"context"
	"net/http"

	domain "crmdash-service/internal/domain/customer"
	"crmdash-service/internal/pkg/response"
	service "crmdash-service/internal/service/customer"
	"crmdash-service/internal/store"

	"github.com/gin-gonic/gin"
)

// ContactHandler serves either the customers or the suppliers surface;
// the wiring decides which service/container pair it gets.
type ContactHandler struct {
	svc      *service.Service
	contacts *store.Container[domain.Customer]
	label    string
}

func NewContactHandler(svc *service.Service, contacts *store.Container[domain.Customer], label string) *ContactHandler {
	return &ContactHandler{svc: svc, contacts: contacts, label: label}
}

func (h *ContactHandler) List(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.contacts.Snapshot().Items) == 0 {
		h.contacts.FetchAll(c.Request.Context())
	}
	snap := h.contacts.Snapshot()

	response.Success(c, http.StatusOK, h.label+" list", gin.H{
		"items":   snap.Items,
		"loading": snap.Loading,
		"error":   snap.Err,
	})
}

func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to load "+h.label, err)
		return
	}
	if contact == nil {
		response.NotFound(c, h.label+" not found")
		return
	}
	response.Success(c, http.StatusOK, h.label, contact)
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req domain.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	_ = h.contacts.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.Create(ctx, &req)
		return err
	})

	snap := h.contacts.Snapshot()
	response.Success(c, http.StatusCreated, h.label+" created", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

func (h *ContactHandler) Update(c *gin.Context) {
	var req domain.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	id := c.Param("id")
	_ = h.contacts.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.Update(ctx, id, &req)
		return err
	})

	snap := h.contacts.Snapshot()
	response.Success(c, http.StatusOK, h.label+" updated", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

// Delete surfaces its failure directly; the backend cascades the
// contact's pipeline items.
func (h *ContactHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.contacts.Mutate(c.Request.Context(), func(ctx context.Context) error {
		return h.svc.Delete(ctx, id)
	})
	if err != nil {
		response.Error(c, http.StatusBadGateway, store.HumanMessage(err), err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" deleted", nil)
}
