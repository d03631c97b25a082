// internal/handlers/billing/document_handler.go
package billing

import (
	"context"
	"net/http"

	domain "crmdash-service/internal/domain/billing"
	"crmdash-service/internal/export"
	"crmdash-service/internal/pkg/response"
	service "crmdash-service/internal/service/billing"
	"crmdash-service/internal/store"

	"github.com/gin-gonic/gin"
)

// DocumentHandler serves quotes or invoices depending on its wiring.
type DocumentHandler struct {
	svc   *service.DocumentService
	docs  *store.Container[domain.Document]
	label string
}

func NewDocumentHandler(svc *service.DocumentService, docs *store.Container[domain.Document], label string) *DocumentHandler {
	return &DocumentHandler{svc: svc, docs: docs, label: label}
}

func (h *DocumentHandler) List(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.docs.Snapshot().Items) == 0 {
		h.docs.FetchAll(c.Request.Context())
	}
	snap := h.docs.Snapshot()

	response.Success(c, http.StatusOK, h.label+" list", gin.H{
		"items":   snap.Items,
		"loading": snap.Loading,
		"error":   snap.Err,
	})
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to load "+h.label, err)
		return
	}
	if doc == nil {
		response.NotFound(c, h.label+" not found")
		return
	}
	response.Success(c, http.StatusOK, h.label, doc)
}

// Create computes totals service-side and persists the document.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req domain.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	_ = h.docs.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.Create(ctx, &req)
		return err
	})

	snap := h.docs.Snapshot()
	response.Success(c, http.StatusCreated, h.label+" created", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	var req domain.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		response.ValidationError(c, "status is required", err)
		return
	}

	id := c.Param("id")
	_ = h.docs.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.UpdateStatus(ctx, id, *req.Status)
		return err
	})

	snap := h.docs.Snapshot()
	response.Success(c, http.StatusOK, h.label+" updated", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.docs.Mutate(c.Request.Context(), func(ctx context.Context) error {
		return h.svc.Delete(ctx, id)
	})
	if err != nil {
		response.Error(c, http.StatusBadGateway, store.HumanMessage(err), err)
		return
	}
	response.Success(c, http.StatusOK, h.label+" deleted", nil)
}

// Import parses an uploaded CSV and reports counts. Parsed rows are not
// persisted; the response makes that visible instead of hiding it.
func (h *DocumentHandler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.ValidationError(c, "file is required", err)
		return
	}
	defer file.Close()

	result, err := export.ImportQuotes(file)
	if err != nil {
		response.ValidationError(c, "failed to parse csv", err)
		return
	}

	response.Success(c, http.StatusOK, "csv parsed", result)
}
