// internal/handlers/pipeline/pipeline_handler.go
package pipeline

import (
	"context"
	"net/http"
	"time"

	domain "crmdash-service/internal/domain/pipeline"
	"crmdash-service/internal/pkg/response"
	service "crmdash-service/internal/service/pipeline"
	"crmdash-service/internal/store"
	"crmdash-service/internal/view"

	"github.com/gin-gonic/gin"
)

type PipelineHandler struct {
	svc   *service.Service
	items *store.Container[domain.Item]
}

func NewPipelineHandler(svc *service.Service, items *store.Container[domain.Item]) *PipelineHandler {
	return &PipelineHandler{svc: svc, items: items}
}

// List returns the current snapshot with optional search and sort
// applied. The error slot rides along in the payload; reading it is the
// caller's job.
func (h *PipelineHandler) List(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.items.Snapshot().Items) == 0 {
		h.items.FetchAll(c.Request.Context())
	}
	snap := h.items.Snapshot()

	items := view.Search(snap.Items, c.Query("q"))
	if key := c.Query("sort"); key != "" {
		items = view.SortItems(items, key, c.Query("dir") == "desc")
	}

	response.Success(c, http.StatusOK, "pipeline items", gin.H{
		"items":   items,
		"loading": snap.Loading,
		"error":   snap.Err,
	})
}

// Summary returns the derived dashboard aggregates, recomputed from the
// current snapshot on every call.
func (h *PipelineHandler) Summary(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.items.Snapshot().Items) == 0 {
		h.items.FetchAll(c.Request.Context())
	}
	snap := h.items.Snapshot()

	response.Success(c, http.StatusOK, "pipeline summary", gin.H{
		"stages":            view.StageGroups(snap.Items),
		"month_over_month":  view.MonthOverMonth(snap.Items, time.Now()),
		"average_open_deal": view.AverageOpenDealValue(snap.Items),
		"error":             snap.Err,
	})
}

// Get returns one item straight from the service.
func (h *PipelineHandler) Get(c *gin.Context) {
	item, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to load pipeline item", err)
		return
	}
	if item == nil {
		response.NotFound(c, "pipeline item not found")
		return
	}
	response.Success(c, http.StatusOK, "pipeline item", item)
}

// Create persists a new item and refetches the collection.
func (h *PipelineHandler) Create(c *gin.Context) {
	var req domain.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	_ = h.items.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.Create(ctx, &req)
		return err
	})

	snap := h.items.Snapshot()
	response.Success(c, http.StatusCreated, "pipeline item created", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

// Update patches an item and refetches.
func (h *PipelineHandler) Update(c *gin.Context) {
	var req domain.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	id := c.Param("id")
	_ = h.items.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.Update(ctx, id, &req)
		return err
	})

	snap := h.items.Snapshot()
	response.Success(c, http.StatusOK, "pipeline item updated", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

// Delete is a direct user action: the failure surfaces here as a toast
// would, rather than only landing in the error slot.
func (h *PipelineHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.items.Mutate(c.Request.Context(), func(ctx context.Context) error {
		return h.svc.Delete(ctx, id)
	})
	if err != nil {
		response.Error(c, http.StatusBadGateway, store.HumanMessage(err), err)
		return
	}
	response.Success(c, http.StatusOK, "pipeline item deleted", nil)
}
