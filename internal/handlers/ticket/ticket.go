// internal/handlers/ticket/ticket_handler.go
package ticket

import (
	"context"
	"net/http"

	domain "crmdash-service/internal/domain/ticket"
	"crmdash-service/internal/pkg/response"
	service "crmdash-service/internal/service/ticket"
	"crmdash-service/internal/store"
	"crmdash-service/internal/view"
	ws "crmdash-service/internal/websocket"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	svc     *service.Service
	tickets *store.Container[domain.Ticket]
	hub     *ws.Hub
}

func NewTicketHandler(svc *service.Service, tickets *store.Container[domain.Ticket], hub *ws.Hub) *TicketHandler {
	return &TicketHandler{svc: svc, tickets: tickets, hub: hub}
}

// List returns the snapshot narrowed by the optional status, priority,
// category and free-text filters.
func (h *TicketHandler) List(c *gin.Context) {
	if c.Query("refresh") == "true" || len(h.tickets.Snapshot().Items) == 0 {
		h.tickets.FetchAll(c.Request.Context())
	}
	snap := h.tickets.Snapshot()

	filtered := view.FilterTickets(snap.Items, view.TicketFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})

	response.Success(c, http.StatusOK, "tickets", gin.H{
		"items":   filtered,
		"counts":  view.StatusCounts(snap.Items),
		"loading": snap.Loading,
		"error":   snap.Err,
	})
}

func (h *TicketHandler) Get(c *gin.Context) {
	t, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to load ticket", err)
		return
	}
	if t == nil {
		response.NotFound(c, "ticket not found")
		return
	}
	response.Success(c, http.StatusOK, "ticket", t)
}

func (h *TicketHandler) Create(c *gin.Context) {
	var req domain.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	_ = h.tickets.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.Create(ctx, &req)
		return err
	})

	snap := h.tickets.Snapshot()
	response.Success(c, http.StatusCreated, "ticket created", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

func (h *TicketHandler) Update(c *gin.Context) {
	var req domain.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	id := c.Param("id")
	_ = h.tickets.Mutate(c.Request.Context(), func(ctx context.Context) error {
		_, err := h.svc.Update(ctx, id, &req)
		return err
	})

	snap := h.tickets.Snapshot()
	response.Success(c, http.StatusOK, "ticket updated", gin.H{
		"items": snap.Items,
		"error": snap.Err,
	})
}

func (h *TicketHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.tickets.Mutate(c.Request.Context(), func(ctx context.Context) error {
		return h.svc.Delete(ctx, id)
	})
	if err != nil {
		response.Error(c, http.StatusBadGateway, store.HumanMessage(err), err)
		return
	}
	response.Success(c, http.StatusOK, "ticket deleted", nil)
}

// AppendActivity adds one message and pushes a live event to connected
// dashboards.
func (h *TicketHandler) AppendActivity(c *gin.Context) {
	var req domain.AppendActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	id := c.Param("id")
	err := h.tickets.Mutate(c.Request.Context(), func(ctx context.Context) error {
		return h.svc.AppendActivity(ctx, id, &req)
	})
	if err != nil {
		response.Error(c, http.StatusBadGateway, store.HumanMessage(err), err)
		return
	}

	h.hub.TicketActivity(id)
	response.Success(c, http.StatusCreated, "activity appended", nil)
}
