// internal/service/ticket/ticket.go
package ticket

import (
	"context"

	"crmdash-service/internal/domain/ticket"
	"crmdash-service/internal/gateway"
	xerrors "crmdash-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const table = "tickets"

type Gateway interface {
	Select(ctx context.Context, table string, q gateway.Query, out any) error
	Insert(ctx context.Context, table string, body, out any) error
	Update(ctx context.Context, table, id string, patch, out any) error
	Delete(ctx context.Context, table, id string) error
}

type Service struct {
	gw     Gateway
	logger *zap.Logger
}

func NewService(gw Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// List fetches all tickets with their activity trails, newest first.
func (s *Service) List(ctx context.Context) ([]ticket.Ticket, error) {
	var rows []ticket.Row
	q := gateway.Query{
		Select: "*,ticket_activity(*)",
		Order:  gateway.Desc("created_at"),
	}
	if err := s.gw.Select(ctx, table, q, &rows); err != nil {
		s.logger.Error("failed to list tickets", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "list", Err: err}
	}

	tickets, err := ticket.ParseRows(rows)
	if err != nil {
		s.logger.Error("unexpected ticket row shape", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "list", Err: err}
	}
	return tickets, nil
}

// GetByID fetches one ticket, nil when it does not exist.
func (s *Service) GetByID(ctx context.Context, id string) (*ticket.Ticket, error) {
	var rows []ticket.Row
	q := gateway.Query{
		Select:  "*,ticket_activity(*)",
		Filters: map[string]string{"id": gateway.Eq(id)},
		Limit:   1,
	}
	if err := s.gw.Select(ctx, table, q, &rows); err != nil {
		s.logger.Error("failed to get ticket", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "get", Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	t, err := ticket.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "get", Err: err}
	}
	return &t, nil
}

// Create opens a new ticket.
func (s *Service) Create(ctx context.Context, req *ticket.CreateTicketRequest) (*ticket.Ticket, error) {
	priority := req.Priority
	if priority == "" {
		priority = ticket.PriorityMedium
	}

	payload := map[string]any{
		"subject":     req.Subject,
		"description": req.Description,
		"status":      ticket.StatusOpen,
		"priority":    priority,
		"category":    req.Category,
		"requester":   req.Requester,
	}

	var rows []ticket.Row
	if err := s.gw.Insert(ctx, table, payload, &rows); err != nil {
		s.logger.Error("failed to create ticket", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "create", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "create", Err: xerrors.ErrInternal}
	}

	t, err := ticket.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "create", Err: err}
	}

	s.logger.Info("ticket created", zap.String("id", t.ID.String()), zap.String("priority", t.Priority))
	return &t, nil
}

// Update patches status, priority or category.
func (s *Service) Update(ctx context.Context, id string, req *ticket.UpdateTicketRequest) (*ticket.Ticket, error) {
	patch := map[string]any{}
	if req.Status != nil {
		patch["status"] = *req.Status
	}
	if req.Priority != nil {
		patch["priority"] = *req.Priority
	}
	if req.Category != nil {
		patch["category"] = *req.Category
	}

	var rows []ticket.Row
	if err := s.gw.Update(ctx, table, id, patch, &rows); err != nil {
		s.logger.Error("failed to update ticket", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "update", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "update", Err: xerrors.ErrNotFound}
	}

	t, err := ticket.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: "ticket", Op: "update", Err: err}
	}
	return &t, nil
}

// Delete removes a ticket and its activity (cascade on the backend).
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, table, id); err != nil {
		s.logger.Error("failed to delete ticket", zap.String("id", id), zap.Error(err))
		return &xerrors.ServiceError{Entity: "ticket", Op: "delete", Err: err}
	}
	return nil
}

// AppendActivity adds one message to a ticket's append-only trail.
// Existing activity is never edited or removed.
func (s *Service) AppendActivity(ctx context.Context, ticketID string, req *ticket.AppendActivityRequest) error {
	payload := map[string]any{
		"ticket_id": ticketID,
		"author":    req.Author,
		"body":      req.Body,
	}
	if err := s.gw.Insert(ctx, "ticket_activity", payload, nil); err != nil {
		s.logger.Error("failed to append ticket activity", zap.String("ticket_id", ticketID), zap.Error(err))
		return &xerrors.ServiceError{Entity: "ticket", Op: "append_activity", Err: err}
	}

	s.logger.Info("ticket activity appended", zap.String("ticket_id", ticketID))
	return nil
}
