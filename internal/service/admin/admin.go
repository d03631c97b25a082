// internal/service/admin/admin.go
package admin

import (
	"context"
	"fmt"

	"crmdash-service/internal/domain/org"
	"crmdash-service/internal/domain/ticket"
	"crmdash-service/internal/gateway"
	xerrors "crmdash-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Gateway interface {
	Select(ctx context.Context, table string, q gateway.Query, out any) error
	Update(ctx context.Context, table, id string, patch, out any) error
	RPC(ctx context.Context, fn string, args, out any) error
}

// Service backs the admin console: user listing through server-side
// RPCs and the DSAR (deletion request) workflow.
type Service struct {
	gw     Gateway
	logger *zap.Logger
}

func NewService(gw Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// ListUsers invokes the admin_list_users RPC and parse-validates the
// result.
func (s *Service) ListUsers(ctx context.Context) ([]org.User, error) {
	var rows []org.UserRow
	if err := s.gw.RPC(ctx, "admin_list_users", nil, &rows); err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "user", Op: "list", Err: err}
	}

	users, err := org.ParseUserRows(rows)
	if err != nil {
		s.logger.Error("unexpected user row shape", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "user", Op: "list", Err: err}
	}
	return users, nil
}

// ListDeletionRequests fetches the DSAR queue, oldest first.
func (s *Service) ListDeletionRequests(ctx context.Context) ([]ticket.DeletionRequest, error) {
	var rows []ticket.DeletionRequestRow
	q := gateway.Query{Order: gateway.Asc("requested_at")}
	if err := s.gw.Select(ctx, "deletion_requests", q, &rows); err != nil {
		s.logger.Error("failed to list deletion requests", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "deletion_request", Op: "list", Err: err}
	}

	requests, err := ticket.ParseDeletionRequestRows(rows)
	if err != nil {
		s.logger.Error("unexpected deletion request row shape", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "deletion_request", Op: "list", Err: err}
	}
	return requests, nil
}

// TransitionDeletionRequest moves a DSAR through its workflow
// (pending -> processing -> completed/rejected); anything else is a
// validation failure before the network is touched.
func (s *Service) TransitionDeletionRequest(ctx context.Context, id, from, to string) (*ticket.DeletionRequest, error) {
	if !ticket.CanTransition(from, to) {
		return nil, &xerrors.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("cannot move deletion request from %s to %s", from, to),
		}
	}

	var rows []ticket.DeletionRequestRow
	patch := map[string]any{"status": to}
	if err := s.gw.Update(ctx, "deletion_requests", id, patch, &rows); err != nil {
		s.logger.Error("failed to transition deletion request", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "deletion_request", Op: "transition", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: "deletion_request", Op: "transition", Err: xerrors.ErrNotFound}
	}

	req, err := ticket.ParseDeletionRequestRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: "deletion_request", Op: "transition", Err: err}
	}

	s.logger.Info("deletion request transitioned",
		zap.String("id", id),
		zap.String("from", from),
		zap.String("to", to),
	)
	return &req, nil
}
