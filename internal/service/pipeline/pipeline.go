// internal/service/pipeline/pipeline.go
package pipeline

import (
	"context"

	"crmdash-service/internal/domain/pipeline"
	"crmdash-service/internal/gateway"
	xerrors "crmdash-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const table = "pipeline"

// Gateway is the slice of the remote data gateway this service uses.
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

// List fetches the full pipeline collection with the owning customer
// embedded, newest first.
func (s *Service) List(ctx context.Context) ([]pipeline.Item, error) {
	var rows []pipeline.Row
	q := gateway.Query{
		Select: "*,customers(name,company,email,phone)",
		Order:  gateway.Desc("created_at"),
	}
	if err := s.gw.Select(ctx, table, q, &rows); err != nil {
		s.logger.Error("failed to list pipeline items", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "list", Err: err}
	}

	items, err := pipeline.ParseRows(rows)
	if err != nil {
		s.logger.Error("unexpected pipeline row shape", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "list", Err: err}
	}
	return items, nil
}

// GetByID fetches one item, nil when it does not exist.
func (s *Service) GetByID(ctx context.Context, id string) (*pipeline.Item, error) {
	var rows []pipeline.Row
	q := gateway.Query{
		Select:  "*,customers(name,company,email,phone)",
		Filters: map[string]string{"id": gateway.Eq(id)},
		Limit:   1,
	}
	if err := s.gw.Select(ctx, table, q, &rows); err != nil {
		s.logger.Error("failed to get pipeline item", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "get", Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	item, err := pipeline.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "get", Err: err}
	}
	return &item, nil
}

// Create persists a new item and returns the created record.
func (s *Service) Create(ctx context.Context, req *pipeline.CreateItemRequest) (*pipeline.Item, error) {
	payload := map[string]any{
		"title":               req.Title,
		"stage":               req.Stage,
		"dollar_value":        req.DollarValue,
		"closing_probability": req.ClosingProbability,
		"closing_date":        req.ClosingDate,
		"customer_id":         req.CustomerID,
	}

	var rows []pipeline.Row
	if err := s.gw.Insert(ctx, table, payload, &rows); err != nil {
		s.logger.Error("failed to create pipeline item", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "create", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "create", Err: xerrors.ErrInternal}
	}

	item, err := pipeline.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "create", Err: err}
	}

	s.logger.Info("pipeline item created",
		zap.String("id", item.ID.String()),
		zap.String("stage", string(item.Stage)),
	)
	return &item, nil
}

// Update patches an item. Stage values are accepted as-is: forward-only
// movement is advisory, not enforced.
func (s *Service) Update(ctx context.Context, id string, req *pipeline.UpdateItemRequest) (*pipeline.Item, error) {
	patch := map[string]any{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.Stage != nil {
		patch["stage"] = *req.Stage
	}
	if req.DollarValue != nil {
		patch["dollar_value"] = *req.DollarValue
	}
	if req.ClosingProbability != nil {
		patch["closing_probability"] = *req.ClosingProbability
	}
	if req.ClosingDate != nil {
		patch["closing_date"] = *req.ClosingDate
	}
	if req.FinalStatus != nil {
		patch["final_status"] = *req.FinalStatus
	}

	var rows []pipeline.Row
	if err := s.gw.Update(ctx, table, id, patch, &rows); err != nil {
		s.logger.Error("failed to update pipeline item", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "update", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "update", Err: xerrors.ErrNotFound}
	}

	item, err := pipeline.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: "pipeline", Op: "update", Err: err}
	}

	s.logger.Info("pipeline item updated", zap.String("id", id))
	return &item, nil
}

// Delete removes an item. Cascade to nothing: pipeline items own no
// children.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, table, id); err != nil {
		s.logger.Error("failed to delete pipeline item", zap.String("id", id), zap.Error(err))
		return &xerrors.ServiceError{Entity: "pipeline", Op: "delete", Err: err}
	}

	s.logger.Info("pipeline item deleted", zap.String("id", id))
	return nil
}
