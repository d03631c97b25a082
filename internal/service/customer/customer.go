// internal/service/customer/customer.go
package customer

import (
	"context"

	"crmdash-service/internal/domain/customer"
	"crmdash-service/internal/gateway"
	xerrors "crmdash-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type Gateway interface {
	Select(ctx context.Context, table string, q gateway.Query, out any) error
	Insert(ctx context.Context, table string, body, out any) error
	Update(ctx context.Context, table, id string, patch, out any) error
	Delete(ctx context.Context, table, id string) error
}

// Service serves both contact tables; the customers and suppliers
// instances differ only in the table they point at.
type Service struct {
	gw     Gateway
	logger *zap.Logger
	table  string
	entity string
}

func NewCustomerService(gw Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger, table: "customers", entity: "customer"}
}

func NewSupplierService(gw Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger, table: "suppliers", entity: "supplier"}
}

// List fetches all contacts, newest first.
func (s *Service) List(ctx context.Context) ([]customer.Customer, error) {
	var rows []customer.Row
	q := gateway.Query{Order: gateway.Desc("created_at")}
	if err := s.gw.Select(ctx, s.table, q, &rows); err != nil {
		s.logger.Error("failed to list contacts", zap.String("table", s.table), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "list", Err: err}
	}

	out, err := customer.ParseRows(rows)
	if err != nil {
		s.logger.Error("unexpected contact row shape", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "list", Err: err}
	}
	return out, nil
}

// GetByID fetches one contact, nil when it does not exist.
func (s *Service) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	var rows []customer.Row
	q := gateway.Query{
		Filters: map[string]string{"id": gateway.Eq(id)},
		Limit:   1,
	}
	if err := s.gw.Select(ctx, s.table, q, &rows); err != nil {
		s.logger.Error("failed to get contact", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "get", Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	c, err := customer.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "get", Err: err}
	}
	return &c, nil
}

// Create persists a new contact. TotalSpent starts at the backend's
// default; it is never set from here.
func (s *Service) Create(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	status := req.Status
	if status == "" {
		status = customer.StatusActive
	}

	payload := map[string]any{
		"name":    req.Name,
		"company": req.Company,
		"email":   req.Email,
		"phone":   req.Phone,
		"address": req.Address,
		"status":  status,
	}

	var rows []customer.Row
	if err := s.gw.Insert(ctx, s.table, payload, &rows); err != nil {
		s.logger.Error("failed to create contact", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "create", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "create", Err: xerrors.ErrInternal}
	}

	c, err := customer.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "create", Err: err}
	}

	s.logger.Info("contact created",
		zap.String("id", c.ID.String()),
		zap.String("table", s.table),
	)
	return &c, nil
}

// Update patches a contact.
func (s *Service) Update(ctx context.Context, id string, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	patch := map[string]any{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Company != nil {
		patch["company"] = *req.Company
	}
	if req.Email != nil {
		patch["email"] = *req.Email
	}
	if req.Phone != nil {
		patch["phone"] = *req.Phone
	}
	if req.Address != nil {
		patch["address"] = *req.Address
	}
	if req.Status != nil {
		patch["status"] = *req.Status
	}

	var rows []customer.Row
	if err := s.gw.Update(ctx, s.table, id, patch, &rows); err != nil {
		s.logger.Error("failed to update contact", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "update", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "update", Err: xerrors.ErrNotFound}
	}

	c, err := customer.ParseRow(rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "update", Err: err}
	}

	s.logger.Info("contact updated", zap.String("id", id))
	return &c, nil
}

// Delete removes a contact. The backend cascade-deletes the contact's
// pipeline items; nothing is cleaned up client-side.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, s.table, id); err != nil {
		s.logger.Error("failed to delete contact", zap.String("id", id), zap.Error(err))
		return &xerrors.ServiceError{Entity: s.entity, Op: "delete", Err: err}
	}

	s.logger.Info("contact deleted", zap.String("id", id), zap.String("table", s.table))
	return nil
}
