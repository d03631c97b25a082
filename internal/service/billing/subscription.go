// internal/service/billing/subscription.go
package billing

import (
	"context"

	"crmdash-service/internal/domain/billing"
	"crmdash-service/internal/gateway"
	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Functions invokes the serverless billing actions.
type Functions interface {
	Invoke(ctx context.Context, action string, payload map[string]any, out any) error
}

// SubscriptionService reads subscription records and drives admin
// billing actions through the serverless functions endpoint.
type SubscriptionService struct {
	gw     Gateway
	fns    Functions
	logger *zap.Logger
}

func NewSubscriptionService(gw Gateway, fns Functions, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{gw: gw, fns: fns, logger: logger}
}

// List returns one subscription per organization: the paid record when
// one exists, otherwise a synthesized free-tier entry. The free tier is
// never persisted.
func (s *SubscriptionService) List(ctx context.Context) ([]billing.Subscription, error) {
	var orgRows []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := s.gw.Select(ctx, "organizations", gateway.Query{Select: "id,name"}, &orgRows); err != nil {
		s.logger.Error("failed to list organizations", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "subscription", Op: "list", Err: err}
	}

	var subRows []billing.SubscriptionRow
	q := gateway.Query{
		Select: "*,organizations(name)",
		Order:  gateway.Desc("current_period_start"),
	}
	if err := s.gw.Select(ctx, "subscriptions", q, &subRows); err != nil {
		s.logger.Error("failed to list subscriptions", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "subscription", Op: "list", Err: err}
	}

	subs, err := billing.ParseSubscriptionRows(subRows)
	if err != nil {
		s.logger.Error("unexpected subscription row shape", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: "subscription", Op: "list", Err: err}
	}

	covered := make(map[string]bool, len(subs))
	for _, sub := range subs {
		covered[sub.OrgID.String()] = true
	}

	out := subs
	for _, o := range orgRows {
		if covered[o.ID] {
			continue
		}
		// Orgs without a paid record get the client-side pseudo-subscription.
		orgID, err := uuid.Parse(o.ID)
		if err != nil {
			schemaErr := &xerrors.SchemaError{Entity: "organization", Field: "id", Cause: err}
			return nil, &xerrors.ServiceError{Entity: "subscription", Op: "list", Err: schemaErr}
		}
		out = append(out, billing.FreeTierFor(orgID, o.Name))
	}

	return out, nil
}

// Change moves an organization onto a different plan through the
// admin_change_subscription action.
func (s *SubscriptionService) Change(ctx context.Context, orgID string, req *billing.ChangeSubscriptionRequest) error {
	payload := map[string]any{
		"org_id":      orgID,
		"plan_name":   req.PlanName,
		"plan_amount": req.PlanAmount,
		"interval":    req.Interval,
	}
	if err := s.fns.Invoke(ctx, gateway.ActionChangeSubscription, payload, nil); err != nil {
		s.logger.Error("failed to change subscription", zap.String("org_id", orgID), zap.Error(err))
		return &xerrors.ServiceError{Entity: "subscription", Op: "change", Err: err}
	}

	s.logger.Info("subscription changed",
		zap.String("org_id", orgID),
		zap.String("plan", req.PlanName),
	)
	return nil
}

// Cancel cancels an organization's subscription via the same action
// with the cancel flag set.
func (s *SubscriptionService) Cancel(ctx context.Context, orgID string) error {
	payload := map[string]any{
		"org_id": orgID,
		"cancel": true,
	}
	if err := s.fns.Invoke(ctx, gateway.ActionChangeSubscription, payload, nil); err != nil {
		s.logger.Error("failed to cancel subscription", zap.String("org_id", orgID), zap.Error(err))
		return &xerrors.ServiceError{Entity: "subscription", Op: "cancel", Err: err}
	}

	s.logger.Info("subscription canceled", zap.String("org_id", orgID))
	return nil
}

// RefundInvoice refunds a paid invoice through the payments provider.
func (s *SubscriptionService) RefundInvoice(ctx context.Context, invoiceID string) error {
	payload := map[string]any{"invoice_id": invoiceID}
	if err := s.fns.Invoke(ctx, gateway.ActionRefundInvoice, payload, nil); err != nil {
		s.logger.Error("failed to refund invoice", zap.String("invoice_id", invoiceID), zap.Error(err))
		return &xerrors.ServiceError{Entity: "invoice", Op: "refund", Err: err}
	}

	s.logger.Info("invoice refunded", zap.String("invoice_id", invoiceID))
	return nil
}
