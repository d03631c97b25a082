// internal/service/billing/document.go
package billing

import (
	"context"

	"crmdash-service/internal/domain/billing"
	"crmdash-service/internal/gateway"
	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Gateway interface {
	Select(ctx context.Context, table string, q gateway.Query, out any) error
	Insert(ctx context.Context, table string, body, out any) error
	Update(ctx context.Context, table, id string, patch, out any) error
	Delete(ctx context.Context, table, id string) error
}

// DocumentService serves quotes and invoices; the two instances differ
// in table, number prefix and initial status only.
type DocumentService struct {
	gw      Gateway
	logger  *zap.Logger
	table   string
	entity  string
	prefix  string
	initial string
	taxRate decimal.Decimal
}

func NewQuoteService(gw Gateway, logger *zap.Logger, taxRate decimal.Decimal) *DocumentService {
	return &DocumentService{
		gw:      gw,
		logger:  logger,
		table:   "quotes",
		entity:  "quote",
		prefix:  "QUO-",
		initial: billing.QuoteDraft,
		taxRate: taxRate,
	}
}

func NewInvoiceService(gw Gateway, logger *zap.Logger, taxRate decimal.Decimal) *DocumentService {
	return &DocumentService{
		gw:      gw,
		logger:  logger,
		table:   "invoices",
		entity:  "invoice",
		prefix:  "INV-",
		initial: billing.InvoiceDraft,
		taxRate: taxRate,
	}
}

// List fetches all documents, newest first.
func (s *DocumentService) List(ctx context.Context) ([]billing.Document, error) {
	var rows []billing.DocumentRow
	q := gateway.Query{Order: gateway.Desc("created_at")}
	if err := s.gw.Select(ctx, s.table, q, &rows); err != nil {
		s.logger.Error("failed to list documents", zap.String("table", s.table), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "list", Err: err}
	}

	docs, err := billing.ParseDocumentRows(s.entity, rows)
	if err != nil {
		s.logger.Error("unexpected document row shape", zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "list", Err: err}
	}
	return docs, nil
}

// GetByID fetches one document, nil when it does not exist.
func (s *DocumentService) GetByID(ctx context.Context, id string) (*billing.Document, error) {
	var rows []billing.DocumentRow
	q := gateway.Query{
		Filters: map[string]string{"id": gateway.Eq(id)},
		Limit:   1,
	}
	if err := s.gw.Select(ctx, s.table, q, &rows); err != nil {
		s.logger.Error("failed to get document", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "get", Err: err}
	}
	if len(rows) == 0 {
		return nil, nil
	}

	doc, err := billing.ParseDocumentRow(s.entity, rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "get", Err: err}
	}
	return &doc, nil
}

// Create computes line and document totals, assigns the next number and
// persists the document. Totals are computed here once and stored; they
// are never recomputed on read.
func (s *DocumentService) Create(ctx context.Context, req *billing.CreateDocumentRequest) (*billing.Document, error) {
	lines, err := parseLines(req.Lines)
	if err != nil {
		return nil, err
	}
	lines = billing.FillLineTotals(lines)
	totals := billing.ComputeTotals(lines, s.taxRate)

	number := s.NextNumber(ctx)

	payload := map[string]any{
		"number":      number,
		"customer_id": req.CustomerID,
		"line_items":  lines,
		"subtotal":    totals.Subtotal.String(),
		"tax":         totals.Tax.String(),
		"total":       totals.Total.String(),
		"status":      s.initial,
		"draft_key":   ulid.Make().String(),
	}

	var rows []billing.DocumentRow
	if err := s.gw.Insert(ctx, s.table, payload, &rows); err != nil {
		s.logger.Error("failed to create document", zap.String("number", number), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "create", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "create", Err: xerrors.ErrInternal}
	}

	doc, err := billing.ParseDocumentRow(s.entity, rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "create", Err: err}
	}

	s.logger.Info("document created",
		zap.String("number", doc.Number),
		zap.String("table", s.table),
		zap.String("total", doc.Total.String()),
	)
	return &doc, nil
}

// UpdateStatus moves a document through its status enumeration.
func (s *DocumentService) UpdateStatus(ctx context.Context, id, status string) (*billing.Document, error) {
	var rows []billing.DocumentRow
	patch := map[string]any{"status": status}
	if err := s.gw.Update(ctx, s.table, id, patch, &rows); err != nil {
		s.logger.Error("failed to update document", zap.String("id", id), zap.Error(err))
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "update", Err: err}
	}
	if len(rows) == 0 {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "update", Err: xerrors.ErrNotFound}
	}

	doc, err := billing.ParseDocumentRow(s.entity, rows[0])
	if err != nil {
		return nil, &xerrors.ServiceError{Entity: s.entity, Op: "update", Err: err}
	}
	return &doc, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, s.table, id); err != nil {
		s.logger.Error("failed to delete document", zap.String("id", id), zap.Error(err))
		return &xerrors.ServiceError{Entity: s.entity, Op: "delete", Err: err}
	}
	return nil
}

// parseLines validates the submitted line inputs before anything is
// sent to the backend.
func parseLines(inputs []billing.LineItemInput) ([]billing.LineItem, error) {
	if len(inputs) == 0 {
		return nil, &xerrors.ValidationError{Field: "line_items", Reason: "at least one line is required"}
	}

	lines := make([]billing.LineItem, 0, len(inputs))
	for _, in := range inputs {
		qty, err := decimal.NewFromString(in.Quantity)
		if err != nil {
			return nil, &xerrors.ValidationError{Field: "quantity", Reason: "not a number"}
		}
		price, err := decimal.NewFromString(in.UnitPrice)
		if err != nil {
			return nil, &xerrors.ValidationError{Field: "unit_price", Reason: "not a number"}
		}
		lines = append(lines, billing.LineItem{
			Description: in.Description,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}
	return lines, nil
}
