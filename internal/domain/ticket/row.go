// internal/domain/ticket/row.go
package ticket

import (
	"fmt"
	"time"

	xerrors "crmdash-service/internal/pkg/errors"

	"github.com/google/uuid"
)

type Row struct {
	ID          string        `json:"id"`
	Subject     string        `json:"subject"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	Category    string        `json:"category"`
	Requester   string        `json:"requester"`
	CreatedAt   time.Time     `json:"created_at"`
	Activity    []ActivityRow `json:"ticket_activity"`
}

type ActivityRow struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type DeletionRequestRow struct {
	ID          string    `json:"id"`
	UserEmail   string    `json:"user_email"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

func ParseRow(r Row) (Ticket, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return Ticket{}, &xerrors.SchemaError{Entity: "ticket", Field: "id", Cause: err}
	}

	t := Ticket{
		ID:          id,
		Subject:     r.Subject,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		Category:    r.Category,
		Requester:   r.Requester,
		CreatedAt:   r.CreatedAt,
	}

	t.Activity = make([]Activity, 0, len(r.Activity))
	for _, a := range r.Activity {
		aid, err := uuid.Parse(a.ID)
		if err != nil {
			return Ticket{}, &xerrors.SchemaError{Entity: "ticket", Field: "ticket_activity.id", Cause: err}
		}
		t.Activity = append(t.Activity, Activity{
			ID:        aid,
			Author:    a.Author,
			Body:      a.Body,
			CreatedAt: a.CreatedAt,
		})
	}

	return t, nil
}

func ParseRows(rows []Row) ([]Ticket, error) {
	out := make([]Ticket, 0, len(rows))
	for i, r := range rows {
		t, err := ParseRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func ParseDeletionRequestRow(r DeletionRequestRow) (DeletionRequest, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return DeletionRequest{}, &xerrors.SchemaError{Entity: "deletion_request", Field: "id", Cause: err}
	}
	return DeletionRequest{
		ID:          id,
		UserEmail:   r.UserEmail,
		Reason:      r.Reason,
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
	}, nil
}

func ParseDeletionRequestRows(rows []DeletionRequestRow) ([]DeletionRequest, error) {
	out := make([]DeletionRequest, 0, len(rows))
	for i, r := range rows {
		d, err := ParseDeletionRequestRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}
