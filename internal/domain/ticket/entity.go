// internal/domain/ticket/entity.go
package ticket

import (
	"time"

	"github.com/google/uuid"
)

// Ticket statuses.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Ticket is a support request with an append-only activity trail.
type Ticket struct {
	ID          uuid.UUID
	Subject     string
	Description string
	Status      string
	Priority    string
	Category    string
	Requester   string
	CreatedAt   time.Time
	Activity    []Activity
}

// Activity is one append-only message on a ticket.
type Activity struct {
	ID        uuid.UUID
	Author    string
	Body      string
	CreatedAt time.Time
}

// DeletionRequest statuses (DSAR workflow).
const (
	DeletionPending    = "pending"
	DeletionProcessing = "processing"
	DeletionCompleted  = "completed"
	DeletionRejected   = "rejected"
)

// DeletionRequest is a data-subject deletion request handled through
// the admin console.
type DeletionRequest struct {
	ID          uuid.UUID
	UserEmail   string
	Reason      string
	Status      string
	RequestedAt time.Time
}

// deletionTransitions is the allowed DSAR state machine:
// pending -> processing -> completed | rejected.
var deletionTransitions = map[string][]string{
	DeletionPending:    {DeletionProcessing, DeletionRejected},
	DeletionProcessing: {DeletionCompleted, DeletionRejected},
}

// CanTransition reports whether a deletion request may move between the
// two statuses.
func CanTransition(from, to string) bool {
	for _, next := range deletionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
