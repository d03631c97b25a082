package view

import (
	"testing"

	"crmdash-service/internal/domain/ticket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTickets() []ticket.Ticket {
	return []ticket.Ticket{
		{ID: uuid.New(), Subject: "Cannot log in", Status: ticket.StatusOpen, Priority: ticket.PriorityHigh, Category: "account", Requester: "jane@acme.test"},
		{ID: uuid.New(), Subject: "Invoice missing line", Status: ticket.StatusInProgress, Priority: ticket.PriorityMedium, Category: "billing", Requester: "bob@other.test"},
		{ID: uuid.New(), Subject: "Feature request", Status: ticket.StatusClosed, Priority: ticket.PriorityLow, Category: "product", Requester: "jane@acme.test"},
	}
}

func TestFilterTickets(t *testing.T) {
	tickets := sampleTickets()

	t.Run("empty filter keeps everything", func(t *testing.T) {
		assert.Len(t, FilterTickets(tickets, TicketFilter{}), 3)
	})

	t.Run("by status", func(t *testing.T) {
		got := FilterTickets(tickets, TicketFilter{Status: ticket.StatusOpen})
		require.Len(t, got, 1)
		assert.Equal(t, "Cannot log in", got[0].Subject)
	})

	t.Run("by category and query combined", func(t *testing.T) {
		got := FilterTickets(tickets, TicketFilter{Category: "billing", Query: "invoice"})
		require.Len(t, got, 1)

		none := FilterTickets(tickets, TicketFilter{Category: "billing", Query: "login"})
		assert.Empty(t, none)
	})

	t.Run("query matches requester case-insensitively", func(t *testing.T) {
		got := FilterTickets(tickets, TicketFilter{Query: "JANE@ACME"})
		assert.Len(t, got, 2)
	})
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts(sampleTickets())
	assert.Equal(t, 1, counts[ticket.StatusOpen])
	assert.Equal(t, 1, counts[ticket.StatusInProgress])
	assert.Equal(t, 1, counts[ticket.StatusClosed])
	assert.Zero(t, counts[ticket.StatusResolved])
}
