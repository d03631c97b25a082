// internal/view/ticket.go
package view

import (
	"strings"

	"crmdash-service/internal/domain/ticket"
)

// TicketFilter narrows the ticket collection; empty fields match
// everything.
type TicketFilter struct {
	Status   string
	Priority string
	Category string
	Query    string
}

// FilterTickets applies the filter, preserving fetch order. The free
// text query matches any of subject, description, requester or
// category, case-insensitively.
func FilterTickets(tickets []ticket.Ticket, f TicketFilter) []ticket.Ticket {
	out := make([]ticket.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if !ticketMatches(t, f.Query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// StatusCounts tallies tickets per status.
func StatusCounts(tickets []ticket.Ticket) map[string]int {
	counts := map[string]int{}
	for _, t := range tickets {
		counts[t.Status]++
	}
	return counts
}

func ticketMatches(t ticket.Ticket, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range []string{t.Subject, t.Description, t.Requester, t.Category} {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
