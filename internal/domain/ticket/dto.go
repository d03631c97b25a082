// internal/domain/ticket/dto.go
package ticket

type CreateTicketRequest struct {
	Subject     string `json:"subject" binding:"required,max=255"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Category    string `json:"category"`
	Requester   string `json:"requester" binding:"omitempty,email"`
}

type UpdateTicketRequest struct {
	Status   *string `json:"status" binding:"omitempty,oneof=open in_progress resolved closed"`
	Priority *string `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Category *string `json:"category"`
}

type AppendActivityRequest struct {
	Author string `json:"author" binding:"required"`
	Body   string `json:"body" binding:"required"`
}
