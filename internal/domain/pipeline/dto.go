// internal/domain/pipeline/dto.go
package pipeline

type CreateItemRequest struct {
	Title              string  `json:"title" binding:"required,max=255"`
	Stage              string  `json:"stage" binding:"required"`
	DollarValue        string  `json:"dollar_value" binding:"required"`
	ClosingProbability string  `json:"closing_probability"`
	ClosingDate        *string `json:"closing_date"`
	CustomerID         string  `json:"customer_id" binding:"required,uuid"`
}

type UpdateItemRequest struct {
	Title              *string `json:"title" binding:"omitempty,max=255"`
	Stage              *string `json:"stage"`
	DollarValue        *string `json:"dollar_value"`
	ClosingProbability *string `json:"closing_probability"`
	ClosingDate        *string `json:"closing_date"`
	FinalStatus        *string `json:"final_status"`
}
