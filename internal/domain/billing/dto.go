// internal/domain/billing/dto.go
package billing

type LineItemInput struct {
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
}

type CreateDocumentRequest struct {
	CustomerID string          `json:"customer_id" binding:"required,uuid"`
	Lines      []LineItemInput `json:"line_items" binding:"required,min=1,dive"`
}

type UpdateDocumentRequest struct {
	Status *string `json:"status"`
}

type ChangeSubscriptionRequest struct {
	PlanName   string `json:"plan_name" binding:"required"`
	PlanAmount int64  `json:"plan_amount" binding:"min=0"`
	Interval   string `json:"interval" binding:"required,oneof=month year"`
}
