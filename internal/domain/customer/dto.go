// internal/domain/customer/dto.go
package customer

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Company string `json:"company" binding:"max=255"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address"`
	Status  string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Company *string `json:"company" binding:"omitempty,max=255"`
	Email   *string `json:"email" binding:"omitempty,email,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Address *string `json:"address"`
	Status  *string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}
