package dto

import (
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/domain"
)

// CreateCustomerRequest represents the request to create a new customer
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Company      string `json:"company" binding:"max=255"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"max=50"`
	Mobile       string `json:"mobile" binding:"max=50"`
	Address      string `json:"address" binding:"max=255"`
	City         string `json:"city" binding:"max=100"`
	State        string `json:"state" binding:"max=50"`
	ZipCode      string `json:"zip_code" binding:"max=20"`
	CustomerType string `json:"customer_type" binding:"omitempty,oneof=residential commercial"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Company      *string `json:"company" binding:"omitempty,max=255"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Phone        *string `json:"phone" binding:"omitempty,max=50"`
	Mobile       *string `json:"mobile" binding:"omitempty,max=50"`
	Address      *string `json:"address" binding:"omitempty,max=255"`
	City         *string `json:"city" binding:"omitempty,max=100"`
	State        *string `json:"state" binding:"omitempty,max=50"`
	ZipCode      *string `json:"zip_code" binding:"omitempty,max=20"`
	CustomerType *string `json:"customer_type" binding:"omitempty,oneof=residential commercial"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive"`
}

// Fields flattens the set pointer fields into a column-keyed map
func (r *UpdateCustomerRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Company != nil {
		fields["company"] = *r.Company
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	if r.Mobile != nil {
		fields["mobile"] = *r.Mobile
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	if r.City != nil {
		fields["city"] = *r.City
	}
	if r.State != nil {
		fields["state"] = *r.State
	}
	if r.ZipCode != nil {
		fields["zip_code"] = *r.ZipCode
	}
	if r.CustomerType != nil {
		fields["customer_type"] = *r.CustomerType
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	return fields
}

// ListCustomersRequest captures the query parameters of the customer list
// endpoint
type ListCustomersRequest struct {
	Status       string `form:"status" binding:"omitempty,oneof=active inactive"`
	CustomerType string `form:"customer_type" binding:"omitempty,oneof=residential commercial"`
	City         string `form:"city"`
	Search       string `form:"search"`
	SortBy       string `form:"sort_by"`
	SortOrder    string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
}

// CustomerResponse represents the customer response
type CustomerResponse struct {
	ID           uuid.UUID  `json:"id"`
	BusinessID   uuid.UUID  `json:"business_id"`
	Name         string     `json:"name"`
	Company      string     `json:"company"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Mobile       string     `json:"mobile"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	ZipCode      string     `json:"zip_code"`
	CustomerType string     `json:"customer_type"`
	Status       string     `json:"status"`
	SourceLeadID *uuid.UUID `json:"source_lead_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToCustomerResponse converts a customer model to its response shape
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		BusinessID:   c.BusinessID,
		Name:         c.Name,
		Company:      c.Company,
		Email:        c.Email,
		Phone:        c.Phone,
		Mobile:       c.Mobile,
		Address:      c.Address,
		City:         c.City,
		State:        c.State,
		ZipCode:      c.ZipCode,
		CustomerType: string(c.CustomerType),
		Status:       string(c.Status),
		SourceLeadID: c.SourceLeadID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customer models
func ToCustomerResponses(customers []*domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, ToCustomerResponse(c))
	}
	return responses
}
