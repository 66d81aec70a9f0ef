package dto

import (
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/domain"
)

// CreateEmployeeRequest represents the request to create a new employee
type CreateEmployeeRequest struct {
	Name       string     `json:"name" binding:"required,min=1,max=255"`
	Email      string     `json:"email" binding:"required,email"`
	Phone      string     `json:"phone" binding:"max=50"`
	Position   string     `json:"position" binding:"max=100"`
	HourlyRate float64    `json:"hourly_rate" binding:"gte=0"`
	HireDate   *time.Time `json:"hire_date"`
}

// UpdateEmployeeRequest represents a partial employee update
type UpdateEmployeeRequest struct {
	Name       *string    `json:"name" binding:"omitempty,min=1,max=255"`
	Email      *string    `json:"email" binding:"omitempty,email"`
	Phone      *string    `json:"phone" binding:"omitempty,max=50"`
	Position   *string    `json:"position" binding:"omitempty,max=100"`
	HourlyRate *float64   `json:"hourly_rate" binding:"omitempty,gte=0"`
	Status     *string    `json:"status" binding:"omitempty,oneof=active inactive terminated"`
	HireDate   *time.Time `json:"hire_date"`
}

// Fields flattens the set pointer fields into a column-keyed map
func (r *UpdateEmployeeRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Email != nil {
		fields["email"] = *r.Email
	}
	if r.Phone != nil {
		fields["phone"] = *r.Phone
	}
	if r.Position != nil {
		fields["position"] = *r.Position
	}
	if r.HourlyRate != nil {
		fields["hourly_rate"] = *r.HourlyRate
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.HireDate != nil {
		fields["hire_date"] = *r.HireDate
	}
	return fields
}

// ListEmployeesRequest captures the query parameters of the employee list
// endpoint
type ListEmployeesRequest struct {
	Status    string `form:"status" binding:"omitempty,oneof=active inactive terminated"`
	Position  string `form:"position"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// EmployeeResponse represents the employee response
type EmployeeResponse struct {
	ID         uuid.UUID  `json:"id"`
	BusinessID uuid.UUID  `json:"business_id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Position   string     `json:"position"`
	HourlyRate float64    `json:"hourly_rate"`
	Status     string     `json:"status"`
	HireDate   *time.Time `json:"hire_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToEmployeeResponse converts an employee model to its response shape
func ToEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		BusinessID: e.BusinessID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
		HourlyRate: e.HourlyRate,
		Status:     string(e.Status),
		HireDate:   e.HireDate,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of employee models
func ToEmployeeResponses(employees []*domain.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, ToEmployeeResponse(e))
	}
	return responses
}
