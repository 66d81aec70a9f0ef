package dto

import (
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/domain"
)

// CreateJobRequest represents the request to schedule a new job
type CreateJobRequest struct {
	CustomerID         uuid.UUID  `json:"customer_id" binding:"required"`
	AssignedEmployeeID *uuid.UUID `json:"assigned_employee_id"`
	EstimateID         *uuid.UUID `json:"estimate_id"`
	Title              string     `json:"title" binding:"required,min=1,max=255"`
	Description        string     `json:"description" binding:"max=2000"`
	ScheduledDate      *time.Time `json:"scheduled_date"`
	TotalAmount        float64    `json:"total_amount" binding:"gte=0"`
}

// UpdateJobRequest represents a partial job update
type UpdateJobRequest struct {
	Title              *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Description        *string    `json:"description" binding:"omitempty,max=2000"`
	AssignedEmployeeID *uuid.UUID `json:"assigned_employee_id"`
	ScheduledDate      *time.Time `json:"scheduled_date"`
	Status             *string    `json:"status" binding:"omitempty,oneof=scheduled in_progress"`
	TotalAmount        *float64   `json:"total_amount" binding:"omitempty,gte=0"`
}

// Fields flattens the set pointer fields into a column-keyed map
func (r *UpdateJobRequest) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.AssignedEmployeeID != nil {
		fields["assigned_employee_id"] = *r.AssignedEmployeeID
	}
	if r.ScheduledDate != nil {
		fields["scheduled_date"] = *r.ScheduledDate
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.TotalAmount != nil {
		fields["total_amount"] = *r.TotalAmount
	}
	return fields
}

// CompleteJobRequest represents the request to mark a job completed
type CompleteJobRequest struct {
	TotalAmount *float64 `json:"total_amount" binding:"omitempty,gte=0"`
}

// ListJobsRequest captures the query parameters of the job list endpoint
type ListJobsRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=scheduled in_progress completed cancelled"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// JobResponse represents the job response
type JobResponse struct {
	ID                 uuid.UUID  `json:"id"`
	BusinessID         uuid.UUID  `json:"business_id"`
	CustomerID         uuid.UUID  `json:"customer_id"`
	AssignedEmployeeID *uuid.UUID `json:"assigned_employee_id"`
	EstimateID         *uuid.UUID `json:"estimate_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	ScheduledDate      *time.Time `json:"scheduled_date"`
	Status             string     `json:"status"`
	TotalAmount        float64    `json:"total_amount"`
	CompletedAt        *time.Time `json:"completed_at"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ToJobResponse converts a job model to its response shape
func ToJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		ID:                 j.ID,
		BusinessID:         j.BusinessID,
		CustomerID:         j.CustomerID,
		AssignedEmployeeID: j.AssignedEmployeeID,
		EstimateID:         j.EstimateID,
		Title:              j.Title,
		Description:        j.Description,
		ScheduledDate:      j.ScheduledDate,
		Status:             string(j.Status),
		TotalAmount:        j.TotalAmount,
		CompletedAt:        j.CompletedAt,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}

// ToJobResponses converts a slice of job models
func ToJobResponses(jobs []*domain.Job) []JobResponse {
	responses := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		responses = append(responses, ToJobResponse(j))
	}
	return responses
}
