package dto

import (
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/domain"
)

// EstimateItemRequest represents one line item on an estimate
type EstimateItemRequest struct {
	Description string  `json:"description" binding:"required,min=1,max=255"`
	Quantity    int     `json:"quantity" binding:"required,gte=1"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
}

// CreateEstimateRequest represents the request to create a new estimate.
// Exactly one of customer_id or lead_id must be set; the service enforces it.
type CreateEstimateRequest struct {
	CustomerID  *uuid.UUID            `json:"customer_id"`
	LeadID      *uuid.UUID            `json:"lead_id"`
	Amount      float64               `json:"amount" binding:"gte=0"`
	Description string                `json:"description" binding:"max=2000"`
	ValidUntil  *time.Time            `json:"valid_until"`
	Items       []EstimateItemRequest `json:"items" binding:"omitempty,dive"`
}

// ReplaceEstimateItemsRequest represents the request to replace the line
// items of a draft estimate
type ReplaceEstimateItemsRequest struct {
	Items []EstimateItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ListEstimatesRequest captures the query parameters of the estimate list
// endpoint
type ListEstimatesRequest struct {
	Status     string `form:"status" binding:"omitempty,oneof=draft sent accepted declined"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	LeadID     string `form:"lead_id" binding:"omitempty,uuid"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// EstimateItemResponse represents a line item on an estimate response
type EstimateItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
}

// EstimateResponse represents the estimate response
type EstimateResponse struct {
	ID          uuid.UUID              `json:"id"`
	BusinessID  uuid.UUID              `json:"business_id"`
	CustomerID  *uuid.UUID             `json:"customer_id"`
	LeadID      *uuid.UUID             `json:"lead_id"`
	Amount      float64                `json:"amount"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	ValidUntil  *time.Time             `json:"valid_until"`
	Items       []EstimateItemResponse `json:"items"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ToEstimateResponse converts an estimate model to its response shape
func ToEstimateResponse(e *domain.Estimate) EstimateResponse {
	items := make([]EstimateItemResponse, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, EstimateItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return EstimateResponse{
		ID:          e.ID,
		BusinessID:  e.BusinessID,
		CustomerID:  e.CustomerID,
		LeadID:      e.LeadID,
		Amount:      e.Amount,
		Description: e.Description,
		Status:      string(e.Status),
		ValidUntil:  e.ValidUntil,
		Items:       items,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ToEstimateResponses converts a slice of estimate models
func ToEstimateResponses(estimates []*domain.Estimate) []EstimateResponse {
	responses := make([]EstimateResponse, 0, len(estimates))
	for _, e := range estimates {
		responses = append(responses, ToEstimateResponse(e))
	}
	return responses
}
