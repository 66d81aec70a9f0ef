package dto

import (
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/domain"
)

// CreateTagRequest represents the request to create a new tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// UpdateTagRequest represents the request to rename or recolor a tag
type UpdateTagRequest struct {
	Name  string `json:"name" binding:"omitempty,min=1,max=100"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

// TagResponse represents the tag response
type TagResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// ToTagResponse converts a tag model to its response shape
func ToTagResponse(t *domain.LeadTag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

// ToTagResponses converts a slice of tag models
func ToTagResponses(tags []*domain.LeadTag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		responses = append(responses, ToTagResponse(t))
	}
	return responses
}
