package domain

import (
	"time"

	"github.com/google/uuid"
)

// EstimateStatus represents the lifecycle state of an estimate
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusAccepted EstimateStatus = "accepted"
	EstimateStatusDeclined EstimateStatus = "declined"
)

// Estimate represents a priced quote attached to a customer or a lead
type Estimate struct {
	BaseModel
	BusinessID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_estimates_business_id" json:"business_id"`
	CustomerID  *uuid.UUID     `gorm:"type:uuid;index:idx_estimates_customer_id" json:"customer_id"`
	LeadID      *uuid.UUID     `gorm:"type:uuid;index:idx_estimates_lead_id" json:"lead_id"`
	Amount      float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string         `gorm:"type:text" json:"description"`
	Status      EstimateStatus `gorm:"type:varchar(20);not null;default:'draft';index:idx_estimates_status" json:"status"`
	ValidUntil  *time.Time     `json:"valid_until"`

	Items []EstimateItem `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName specifies the table name for Estimate
func (Estimate) TableName() string {
	return "estimates"
}

// EstimateItem represents a line item on an estimate
type EstimateItem struct {
	BaseModel
	EstimateID  uuid.UUID `gorm:"type:uuid;not null;index:idx_estimate_items_estimate_id" json:"estimate_id"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(12,2);not null" json:"unit_price"`
}

// TableName specifies the table name for EstimateItem
func (EstimateItem) TableName() string {
	return "estimate_items"
}
