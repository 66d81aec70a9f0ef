package domain

import "github.com/google/uuid"

// CustomerType distinguishes residential and commercial accounts
type CustomerType string

const (
	CustomerTypeResidential CustomerType = "residential"
	CustomerTypeCommercial  CustomerType = "commercial"
)

// CustomerStatus represents the lifecycle state of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
	CustomerStatusDeleted  CustomerStatus = "deleted"
)

// Customer represents a paying customer of the business
type Customer struct {
	BaseModel
	BusinessID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_customers_business_id" json:"business_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Company      string         `gorm:"type:varchar(255)" json:"company"`
	Email        string         `gorm:"type:varchar(255);index:idx_customers_email" json:"email"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	Mobile       string         `gorm:"type:varchar(50)" json:"mobile"`
	Address      string         `gorm:"type:varchar(255)" json:"address"`
	City         string         `gorm:"type:varchar(100)" json:"city"`
	State        string         `gorm:"type:varchar(50)" json:"state"`
	ZipCode      string         `gorm:"type:varchar(20)" json:"zip_code"`
	CustomerType CustomerType   `gorm:"type:varchar(20);not null;default:'residential'" json:"customer_type"`
	Status       CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_customers_status" json:"status"`
	// SourceLeadID is set when the customer was produced by a lead conversion
	SourceLeadID *uuid.UUID `gorm:"type:uuid" json:"source_lead_id"`

	Jobs []Job `gorm:"foreignKey:CustomerID" json:"jobs,omitempty"`
}

// TableName specifies the table name for Customer
func (Customer) TableName() string {
	return "customers"
}
