package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the scheduling state of a job
type JobStatus string

const (
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Job represents a scheduled junk-removal job for a customer
type Job struct {
	BaseModel
	BusinessID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_jobs_business_id" json:"business_id"`
	CustomerID         uuid.UUID  `gorm:"type:uuid;not null;index:idx_jobs_customer_id" json:"customer_id"`
	AssignedEmployeeID *uuid.UUID `gorm:"type:uuid;index:idx_jobs_assigned_employee_id" json:"assigned_employee_id"`
	EstimateID         *uuid.UUID `gorm:"type:uuid" json:"estimate_id"`
	Title              string     `gorm:"type:varchar(255);not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	ScheduledDate      *time.Time `gorm:"index:idx_jobs_scheduled_date" json:"scheduled_date"`
	Status             JobStatus  `gorm:"type:varchar(20);not null;default:'scheduled';index:idx_jobs_status" json:"status"`
	TotalAmount        float64    `gorm:"type:decimal(12,2);default:0" json:"total_amount"`
	CompletedAt        *time.Time `json:"completed_at"`

	Customer Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Employee *Employee `gorm:"foreignKey:AssignedEmployeeID" json:"employee,omitempty"`
}

// TableName specifies the table name for Job
func (Job) TableName() string {
	return "jobs"
}
