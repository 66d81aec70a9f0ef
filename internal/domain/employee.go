package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus represents the employment state of an employee
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "active"
	EmployeeStatusInactive   EmployeeStatus = "inactive"
	EmployeeStatusTerminated EmployeeStatus = "terminated"
	EmployeeStatusDeleted    EmployeeStatus = "deleted"
)

// Employee represents a worker employed by the business
type Employee struct {
	BaseModel
	BusinessID uuid.UUID      `gorm:"type:uuid;not null;index:idx_employees_business_id;uniqueIndex:uq_employees_business_email" json:"business_id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Email      string         `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_business_email" json:"email"`
	Phone      string         `gorm:"type:varchar(50)" json:"phone"`
	Position   string         `gorm:"type:varchar(100)" json:"position"`
	HourlyRate float64        `gorm:"type:decimal(8,2);default:0" json:"hourly_rate"`
	Status     EmployeeStatus `gorm:"type:varchar(20);not null;default:'active';index:idx_employees_status" json:"status"`
	HireDate   *time.Time     `gorm:"type:date" json:"hire_date"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}
