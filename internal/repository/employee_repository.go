package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

var employeeUpdatableColumns = map[string]bool{
	"name":        true,
	"email":       true,
	"phone":       true,
	"position":    true,
	"hourly_rate": true,
	"status":      true,
	"hire_date":   true,
}

// EmployeeRepository defines the data access surface for employees
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Employee, error)
	FindByEmail(ctx context.Context, businessID uuid.UUID, email string) (*domain.Employee, error)
	List(ctx context.Context, b *query.Builder) ([]*domain.Employee, int64, error)
	UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error
}

// employeeRepositoryImpl is the GORM implementation of EmployeeRepository
type employeeRepositoryImpl struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new instance of EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create inserts an employee
func (r *employeeRepositoryImpl) Create(ctx context.Context, employee *domain.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

// FindByID finds an employee scoped to a business, excluding soft-deleted rows
func (r *employeeRepositoryImpl) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.EmployeeStatusDeleted).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail finds an employee by email within a business
func (r *employeeRepositoryImpl) FindByEmail(ctx context.Context, businessID uuid.UUID, email string) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND email = ? AND status <> ?", businessID, email, domain.EmployeeStatusDeleted).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns employees matching the builder's predicate plus the total count
func (r *employeeRepositoryImpl) List(ctx context.Context, b *query.Builder) ([]*domain.Employee, int64, error) {
	var total int64
	if err := b.Scope(r.db.WithContext(ctx).Model(&domain.Employee{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*domain.Employee
	if err := b.Apply(r.db.WithContext(ctx).Model(&domain.Employee{})).Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// UpdateFields applies a dynamic update filtered against the allow-list
func (r *employeeRepositoryImpl) UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error {
	updates := filterColumns(fields, employeeUpdatableColumns)
	if len(updates) == 0 {
		return ErrNoValidFields
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.EmployeeStatusDeleted).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete flips the employee status to deleted
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.Employee{}).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.EmployeeStatusDeleted).
		Updates(map[string]interface{}{
			"status":     domain.EmployeeStatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
