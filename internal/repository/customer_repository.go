package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

var customerUpdatableColumns = map[string]bool{
	"name":          true,
	"company":       true,
	"email":         true,
	"phone":         true,
	"mobile":        true,
	"address":       true,
	"city":          true,
	"state":         true,
	"zip_code":      true,
	"customer_type": true,
	"status":        true,
}

// CustomerRepository defines the data access surface for customers
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, b *query.Builder) ([]*domain.Customer, int64, error)
	UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error
	SearchCandidates(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Customer, error)
}

// customerRepositoryImpl is the GORM implementation of CustomerRepository
type customerRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

// Create inserts a customer
func (r *customerRepositoryImpl) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// FindByID finds a customer scoped to a business, excluding soft-deleted rows
func (r *customerRepositoryImpl) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.CustomerStatusDeleted).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns customers matching the builder's predicate plus the total count
func (r *customerRepositoryImpl) List(ctx context.Context, b *query.Builder) ([]*domain.Customer, int64, error) {
	var total int64
	if err := b.Scope(r.db.WithContext(ctx).Model(&domain.Customer{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []*domain.Customer
	if err := b.Apply(r.db.WithContext(ctx).Model(&domain.Customer{})).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// UpdateFields applies a dynamic update filtered against the allow-list
func (r *customerRepositoryImpl) UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error {
	updates := filterColumns(fields, customerUpdatableColumns)
	if len(updates) == 0 {
		return ErrNoValidFields
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.CustomerStatusDeleted).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete flips the customer status to deleted
func (r *customerRepositoryImpl) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.CustomerStatusDeleted).
		Updates(map[string]interface{}{
			"status":     domain.CustomerStatusDeleted,
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

// SearchCandidates returns non-deleted customers matching the term
func (r *customerRepositoryImpl) SearchCandidates(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Customer, error) {
	pattern := "%" + term + "%"
	var customers []*domain.Customer
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND status <> ?", businessID, domain.CustomerStatusDeleted).
		Where("name LIKE ? OR company LIKE ? OR email LIKE ? OR phone LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
