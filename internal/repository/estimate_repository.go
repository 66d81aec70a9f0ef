package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

// EstimateRepository defines the data access surface for estimates
type EstimateRepository interface {
	CreateWithItems(ctx context.Context, estimate *domain.Estimate, items []*domain.EstimateItem) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Estimate, error)
	List(ctx context.Context, b *query.Builder) ([]*domain.Estimate, int64, error)
	UpdateStatus(ctx context.Context, businessID, id uuid.UUID, from []domain.EstimateStatus, to domain.EstimateStatus) error
	ReplaceItems(ctx context.Context, businessID, id uuid.UUID, items []*domain.EstimateItem) error
}

// estimateRepositoryImpl is the GORM implementation of EstimateRepository
type estimateRepositoryImpl struct {
	db *gorm.DB
}

// NewEstimateRepository creates a new instance of EstimateRepository
func NewEstimateRepository(db *gorm.DB) EstimateRepository {
	return &estimateRepositoryImpl{db: db}
}

// CreateWithItems inserts an estimate and its line items in one transaction.
// The estimate amount is recomputed from the items when any are given.
func (r *estimateRepositoryImpl) CreateWithItems(ctx context.Context, estimate *domain.Estimate, items []*domain.EstimateItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(items) > 0 {
			estimate.Amount = sumItems(items)
		}
		if err := tx.Create(estimate).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.EstimateID = estimate.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds an estimate scoped to a business with its items preloaded
func (r *estimateRepositoryImpl) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Estimate, error) {
	var estimate domain.Estimate
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&estimate).Error
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// List returns estimates matching the builder's predicate plus the total count
func (r *estimateRepositoryImpl) List(ctx context.Context, b *query.Builder) ([]*domain.Estimate, int64, error) {
	var total int64
	if err := b.Scope(r.db.WithContext(ctx).Model(&domain.Estimate{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var estimates []*domain.Estimate
	if err := b.Apply(r.db.WithContext(ctx).Model(&domain.Estimate{})).Find(&estimates).Error; err != nil {
		return nil, 0, err
	}
	return estimates, total, nil
}

// UpdateStatus moves an estimate between statuses. The from list guards the
// transition; a row in any other status is reported as not found.
func (r *estimateRepositoryImpl) UpdateStatus(ctx context.Context, businessID, id uuid.UUID, from []domain.EstimateStatus, to domain.EstimateStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.Estimate{}).
		Where("id = ? AND business_id = ? AND status IN ?", id, businessID, from).
		Updates(map[string]interface{}{
			"status":     to,
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

// ReplaceItems swaps an estimate's line items and recomputes its amount, all
// in one transaction. Only draft estimates can be edited.
func (r *estimateRepositoryImpl) ReplaceItems(ctx context.Context, businessID, id uuid.UUID, items []*domain.EstimateItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var estimate domain.Estimate
		err := tx.Where("id = ? AND business_id = ? AND status = ?", id, businessID, domain.EstimateStatusDraft).
			First(&estimate).Error
		if err != nil {
			return err
		}

		if err := tx.Where("estimate_id = ?", id).Delete(&domain.EstimateItem{}).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.EstimateID = id
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}

		return tx.Model(&domain.Estimate{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"amount":     sumItems(items),
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

func sumItems(items []*domain.EstimateItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}
