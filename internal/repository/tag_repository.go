package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
)

// TagRepository defines the data access surface for lead tags
type TagRepository interface {
	Create(ctx context.Context, tag *domain.LeadTag) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.LeadTag, error)
	FindByName(ctx context.Context, businessID uuid.UUID, name string) (*domain.LeadTag, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.LeadTag, error)
	Update(ctx context.Context, businessID, id uuid.UUID, name, color string) error
	Delete(ctx context.Context, businessID, id uuid.UUID) error
	AssignmentCount(ctx context.Context, tagID uuid.UUID) (int64, error)
}

// tagRepositoryImpl is the GORM implementation of TagRepository
type tagRepositoryImpl struct {
	db *gorm.DB
}

// NewTagRepository creates a new instance of TagRepository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepositoryImpl{db: db}
}

// Create inserts a tag
func (r *tagRepositoryImpl) Create(ctx context.Context, tag *domain.LeadTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// FindByID finds a tag scoped to a business
func (r *tagRepositoryImpl) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.LeadTag, error) {
	var tag domain.LeadTag
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByName finds a tag by name within a business
func (r *tagRepositoryImpl) FindByName(ctx context.Context, businessID uuid.UUID, name string) (*domain.LeadTag, error) {
	var tag domain.LeadTag
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND name = ?", businessID, name).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListByBusiness lists a business's tags sorted by name
func (r *tagRepositoryImpl) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.LeadTag, error) {
	var tags []*domain.LeadTag
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// Update renames or recolors a tag
func (r *tagRepositoryImpl) Update(ctx context.Context, businessID, id uuid.UUID, name, color string) error {
	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	if name != "" {
		updates["name"] = name
	}
	if color != "" {
		updates["color"] = color
	}

	result := r.db.WithContext(ctx).Model(&domain.LeadTag{}).
		Where("id = ? AND business_id = ?", id, businessID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a tag. Assignments are checked by the service first.
func (r *tagRepositoryImpl) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", id, businessID).
		Delete(&domain.LeadTag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AssignmentCount counts leads currently carrying the tag
func (r *tagRepositoryImpl) AssignmentCount(ctx context.Context, tagID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LeadTagAssignment{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}
