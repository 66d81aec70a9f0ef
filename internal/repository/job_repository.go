package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

var jobUpdatableColumns = map[string]bool{
	"title":                true,
	"description":          true,
	"assigned_employee_id": true,
	"estimate_id":          true,
	"scheduled_date":       true,
	"status":               true,
	"total_amount":         true,
}

// JobRepository defines the data access surface for jobs
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Job, error)
	List(ctx context.Context, b *query.Builder) ([]*domain.Job, int64, error)
	UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error
	Complete(ctx context.Context, businessID, id uuid.UUID, totalAmount *float64) error
	Cancel(ctx context.Context, businessID, id uuid.UUID) error
	RevenueSummary(ctx context.Context, b *query.Builder) (float64, error)
}

// jobRepositoryImpl is the GORM implementation of JobRepository
type jobRepositoryImpl struct {
	db *gorm.DB
}

// NewJobRepository creates a new instance of JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepositoryImpl{db: db}
}

// Create inserts a job
func (r *jobRepositoryImpl) Create(ctx context.Context, job *domain.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID finds a job scoped to a business with its customer preloaded
func (r *jobRepositoryImpl) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Job, error) {
	var job domain.Job
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ? AND business_id = ?", id, businessID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns jobs matching the builder's predicate plus the total count
func (r *jobRepositoryImpl) List(ctx context.Context, b *query.Builder) ([]*domain.Job, int64, error) {
	var total int64
	if err := b.Scope(r.db.WithContext(ctx).Model(&domain.Job{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []*domain.Job
	if err := b.Apply(r.db.WithContext(ctx).Model(&domain.Job{})).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// UpdateFields applies a dynamic update filtered against the allow-list.
// Completed and cancelled jobs are immutable.
func (r *jobRepositoryImpl) UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error {
	updates := filterColumns(fields, jobUpdatableColumns)
	if len(updates) == 0 {
		return ErrNoValidFields
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ? AND business_id = ? AND status NOT IN ?", id, businessID,
			[]domain.JobStatus{domain.JobStatusCompleted, domain.JobStatusCancelled}).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Complete marks a job completed, stamping completed_at and optionally the
// final amount
func (r *jobRepositoryImpl) Complete(ctx context.Context, businessID, id uuid.UUID, totalAmount *float64) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":       domain.JobStatusCompleted,
		"completed_at": now,
		"updated_at":   now,
	}
	if totalAmount != nil {
		updates["total_amount"] = *totalAmount
	}

	result := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ? AND business_id = ? AND status NOT IN ?", id, businessID,
			[]domain.JobStatus{domain.JobStatusCompleted, domain.JobStatusCancelled}).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Cancel marks a job cancelled; completed jobs stay completed
func (r *jobRepositoryImpl) Cancel(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("id = ? AND business_id = ? AND status NOT IN ?", id, businessID,
			[]domain.JobStatus{domain.JobStatusCompleted, domain.JobStatusCancelled}).
		Updates(map[string]interface{}{
			"status":     domain.JobStatusCancelled,
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

// RevenueSummary sums total_amount over the rows matching the builder's
// predicate
func (r *jobRepositoryImpl) RevenueSummary(ctx context.Context, b *query.Builder) (float64, error) {
	var total *float64
	err := b.Scope(r.db.WithContext(ctx).Model(&domain.Job{})).
		Select("SUM(total_amount)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
