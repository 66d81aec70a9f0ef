package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

// SmsLogRepository defines the append-only audit surface for SMS traffic.
// There is deliberately no update or delete.
type SmsLogRepository interface {
	Create(ctx context.Context, log *domain.SmsLog) error
	FindByVendorSID(ctx context.Context, vendorSID string) (*domain.SmsLog, error)
	List(ctx context.Context, b *query.Builder) ([]*domain.SmsLog, int64, error)
	ListByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.SmsLog, error)
}

// smsLogRepositoryImpl is the GORM implementation of SmsLogRepository
type smsLogRepositoryImpl struct {
	db *gorm.DB
}

// NewSmsLogRepository creates a new instance of SmsLogRepository
func NewSmsLogRepository(db *gorm.DB) SmsLogRepository {
	return &smsLogRepositoryImpl{db: db}
}

// Create appends an audit row
func (r *smsLogRepositoryImpl) Create(ctx context.Context, log *domain.SmsLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByVendorSID finds the audit row for a vendor message id
func (r *smsLogRepositoryImpl) FindByVendorSID(ctx context.Context, vendorSID string) (*domain.SmsLog, error) {
	var log domain.SmsLog
	err := r.db.WithContext(ctx).
		Where("vendor_sid = ?", vendorSID).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// List returns audit rows matching the builder's predicate plus the total count
func (r *smsLogRepositoryImpl) List(ctx context.Context, b *query.Builder) ([]*domain.SmsLog, int64, error) {
	var total int64
	if err := b.Scope(r.db.WithContext(ctx).Model(&domain.SmsLog{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []*domain.SmsLog
	if err := b.Apply(r.db.WithContext(ctx).Model(&domain.SmsLog{})).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ListByLead lists a lead's SMS history newest first
func (r *smsLogRepositoryImpl) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.SmsLog, error) {
	var logs []*domain.SmsLog
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
