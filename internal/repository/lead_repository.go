package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

// ErrNoValidFields is returned by dynamic updates when no requested field
// survives the mutable-column allow-list.
var ErrNoValidFields = errors.New("no valid fields to update")

// ErrLeadAlreadyConverted guards the conversion flow against repeats.
var ErrLeadAlreadyConverted = errors.New("lead already converted")

// leadUpdatableColumns is the allow-list for dynamic lead updates.
// Caller-supplied keys never reach SQL; only these column names do.
var leadUpdatableColumns = map[string]bool{
	"name":                true,
	"company":             true,
	"email":               true,
	"phone":               true,
	"mobile":              true,
	"address":             true,
	"city":                true,
	"state":               true,
	"zip_code":            true,
	"status":              true,
	"source":              true,
	"priority":            true,
	"estimated_value":     true,
	"lead_score":          true,
	"assigned_to":         true,
	"next_follow_up_date": true,
}

// LeadRepository defines the data access surface for leads and their children
type LeadRepository interface {
	CreateWithChildren(ctx context.Context, lead *domain.Lead, contacts []*domain.LeadContact, tagIDs []uuid.UUID, performedBy *uuid.UUID) error
	FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Lead, error)
	List(ctx context.Context, b *query.Builder) ([]*domain.Lead, int64, error)
	CountByColumn(ctx context.Context, b *query.Builder, column string) (map[string]int64, error)
	UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error
	SoftDelete(ctx context.Context, businessID, id uuid.UUID) error
	Convert(ctx context.Context, lead *domain.Lead, customer *domain.Customer, conversion *domain.LeadConversion) error

	CreateContact(ctx context.Context, contact *domain.LeadContact) error
	FindContacts(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadContact, error)
	SetPrimaryContact(ctx context.Context, leadID, contactID uuid.UUID) error
	DeleteContact(ctx context.Context, leadID, contactID uuid.UUID) error

	CreateActivity(ctx context.Context, activity *domain.LeadActivity, stampLastContact bool) error
	FindActivities(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error)
	CreateNote(ctx context.Context, note *domain.LeadNote) error
	FindNotes(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadNote, error)
	UpsertQualification(ctx context.Context, q *domain.LeadQualification) error
	FindQualification(ctx context.Context, leadID uuid.UUID) (*domain.LeadQualification, error)

	CreateFollowUp(ctx context.Context, f *domain.LeadFollowUp) error
	FindFollowUps(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadFollowUp, error)
	CompleteFollowUp(ctx context.Context, leadID, followUpID uuid.UUID) error
	MarkOverdueFollowUps(ctx context.Context, asOf time.Time) (int64, error)
	EscalateLeadsWithOverdueFollowUps(ctx context.Context) (int64, error)

	AssignTag(ctx context.Context, leadID, tagID uuid.UUID) error
	RemoveTag(ctx context.Context, leadID, tagID uuid.UUID) error
	FindTags(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadTag, error)

	SearchCandidates(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Lead, error)
}

// leadRepositoryImpl is the GORM implementation of LeadRepository
type leadRepositoryImpl struct {
	db *gorm.DB
}

// NewLeadRepository creates a new instance of LeadRepository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepositoryImpl{db: db}
}

// CreateWithChildren inserts a lead together with its nested contacts, tag
// assignments, an initial_contact activity and an empty qualification record.
// Everything runs inside one transaction; any nested failure rolls the whole
// creation back.
func (r *leadRepositoryImpl) CreateWithChildren(ctx context.Context, lead *domain.Lead, contacts []*domain.LeadContact, tagIDs []uuid.UUID, performedBy *uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lead).Error; err != nil {
			return err
		}

		primarySeen := false
		for _, contact := range contacts {
			contact.LeadID = lead.ID
			// At most one primary contact survives, first one wins
			if contact.IsPrimaryContact {
				if primarySeen {
					contact.IsPrimaryContact = false
				}
				primarySeen = true
			}
			if err := tx.Create(contact).Error; err != nil {
				return err
			}
		}

		for _, tagID := range tagIDs {
			assignment := &domain.LeadTagAssignment{LeadID: lead.ID, TagID: tagID}
			if err := tx.Create(assignment).Error; err != nil {
				return err
			}
		}

		activity := &domain.LeadActivity{
			LeadID:       lead.ID,
			ActivityType: domain.ActivityInitialContact,
			Subject:      "Lead created",
			PerformedBy:  performedBy,
		}
		if err := tx.Create(activity).Error; err != nil {
			return err
		}

		qualification := &domain.LeadQualification{LeadID: lead.ID}
		return tx.Create(qualification).Error
	})
}

// FindByID finds a lead scoped to a business, excluding soft-deleted rows
func (r *leadRepositoryImpl) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.LeadStatusDeleted).
		First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// List returns leads matching the builder's predicate plus the total count
// computed with the same predicate
func (r *leadRepositoryImpl) List(ctx context.Context, b *query.Builder) ([]*domain.Lead, int64, error) {
	var total int64
	if err := b.Scope(r.db.WithContext(ctx).Model(&domain.Lead{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leads []*domain.Lead
	if err := b.Apply(r.db.WithContext(ctx).Model(&domain.Lead{})).Find(&leads).Error; err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// CountByColumn groups the rows matching the builder's predicate by the given
// column. The column name comes from the repository, never from the caller.
func (r *leadRepositoryImpl) CountByColumn(ctx context.Context, b *query.Builder, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	err := b.Scope(r.db.WithContext(ctx).Model(&domain.Lead{})).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Key] = r.Count
	}
	return counts, nil
}

// UpdateFields applies a dynamic update filtered against the allow-list of
// mutable columns. Returns ErrNoValidFields when nothing survives the filter.
func (r *leadRepositoryImpl) UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error {
	updates := filterColumns(fields, leadUpdatableColumns)
	if len(updates) == 0 {
		return ErrNoValidFields
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.LeadStatusDeleted).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDelete flips the lead status to deleted; the row is retained
func (r *leadRepositoryImpl) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id = ? AND business_id = ? AND status <> ?", id, businessID, domain.LeadStatusDeleted).
		Updates(map[string]interface{}{
			"status":     domain.LeadStatusDeleted,
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

// Convert performs the lead-to-customer conversion atomically: the status flip
// guards against concurrent conversions, then the customer and conversion rows
// are inserted and the lead back-filled, all in one transaction.
func (r *leadRepositoryImpl) Convert(ctx context.Context, lead *domain.Lead, customer *domain.Customer, conversion *domain.LeadConversion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		// Conditional update: loses the race cleanly if another request
		// converted the lead first
		result := tx.Model(&domain.Lead{}).
			Where("id = ? AND status NOT IN ?", lead.ID, []domain.LeadStatus{domain.LeadStatusConverted, domain.LeadStatusDeleted}).
			Updates(map[string]interface{}{
				"status":       domain.LeadStatusConverted,
				"converted_at": now,
				"updated_at":   now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrLeadAlreadyConverted
		}

		if err := tx.Create(customer).Error; err != nil {
			return err
		}

		conversion.LeadID = lead.ID
		conversion.CustomerID = customer.ID
		if err := tx.Create(conversion).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Lead{}).
			Where("id = ?", lead.ID).
			Update("converted_to_customer_id", customer.ID).Error
	})
}

// CreateContact inserts a contact. When the new contact is flagged primary the
// siblings are unset in the same transaction so at most one primary survives.
func (r *leadRepositoryImpl) CreateContact(ctx context.Context, contact *domain.LeadContact) error {
	if !contact.IsPrimaryContact {
		return r.db.WithContext(ctx).Create(contact).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.LeadContact{}).
			Where("lead_id = ? AND is_primary_contact = ?", contact.LeadID, true).
			Update("is_primary_contact", false).Error; err != nil {
			return err
		}
		return tx.Create(contact).Error
	})
}

// FindContacts lists a lead's contacts oldest first
func (r *leadRepositoryImpl) FindContacts(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadContact, error) {
	var contacts []*domain.LeadContact
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// SetPrimaryContact atomically moves the primary flag to the given contact.
// The unset and set run inside one transaction, so concurrent calls cannot
// leave two primaries behind.
func (r *leadRepositoryImpl) SetPrimaryContact(ctx context.Context, leadID, contactID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.LeadContact{}).
			Where("lead_id = ? AND id <> ?", leadID, contactID).
			Update("is_primary_contact", false).Error; err != nil {
			return err
		}

		result := tx.Model(&domain.LeadContact{}).
			Where("id = ? AND lead_id = ?", contactID, leadID).
			Update("is_primary_contact", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// DeleteContact removes a contact. When the deleted contact was primary, the
// oldest remaining sibling is promoted inside the same transaction.
func (r *leadRepositoryImpl) DeleteContact(ctx context.Context, leadID, contactID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contact domain.LeadContact
		if err := tx.Where("id = ? AND lead_id = ?", contactID, leadID).First(&contact).Error; err != nil {
			return err
		}

		if err := tx.Delete(&contact).Error; err != nil {
			return err
		}

		if !contact.IsPrimaryContact {
			return nil
		}

		var oldest domain.LeadContact
		err := tx.Where("lead_id = ?", leadID).
			Order("created_at ASC").
			First(&oldest).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No siblings left, zero primaries is fine
			return nil
		}
		if err != nil {
			return err
		}

		return tx.Model(&domain.LeadContact{}).
			Where("id = ?", oldest.ID).
			Update("is_primary_contact", true).Error
	})
}

// CreateActivity inserts an activity and, for contact-type activities, stamps
// the lead's last_contact_date in the same transaction
func (r *leadRepositoryImpl) CreateActivity(ctx context.Context, activity *domain.LeadActivity, stampLastContact bool) error {
	if !stampLastContact {
		return r.db.WithContext(ctx).Create(activity).Error
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(activity).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		return tx.Model(&domain.Lead{}).
			Where("id = ?", activity.LeadID).
			Updates(map[string]interface{}{
				"last_contact_date": now,
				"updated_at":        now,
			}).Error
	})
}

// FindActivities lists a lead's activities newest first
func (r *leadRepositoryImpl) FindActivities(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error) {
	var activities []*domain.LeadActivity
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// CreateNote inserts a note
func (r *leadRepositoryImpl) CreateNote(ctx context.Context, note *domain.LeadNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// FindNotes lists a lead's notes newest first
func (r *leadRepositoryImpl) FindNotes(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadNote, error) {
	var notes []*domain.LeadNote
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpsertQualification creates or replaces the lead's single qualification.
// When is_qualified is true the lead status is pushed to qualified in the
// same transaction.
func (r *leadRepositoryImpl) UpsertQualification(ctx context.Context, q *domain.LeadQualification) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.LeadQualification
		err := tx.Where("lead_id = ?", q.LeadID).First(&existing).Error
		switch {
		case err == nil:
			q.ID = existing.ID
			q.CreatedAt = existing.CreatedAt
			if err := tx.Save(q).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(q).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if !q.IsQualified {
			return nil
		}
		return tx.Model(&domain.Lead{}).
			Where("id = ?", q.LeadID).
			Updates(map[string]interface{}{
				"status":     domain.LeadStatusQualified,
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

// FindQualification returns the lead's qualification record
func (r *leadRepositoryImpl) FindQualification(ctx context.Context, leadID uuid.UUID) (*domain.LeadQualification, error) {
	var q domain.LeadQualification
	if err := r.db.WithContext(ctx).Where("lead_id = ?", leadID).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateFollowUp inserts a scheduled follow-up
func (r *leadRepositoryImpl) CreateFollowUp(ctx context.Context, f *domain.LeadFollowUp) error {
	return r.db.WithContext(ctx).Create(f).Error
}

// FindFollowUps lists a lead's follow-ups soonest first
func (r *leadRepositoryImpl) FindFollowUps(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadFollowUp, error) {
	var followUps []*domain.LeadFollowUp
	err := r.db.WithContext(ctx).
		Where("lead_id = ?", leadID).
		Order("scheduled_date ASC").
		Find(&followUps).Error
	if err != nil {
		return nil, err
	}
	return followUps, nil
}

// CompleteFollowUp marks a follow-up completed and moves the lead's
// next_follow_up_date to the next pending follow-up, if any
func (r *leadRepositoryImpl) CompleteFollowUp(ctx context.Context, leadID, followUpID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		result := tx.Model(&domain.LeadFollowUp{}).
			Where("id = ? AND lead_id = ? AND status IN ?", followUpID, leadID,
				[]domain.FollowUpStatus{domain.FollowUpPending, domain.FollowUpOverdue}).
			Updates(map[string]interface{}{
				"status":       domain.FollowUpCompleted,
				"completed_at": now,
				"updated_at":   now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var next domain.LeadFollowUp
		err := tx.Where("lead_id = ? AND status = ?", leadID, domain.FollowUpPending).
			Order("scheduled_date ASC").
			First(&next).Error

		var nextDate interface{}
		switch {
		case err == nil:
			nextDate = next.ScheduledDate
		case errors.Is(err, gorm.ErrRecordNotFound):
			nextDate = nil
		default:
			return err
		}

		return tx.Model(&domain.Lead{}).
			Where("id = ?", leadID).
			Updates(map[string]interface{}{
				"next_follow_up_date": nextDate,
				"updated_at":          now,
			}).Error
	})
}

// MarkOverdueFollowUps flips pending follow-ups whose scheduled date has
// passed to overdue and returns how many were flipped
func (r *leadRepositoryImpl) MarkOverdueFollowUps(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.LeadFollowUp{}).
		Where("status = ? AND scheduled_date < ?", domain.FollowUpPending, asOf).
		Updates(map[string]interface{}{
			"status":     domain.FollowUpOverdue,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// EscalateLeadsWithOverdueFollowUps raises the priority of active leads that
// carry an overdue follow-up. Leads already at high or urgent are untouched.
func (r *leadRepositoryImpl) EscalateLeadsWithOverdueFollowUps(ctx context.Context) (int64, error) {
	sub := r.db.Model(&domain.LeadFollowUp{}).
		Select("lead_id").
		Where("status = ?", domain.FollowUpOverdue)

	result := r.db.WithContext(ctx).Model(&domain.Lead{}).
		Where("id IN (?)", sub).
		Where("priority NOT IN ?", []domain.LeadPriority{domain.LeadPriorityHigh, domain.LeadPriorityUrgent}).
		Where("status NOT IN ?", []domain.LeadStatus{domain.LeadStatusConverted, domain.LeadStatusDeleted, domain.LeadStatusLost}).
		Updates(map[string]interface{}{
			"priority":   domain.LeadPriorityHigh,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

// AssignTag attaches a tag to a lead
func (r *leadRepositoryImpl) AssignTag(ctx context.Context, leadID, tagID uuid.UUID) error {
	assignment := &domain.LeadTagAssignment{LeadID: leadID, TagID: tagID}
	return r.db.WithContext(ctx).Create(assignment).Error
}

// RemoveTag detaches a tag from a lead
func (r *leadRepositoryImpl) RemoveTag(ctx context.Context, leadID, tagID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("lead_id = ? AND tag_id = ?", leadID, tagID).
		Delete(&domain.LeadTagAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindTags lists the tags assigned to a lead
func (r *leadRepositoryImpl) FindTags(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadTag, error) {
	var tags []*domain.LeadTag
	err := r.db.WithContext(ctx).Model(&domain.LeadTag{}).
		Joins("JOIN lead_tag_assignments ON lead_tag_assignments.tag_id = lead_tags.id").
		Where("lead_tag_assignments.lead_id = ?", leadID).
		Order("lead_tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// SearchCandidates returns non-deleted leads whose text columns match the
// term. Scoring happens in the service; the cap bounds the scan.
func (r *leadRepositoryImpl) SearchCandidates(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Lead, error) {
	pattern := "%" + term + "%"
	var leads []*domain.Lead
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND status <> ?", businessID, domain.LeadStatusDeleted).
		Where("name LIKE ? OR company LIKE ? OR email LIKE ? OR phone LIKE ? OR city LIKE ?",
			pattern, pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&leads).Error
	if err != nil {
		return nil, err
	}
	return leads, nil
}

// filterColumns keeps only the keys present in the allow-list
func filterColumns(fields map[string]interface{}, allowed map[string]bool) map[string]interface{} {
	filtered := make(map[string]interface{}, len(fields))
	for key, value := range fields {
		if allowed[key] {
			filtered[key] = value
		}
	}
	return filtered
}
