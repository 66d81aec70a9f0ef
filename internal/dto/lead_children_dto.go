package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"junkops-api/internal/domain"
)

// CreateLeadContactRequest represents the request to add a contact to a lead
type CreateLeadContactRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=255"`
	Email            string `json:"email" binding:"omitempty,email"`
	Phone            string `json:"phone" binding:"max=50"`
	Role             string `json:"role" binding:"max=100"`
	IsPrimaryContact bool   `json:"is_primary_contact"`
}

// LeadContactResponse represents a lead contact
type LeadContactResponse struct {
	ID               uuid.UUID `json:"id"`
	LeadID           uuid.UUID `json:"lead_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Role             string    `json:"role"`
	IsPrimaryContact bool      `json:"is_primary_contact"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToLeadContactResponse converts a contact model to its response shape
func ToLeadContactResponse(c *domain.LeadContact) LeadContactResponse {
	return LeadContactResponse{
		ID:               c.ID,
		LeadID:           c.LeadID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Role:             c.Role,
		IsPrimaryContact: c.IsPrimaryContact,
		CreatedAt:        c.CreatedAt,
	}
}

// ToLeadContactResponses converts a slice of contact models
func ToLeadContactResponses(contacts []*domain.LeadContact) []LeadContactResponse {
	responses := make([]LeadContactResponse, 0, len(contacts))
	for _, c := range contacts {
		responses = append(responses, ToLeadContactResponse(c))
	}
	return responses
}

// CreateLeadActivityRequest represents the request to log an activity
type CreateLeadActivityRequest struct {
	ActivityType   string     `json:"activity_type" binding:"required,oneof=initial_contact phone_call email sms meeting site_visit note status_change"`
	Subject        string     `json:"subject" binding:"max=255"`
	Description    string     `json:"description" binding:"max=2000"`
	Outcome        string     `json:"outcome" binding:"max=255"`
	NextAction     string     `json:"next_action" binding:"max=255"`
	NextActionDate *time.Time `json:"next_action_date"`
}

// LeadActivityResponse represents a logged activity
type LeadActivityResponse struct {
	ID             uuid.UUID  `json:"id"`
	LeadID         uuid.UUID  `json:"lead_id"`
	ActivityType   string     `json:"activity_type"`
	Subject        string     `json:"subject"`
	Description    string     `json:"description"`
	Outcome        string     `json:"outcome"`
	NextAction     string     `json:"next_action"`
	NextActionDate *time.Time `json:"next_action_date"`
	PerformedBy    *uuid.UUID `json:"performed_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToLeadActivityResponse converts an activity model to its response shape
func ToLeadActivityResponse(a *domain.LeadActivity) LeadActivityResponse {
	return LeadActivityResponse{
		ID:             a.ID,
		LeadID:         a.LeadID,
		ActivityType:   string(a.ActivityType),
		Subject:        a.Subject,
		Description:    a.Description,
		Outcome:        a.Outcome,
		NextAction:     a.NextAction,
		NextActionDate: a.NextActionDate,
		PerformedBy:    a.PerformedBy,
		CreatedAt:      a.CreatedAt,
	}
}

// ToLeadActivityResponses converts a slice of activity models
func ToLeadActivityResponses(activities []*domain.LeadActivity) []LeadActivityResponse {
	responses := make([]LeadActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, ToLeadActivityResponse(a))
	}
	return responses
}

// CreateLeadNoteRequest represents the request to attach a note to a lead
type CreateLeadNoteRequest struct {
	Note     string     `json:"note" binding:"required,min=1"`
	Priority string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	DueDate  *time.Time `json:"due_date"`
}

// LeadNoteResponse represents a lead note
type LeadNoteResponse struct {
	ID          uuid.UUID  `json:"id"`
	LeadID      uuid.UUID  `json:"lead_id"`
	Note        string     `json:"note"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	IsCompleted bool       `json:"is_completed"`
	CreatedBy   *uuid.UUID `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToLeadNoteResponse converts a note model to its response shape
func ToLeadNoteResponse(n *domain.LeadNote) LeadNoteResponse {
	return LeadNoteResponse{
		ID:          n.ID,
		LeadID:      n.LeadID,
		Note:        n.Note,
		Priority:    string(n.Priority),
		DueDate:     n.DueDate,
		IsCompleted: n.IsCompleted,
		CreatedBy:   n.CreatedBy,
		CreatedAt:   n.CreatedAt,
	}
}

// ToLeadNoteResponses converts a slice of note models
func ToLeadNoteResponses(notes []*domain.LeadNote) []LeadNoteResponse {
	responses := make([]LeadNoteResponse, 0, len(notes))
	for _, n := range notes {
		responses = append(responses, ToLeadNoteResponse(n))
	}
	return responses
}

// UpsertQualificationRequest represents the request to set a lead's
// qualification assessment
type UpsertQualificationRequest struct {
	IsQualified        bool           `json:"is_qualified"`
	QualificationScore int            `json:"qualification_score" binding:"gte=0,lte=100"`
	BudgetRange        string         `json:"budget_range" binding:"max=100"`
	Timeline           string         `json:"timeline" binding:"max=100"`
	Criteria           datatypes.JSON `json:"criteria"`
}

// QualificationResponse represents a lead's qualification record
type QualificationResponse struct {
	ID                 uuid.UUID      `json:"id"`
	LeadID             uuid.UUID      `json:"lead_id"`
	IsQualified        bool           `json:"is_qualified"`
	QualificationScore int            `json:"qualification_score"`
	BudgetRange        string         `json:"budget_range"`
	Timeline           string         `json:"timeline"`
	Criteria           datatypes.JSON `json:"criteria"`
	QualifiedBy        *uuid.UUID     `json:"qualified_by"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// ToQualificationResponse converts a qualification model to its response shape
func ToQualificationResponse(q *domain.LeadQualification) QualificationResponse {
	return QualificationResponse{
		ID:                 q.ID,
		LeadID:             q.LeadID,
		IsQualified:        q.IsQualified,
		QualificationScore: q.QualificationScore,
		BudgetRange:        q.BudgetRange,
		Timeline:           q.Timeline,
		Criteria:           q.Criteria,
		QualifiedBy:        q.QualifiedBy,
		UpdatedAt:          q.UpdatedAt,
	}
}

// CreateFollowUpRequest represents the request to schedule a follow-up
type CreateFollowUpRequest struct {
	FollowUpType  string     `json:"follow_up_type" binding:"omitempty,oneof=call email sms visit"`
	ScheduledDate time.Time  `json:"scheduled_date" binding:"required"`
	Notes         string     `json:"notes" binding:"max=2000"`
	AssignedTo    *uuid.UUID `json:"assigned_to"`
}

// FollowUpResponse represents a scheduled follow-up
type FollowUpResponse struct {
	ID            uuid.UUID  `json:"id"`
	LeadID        uuid.UUID  `json:"lead_id"`
	FollowUpType  string     `json:"follow_up_type"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status"`
	AssignedTo    *uuid.UUID `json:"assigned_to"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToFollowUpResponse converts a follow-up model to its response shape
func ToFollowUpResponse(f *domain.LeadFollowUp) FollowUpResponse {
	return FollowUpResponse{
		ID:            f.ID,
		LeadID:        f.LeadID,
		FollowUpType:  f.FollowUpType,
		ScheduledDate: f.ScheduledDate,
		Notes:         f.Notes,
		Status:        string(f.Status),
		AssignedTo:    f.AssignedTo,
		CompletedAt:   f.CompletedAt,
		CreatedAt:     f.CreatedAt,
	}
}

// ToFollowUpResponses converts a slice of follow-up models
func ToFollowUpResponses(followUps []*domain.LeadFollowUp) []FollowUpResponse {
	responses := make([]FollowUpResponse, 0, len(followUps))
	for _, f := range followUps {
		responses = append(responses, ToFollowUpResponse(f))
	}
	return responses
}
