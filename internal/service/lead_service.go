package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/dto"
	"junkops-api/internal/metrics"
	"junkops-api/internal/query"
	"junkops-api/internal/repository"
	"junkops-api/internal/response"
)

const (
	// searchResultCap bounds relevance-ranked search results
	searchResultCap = 50

	summaryCacheTTL = 30 * time.Second
)

// leadSortableColumns is the ORDER BY allow-list for lead listings
var leadSortableColumns = map[string]bool{
	"created_at":          true,
	"updated_at":          true,
	"name":                true,
	"company":             true,
	"status":              true,
	"priority":            true,
	"estimated_value":     true,
	"lead_score":          true,
	"next_follow_up_date": true,
	"last_contact_date":   true,
}

// leadStatusRank orders the lifecycle states for transition checks
var leadStatusRank = map[domain.LeadStatus]int{
	domain.LeadStatusNew:       0,
	domain.LeadStatusContacted: 1,
	domain.LeadStatusQualified: 2,
	domain.LeadStatusQuoted:    3,
	domain.LeadStatusScheduled: 4,
}

// LeadService defines the interface for lead business logic
type LeadService interface {
	CreateLead(ctx context.Context, businessID uuid.UUID, userID *uuid.UUID, req *dto.CreateLeadRequest) (*dto.LeadResponse, error)
	GetLead(ctx context.Context, businessID, id uuid.UUID) (*dto.LeadResponse, error)
	ListLeads(ctx context.Context, businessID uuid.UUID, req *dto.ListLeadsRequest) ([]dto.LeadResponse, response.Pagination, *dto.LeadSummaryResponse, error)
	UpdateLead(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error)
	DeleteLead(ctx context.Context, businessID, id uuid.UUID) error
	ConvertLead(ctx context.Context, businessID, id uuid.UUID, userID *uuid.UUID, req *dto.ConvertLeadRequest) (*dto.ConversionResponse, error)
	SearchLeads(ctx context.Context, businessID uuid.UUID, term string) ([]dto.LeadSearchResult, error)
	GetSummary(ctx context.Context, businessID uuid.UUID) (*dto.LeadSummaryResponse, error)

	AddContact(ctx context.Context, businessID, leadID uuid.UUID, req *dto.CreateLeadContactRequest) (*dto.LeadContactResponse, error)
	ListContacts(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.LeadContactResponse, error)
	SetPrimaryContact(ctx context.Context, businessID, leadID, contactID uuid.UUID) error
	DeleteContact(ctx context.Context, businessID, leadID, contactID uuid.UUID) error

	AddActivity(ctx context.Context, businessID, leadID uuid.UUID, userID *uuid.UUID, req *dto.CreateLeadActivityRequest) (*dto.LeadActivityResponse, error)
	ListActivities(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.LeadActivityResponse, error)

	AddNote(ctx context.Context, businessID, leadID uuid.UUID, userID *uuid.UUID, req *dto.CreateLeadNoteRequest) (*dto.LeadNoteResponse, error)
	ListNotes(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.LeadNoteResponse, error)

	UpsertQualification(ctx context.Context, businessID, leadID uuid.UUID, userID *uuid.UUID, req *dto.UpsertQualificationRequest) (*dto.QualificationResponse, error)
	GetQualification(ctx context.Context, businessID, leadID uuid.UUID) (*dto.QualificationResponse, error)

	AddFollowUp(ctx context.Context, businessID, leadID uuid.UUID, req *dto.CreateFollowUpRequest) (*dto.FollowUpResponse, error)
	ListFollowUps(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.FollowUpResponse, error)
	CompleteFollowUp(ctx context.Context, businessID, leadID, followUpID uuid.UUID) error

	AssignTag(ctx context.Context, businessID, leadID, tagID uuid.UUID) error
	RemoveTag(ctx context.Context, businessID, leadID, tagID uuid.UUID) error
	ListLeadTags(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.TagResponse, error)
}

// leadServiceImpl is the implementation of LeadService
type leadServiceImpl struct {
	leadRepo repository.LeadRepository
	tagRepo  repository.TagRepository
	redis    *redis.Client
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewLeadService creates a new instance of LeadService
func NewLeadService(
	leadRepo repository.LeadRepository,
	tagRepo repository.TagRepository,
	redisClient *redis.Client,
	m *metrics.Metrics,
	logger *zap.Logger,
) LeadService {
	return &leadServiceImpl{
		leadRepo: leadRepo,
		tagRepo:  tagRepo,
		redis:    redisClient,
		metrics:  m,
		logger:   logger,
	}
}

// CreateLead creates a lead with its nested contacts and tag assignments
func (s *leadServiceImpl) CreateLead(ctx context.Context, businessID uuid.UUID, userID *uuid.UUID, req *dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	// Tags must belong to the same business before the nested insert runs
	for _, tagID := range req.TagIDs {
		if _, err := s.tagRepo.FindByID(ctx, businessID, tagID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeTagNotFound, "Tag not found", tagID.String())
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify tag", err.Error())
		}
	}

	lead := &domain.Lead{
		BusinessID:       businessID,
		Name:             req.Name,
		Company:          req.Company,
		Email:            req.Email,
		Phone:            req.Phone,
		Mobile:           req.Mobile,
		Address:          req.Address,
		City:             req.City,
		State:            req.State,
		ZipCode:          req.ZipCode,
		Status:           domain.LeadStatusNew,
		Source:           domain.LeadSource(defaultString(req.Source, string(domain.LeadSourceOther))),
		Priority:         domain.LeadPriority(defaultString(req.Priority, string(domain.LeadPriorityMedium))),
		EstimatedValue:   req.EstimatedValue,
		LeadScore:        req.LeadScore,
		AssignedTo:       req.AssignedTo,
		NextFollowUpDate: req.NextFollowUpDate,
	}

	contacts := make([]*domain.LeadContact, 0, len(req.Contacts))
	for _, c := range req.Contacts {
		contacts = append(contacts, &domain.LeadContact{
			Name:             c.Name,
			Email:            c.Email,
			Phone:            c.Phone,
			Role:             c.Role,
			IsPrimaryContact: c.IsPrimaryContact,
		})
	}

	if err := s.leadRepo.CreateWithChildren(ctx, lead, contacts, req.TagIDs, userID); err != nil {
		s.logger.Error("Failed to create lead", zap.Error(err), zap.String("business_id", businessID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create lead", err.Error())
	}

	s.metrics.IncrementLeadCreated()
	s.invalidateSummary(ctx, businessID)

	resp := dto.ToLeadResponse(lead)
	return &resp, nil
}

// GetLead fetches a single lead
func (s *leadServiceImpl) GetLead(ctx context.Context, businessID, id uuid.UUID) (*dto.LeadResponse, error) {
	lead, err := s.findLead(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ToLeadResponse(lead)
	return &resp, nil
}

// ListLeads returns a filtered page of leads with pagination metadata and a
// by-status/by-source summary computed over the same predicate
func (s *leadServiceImpl) ListLeads(ctx context.Context, businessID uuid.UUID, req *dto.ListLeadsRequest) ([]dto.LeadResponse, response.Pagination, *dto.LeadSummaryResponse, error) {
	b := query.NewBuilder().
		Equal("business_id", businessID).
		NotEqual("status", domain.LeadStatusDeleted).
		Equal("status", req.Status).
		Equal("source", req.Source).
		Equal("priority", req.Priority).
		Equal("city", req.City).
		Search([]string{"name", "company", "email", "phone"}, req.Search).
		Sort(leadSortableColumns, req.SortBy, req.SortOrder).
		Paginate(req.Page, req.Limit)

	if req.DateFrom != "" {
		b.DateFrom("created_at", req.DateFrom)
	}
	if req.DateTo != "" {
		b.DateTo("created_at", req.DateTo)
	}

	leads, total, err := s.leadRepo.List(ctx, b)
	if err != nil {
		s.logger.Error("Failed to list leads", zap.Error(err))
		return nil, response.Pagination{}, nil, response.NewAppError(response.ErrCodeInternal, "Failed to list leads", err.Error())
	}

	unfiltered := req.Status == "" && req.Source == "" && req.Priority == "" &&
		req.City == "" && req.Search == "" && req.DateFrom == "" && req.DateTo == ""
	summary, err := s.leadSummary(ctx, businessID, b, unfiltered)
	if err != nil {
		// Summary failure degrades the response, never fails the listing
		s.logger.Warn("Failed to compute lead summary", zap.Error(err))
		summary = nil
	}

	pagination := response.Pagination{
		Page:  b.Page(),
		Limit: b.Limit(),
		Total: total,
		Pages: b.Pages(total),
	}
	return dto.ToLeadResponses(leads), pagination, summary, nil
}

// UpdateLead applies a partial update through the allow-listed dynamic path.
// Status changes are validated against the lifecycle ordering first.
func (s *leadServiceImpl) UpdateLead(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := s.findLead(ctx, businessID, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := validateStatusTransition(lead.Status, domain.LeadStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	fields := req.Fields()
	if err := s.leadRepo.UpdateFields(ctx, businessID, id, fields); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoValidFields):
			return nil, response.NewAppError(response.ErrCodeNoValidFields, "No valid fields to update", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeLeadNotFound, "Lead not found", "")
		default:
			s.logger.Error("Failed to update lead", zap.Error(err), zap.String("lead_id", id.String()))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update lead", err.Error())
		}
	}

	s.invalidateSummary(ctx, businessID)
	return s.GetLead(ctx, businessID, id)
}

// DeleteLead soft-deletes a lead; the row stays behind with status deleted
func (s *leadServiceImpl) DeleteLead(ctx context.Context, businessID, id uuid.UUID) error {
	if err := s.leadRepo.SoftDelete(ctx, businessID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeLeadNotFound, "Lead not found", "")
		}
		s.logger.Error("Failed to delete lead", zap.Error(err), zap.String("lead_id", id.String()))
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete lead", err.Error())
	}
	s.invalidateSummary(ctx, businessID)
	return nil
}

// ConvertLead converts a lead into a customer atomically. A lead converts at
// most once; repeat attempts are rejected without side effects.
func (s *leadServiceImpl) ConvertLead(ctx context.Context, businessID, id uuid.UUID, userID *uuid.UUID, req *dto.ConvertLeadRequest) (*dto.ConversionResponse, error) {
	lead, err := s.findLead(ctx, businessID, id)
	if err != nil {
		return nil, err
	}
	if lead.Status == domain.LeadStatusConverted {
		return nil, response.NewAppError(response.ErrCodeLeadAlreadyConverted, "Lead has already been converted", "")
	}

	customer := &domain.Customer{
		BusinessID:   businessID,
		Name:         lead.Name,
		Company:      lead.Company,
		Email:        lead.Email,
		Phone:        lead.Phone,
		Mobile:       lead.Mobile,
		Address:      lead.Address,
		City:         lead.City,
		State:        lead.State,
		ZipCode:      lead.ZipCode,
		CustomerType: domain.CustomerType(defaultString(req.CustomerType, string(domain.CustomerTypeResidential))),
		Status:       domain.CustomerStatusActive,
		SourceLeadID: &lead.ID,
	}

	conversionValue := req.ConversionValue
	if conversionValue == 0 {
		conversionValue = lead.EstimatedValue
	}
	conversion := &domain.LeadConversion{
		ConversionValue: conversionValue,
		ConvertedBy:     userID,
	}

	if err := s.leadRepo.Convert(ctx, lead, customer, conversion); err != nil {
		if errors.Is(err, repository.ErrLeadAlreadyConverted) {
			return nil, response.NewAppError(response.ErrCodeLeadAlreadyConverted, "Lead has already been converted", "")
		}
		s.logger.Error("Failed to convert lead", zap.Error(err), zap.String("lead_id", id.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to convert lead", err.Error())
	}

	s.metrics.IncrementLeadConverted()
	s.invalidateSummary(ctx, businessID)
	s.logger.Info("Lead converted to customer",
		zap.String("lead_id", lead.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.Float64("conversion_value", conversionValue))

	converted, err := s.leadRepo.FindByID(ctx, businessID, id)
	if err != nil {
		// The transaction committed; fall back to the in-memory copy
		now := time.Now().UTC()
		lead.Status = domain.LeadStatusConverted
		lead.ConvertedToCustomer = &customer.ID
		lead.ConvertedAt = &now
		converted = lead
	}

	return &dto.ConversionResponse{
		Lead:     dto.ToLeadResponse(converted),
		Customer: dto.ToCustomerResponse(customer),
	}, nil
}

// SearchLeads runs a relevance-ranked search. Name matches outrank company
// matches, which outrank the remaining text columns. Results cap at 50.
func (s *leadServiceImpl) SearchLeads(ctx context.Context, businessID uuid.UUID, term string) ([]dto.LeadSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, response.NewAppError(response.ErrCodeMissingField, "Search term is required", "")
	}

	candidates, err := s.leadRepo.SearchCandidates(ctx, businessID, term, searchResultCap*4)
	if err != nil {
		s.logger.Error("Failed to search leads", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to search leads", err.Error())
	}

	lowered := strings.ToLower(term)
	results := make([]dto.LeadSearchResult, 0, len(candidates))
	for _, lead := range candidates {
		score := relevanceScore(lead, lowered)
		if score == 0 {
			continue
		}
		results = append(results, dto.LeadSearchResult{
			LeadResponse: dto.ToLeadResponse(lead),
			Relevance:    score,
		})
	}

	// Insertion sort keeps the candidate order (newest first) among ties
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Relevance > results[j-1].Relevance; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}

	if len(results) > searchResultCap {
		results = results[:searchResultCap]
	}
	return results, nil
}

// GetSummary returns the status/source breakdown for all non-deleted leads
func (s *leadServiceImpl) GetSummary(ctx context.Context, businessID uuid.UUID) (*dto.LeadSummaryResponse, error) {
	b := query.NewBuilder().
		Equal("business_id", businessID).
		NotEqual("status", domain.LeadStatusDeleted)

	summary, err := s.leadSummary(ctx, businessID, b, true)
	if err != nil {
		s.logger.Error("Failed to compute lead summary", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to compute lead summary", err.Error())
	}
	return summary, nil
}

// AddContact adds a contact to a lead
func (s *leadServiceImpl) AddContact(ctx context.Context, businessID, leadID uuid.UUID, req *dto.CreateLeadContactRequest) (*dto.LeadContactResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}

	contact := &domain.LeadContact{
		LeadID:           leadID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Role:             req.Role,
		IsPrimaryContact: req.IsPrimaryContact,
	}
	if err := s.leadRepo.CreateContact(ctx, contact); err != nil {
		s.logger.Error("Failed to create contact", zap.Error(err), zap.String("lead_id", leadID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create contact", err.Error())
	}

	resp := dto.ToLeadContactResponse(contact)
	return &resp, nil
}

// ListContacts lists a lead's contacts
func (s *leadServiceImpl) ListContacts(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.LeadContactResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}
	contacts, err := s.leadRepo.FindContacts(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list contacts", err.Error())
	}
	return dto.ToLeadContactResponses(contacts), nil
}

// SetPrimaryContact promotes a contact to primary
func (s *leadServiceImpl) SetPrimaryContact(ctx context.Context, businessID, leadID, contactID uuid.UUID) error {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return err
	}
	if err := s.leadRepo.SetPrimaryContact(ctx, leadID, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeContactNotFound, "Contact not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to set primary contact", err.Error())
	}
	return nil
}

// DeleteContact removes a contact, promoting the oldest sibling when the
// primary goes away
func (s *leadServiceImpl) DeleteContact(ctx context.Context, businessID, leadID, contactID uuid.UUID) error {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return err
	}
	if err := s.leadRepo.DeleteContact(ctx, leadID, contactID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeContactNotFound, "Contact not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete contact", err.Error())
	}
	return nil
}

// AddActivity logs an interaction; contact-type activities stamp the lead's
// last contact date and push a new lead to contacted
func (s *leadServiceImpl) AddActivity(ctx context.Context, businessID, leadID uuid.UUID, userID *uuid.UUID, req *dto.CreateLeadActivityRequest) (*dto.LeadActivityResponse, error) {
	lead, err := s.findLead(ctx, businessID, leadID)
	if err != nil {
		return nil, err
	}

	activity := &domain.LeadActivity{
		LeadID:         leadID,
		ActivityType:   domain.ActivityType(req.ActivityType),
		Subject:        req.Subject,
		Description:    req.Description,
		Outcome:        req.Outcome,
		NextAction:     req.NextAction,
		NextActionDate: req.NextActionDate,
		PerformedBy:    userID,
	}

	stamp := activity.ActivityType.IsContactActivity()
	if err := s.leadRepo.CreateActivity(ctx, activity, stamp); err != nil {
		s.logger.Error("Failed to create activity", zap.Error(err), zap.String("lead_id", leadID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create activity", err.Error())
	}

	if stamp && lead.Status == domain.LeadStatusNew {
		if err := s.leadRepo.UpdateFields(ctx, businessID, leadID, map[string]interface{}{
			"status": domain.LeadStatusContacted,
		}); err != nil {
			s.logger.Warn("Failed to advance lead status after contact", zap.Error(err))
		} else {
			s.invalidateSummary(ctx, businessID)
		}
	}

	resp := dto.ToLeadActivityResponse(activity)
	return &resp, nil
}

// ListActivities lists a lead's activity log
func (s *leadServiceImpl) ListActivities(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.LeadActivityResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}
	activities, err := s.leadRepo.FindActivities(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list activities", err.Error())
	}
	return dto.ToLeadActivityResponses(activities), nil
}

// AddNote attaches a note to a lead
func (s *leadServiceImpl) AddNote(ctx context.Context, businessID, leadID uuid.UUID, userID *uuid.UUID, req *dto.CreateLeadNoteRequest) (*dto.LeadNoteResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}

	note := &domain.LeadNote{
		LeadID:    leadID,
		Note:      req.Note,
		Priority:  domain.LeadPriority(defaultString(req.Priority, string(domain.LeadPriorityMedium))),
		DueDate:   req.DueDate,
		CreatedBy: userID,
	}
	if err := s.leadRepo.CreateNote(ctx, note); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create note", err.Error())
	}

	resp := dto.ToLeadNoteResponse(note)
	return &resp, nil
}

// ListNotes lists a lead's notes
func (s *leadServiceImpl) ListNotes(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.LeadNoteResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}
	notes, err := s.leadRepo.FindNotes(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list notes", err.Error())
	}
	return dto.ToLeadNoteResponses(notes), nil
}

// UpsertQualification records the lead's single qualification assessment
func (s *leadServiceImpl) UpsertQualification(ctx context.Context, businessID, leadID uuid.UUID, userID *uuid.UUID, req *dto.UpsertQualificationRequest) (*dto.QualificationResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}

	q := &domain.LeadQualification{
		LeadID:             leadID,
		IsQualified:        req.IsQualified,
		QualificationScore: req.QualificationScore,
		BudgetRange:        req.BudgetRange,
		Timeline:           req.Timeline,
		Criteria:           req.Criteria,
		QualifiedBy:        userID,
	}
	if err := s.leadRepo.UpsertQualification(ctx, q); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to save qualification", err.Error())
	}
	if req.IsQualified {
		s.invalidateSummary(ctx, businessID)
	}

	resp := dto.ToQualificationResponse(q)
	return &resp, nil
}

// GetQualification fetches the lead's qualification record
func (s *leadServiceImpl) GetQualification(ctx context.Context, businessID, leadID uuid.UUID) (*dto.QualificationResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}
	q, err := s.leadRepo.FindQualification(ctx, leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Qualification not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch qualification", err.Error())
	}
	resp := dto.ToQualificationResponse(q)
	return &resp, nil
}

// AddFollowUp schedules a follow-up and moves the lead's next follow-up date
// earlier when needed
func (s *leadServiceImpl) AddFollowUp(ctx context.Context, businessID, leadID uuid.UUID, req *dto.CreateFollowUpRequest) (*dto.FollowUpResponse, error) {
	lead, err := s.findLead(ctx, businessID, leadID)
	if err != nil {
		return nil, err
	}

	f := &domain.LeadFollowUp{
		LeadID:        leadID,
		FollowUpType:  defaultString(req.FollowUpType, "call"),
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
		Status:        domain.FollowUpPending,
		AssignedTo:    req.AssignedTo,
	}
	if err := s.leadRepo.CreateFollowUp(ctx, f); err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create follow-up", err.Error())
	}

	if lead.NextFollowUpDate == nil || req.ScheduledDate.Before(*lead.NextFollowUpDate) {
		if err := s.leadRepo.UpdateFields(ctx, businessID, leadID, map[string]interface{}{
			"next_follow_up_date": req.ScheduledDate,
		}); err != nil {
			s.logger.Warn("Failed to update next follow-up date", zap.Error(err))
		}
	}

	resp := dto.ToFollowUpResponse(f)
	return &resp, nil
}

// ListFollowUps lists a lead's follow-ups
func (s *leadServiceImpl) ListFollowUps(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.FollowUpResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}
	followUps, err := s.leadRepo.FindFollowUps(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list follow-ups", err.Error())
	}
	return dto.ToFollowUpResponses(followUps), nil
}

// CompleteFollowUp marks a follow-up completed
func (s *leadServiceImpl) CompleteFollowUp(ctx context.Context, businessID, leadID, followUpID uuid.UUID) error {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return err
	}
	if err := s.leadRepo.CompleteFollowUp(ctx, leadID, followUpID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeFollowUpNotFound, "Follow-up not found or already completed", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to complete follow-up", err.Error())
	}
	return nil
}

// AssignTag attaches a business tag to a lead
func (s *leadServiceImpl) AssignTag(ctx context.Context, businessID, leadID, tagID uuid.UUID) error {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return err
	}
	if _, err := s.tagRepo.FindByID(ctx, businessID, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeTagNotFound, "Tag not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to verify tag", err.Error())
	}
	if err := s.leadRepo.AssignTag(ctx, leadID, tagID); err != nil {
		if isDuplicateKeyError(err) {
			return response.NewAppError(response.ErrCodeAlreadyExists, "Tag already assigned to lead", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to assign tag", err.Error())
	}
	return nil
}

// RemoveTag detaches a tag from a lead
func (s *leadServiceImpl) RemoveTag(ctx context.Context, businessID, leadID, tagID uuid.UUID) error {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return err
	}
	if err := s.leadRepo.RemoveTag(ctx, leadID, tagID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeTagNotFound, "Tag not assigned to lead", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to remove tag", err.Error())
	}
	return nil
}

// ListLeadTags lists the tags attached to a lead
func (s *leadServiceImpl) ListLeadTags(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.TagResponse, error) {
	if _, err := s.findLead(ctx, businessID, leadID); err != nil {
		return nil, err
	}
	tags, err := s.leadRepo.FindTags(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list tags", err.Error())
	}
	return dto.ToTagResponses(tags), nil
}

// findLead resolves a lead or maps the failure to an AppError
func (s *leadServiceImpl) findLead(ctx context.Context, businessID, id uuid.UUID) (*domain.Lead, error) {
	lead, err := s.leadRepo.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeLeadNotFound, "Lead not found", "")
		}
		s.logger.Error("Failed to fetch lead", zap.Error(err), zap.String("lead_id", id.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch lead", err.Error())
	}
	return lead, nil
}

// leadSummary computes status/source breakdowns under the given predicate.
// Only the unfiltered per-business summary goes through the cache, otherwise
// a filtered result would be served to callers that asked for the whole set.
func (s *leadServiceImpl) leadSummary(ctx context.Context, businessID uuid.UUID, b *query.Builder, cacheable bool) (*dto.LeadSummaryResponse, error) {
	cacheKey := summaryCacheKey(businessID)
	cacheable = cacheable && s.redis != nil

	if cacheable {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary dto.LeadSummaryResponse
			if json.Unmarshal([]byte(cached), &summary) == nil {
				return &summary, nil
			}
		}
	}

	byStatus, err := s.leadRepo.CountByColumn(ctx, b, "status")
	if err != nil {
		return nil, err
	}
	bySource, err := s.leadRepo.CountByColumn(ctx, b, "source")
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	summary := &dto.LeadSummaryResponse{
		Total:    total,
		ByStatus: byStatus,
		BySource: bySource,
	}

	if cacheable {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.redis.Set(ctx, cacheKey, raw, summaryCacheTTL).Err(); err != nil {
				s.logger.Debug("Failed to cache lead summary", zap.Error(err))
			}
		}
	}
	return summary, nil
}

func (s *leadServiceImpl) invalidateSummary(ctx context.Context, businessID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, summaryCacheKey(businessID)).Err(); err != nil {
		s.logger.Debug("Failed to invalidate lead summary cache", zap.Error(err))
	}
}

func summaryCacheKey(businessID uuid.UUID) string {
	return fmt.Sprintf("leads:summary:%s", businessID)
}

// validateStatusTransition enforces forward movement through the lifecycle.
// Lost is reachable from any active state. Converted and deleted are never
// set through the update path.
func validateStatusTransition(from, to domain.LeadStatus) error {
	if from == to {
		return nil
	}
	if from == domain.LeadStatusConverted || from == domain.LeadStatusLost {
		return response.NewAppError(response.ErrCodeValidation,
			"Lead is in a terminal state", string(from))
	}
	if to == domain.LeadStatusLost {
		return nil
	}

	fromRank, fromOK := leadStatusRank[from]
	toRank, toOK := leadStatusRank[to]
	if !fromOK || !toOK || toRank < fromRank {
		return response.NewAppError(response.ErrCodeValidation,
			"Invalid status transition", fmt.Sprintf("%s -> %s", from, to))
	}
	return nil
}

// relevanceScore weights which column matched: name outranks company, which
// outranks the remaining text columns
func relevanceScore(lead *domain.Lead, lowered string) int {
	score := 0
	if strings.Contains(strings.ToLower(lead.Name), lowered) {
		score += 100
	}
	if strings.Contains(strings.ToLower(lead.Company), lowered) {
		score += 50
	}
	if strings.Contains(strings.ToLower(lead.Email), lowered) {
		score += 30
	}
	if strings.Contains(lead.Phone, lowered) {
		score += 20
	}
	if strings.Contains(strings.ToLower(lead.City), lowered) {
		score += 10
	}
	return score
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// isDuplicateKeyError detects unique constraint violations across drivers
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
