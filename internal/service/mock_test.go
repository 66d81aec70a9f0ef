package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"junkops-api/internal/client"
	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

// MockLeadRepository is a function-field mock of repository.LeadRepository.
// Unset fields return zero values.
type MockLeadRepository struct {
	CreateWithChildrenFunc               func(ctx context.Context, lead *domain.Lead, contacts []*domain.LeadContact, tagIDs []uuid.UUID, performedBy *uuid.UUID) error
	FindByIDFunc                         func(ctx context.Context, businessID, id uuid.UUID) (*domain.Lead, error)
	ListFunc                             func(ctx context.Context, b *query.Builder) ([]*domain.Lead, int64, error)
	CountByColumnFunc                    func(ctx context.Context, b *query.Builder, column string) (map[string]int64, error)
	UpdateFieldsFunc                     func(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error
	SoftDeleteFunc                       func(ctx context.Context, businessID, id uuid.UUID) error
	ConvertFunc                          func(ctx context.Context, lead *domain.Lead, customer *domain.Customer, conversion *domain.LeadConversion) error
	CreateContactFunc                    func(ctx context.Context, contact *domain.LeadContact) error
	FindContactsFunc                     func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadContact, error)
	SetPrimaryContactFunc                func(ctx context.Context, leadID, contactID uuid.UUID) error
	DeleteContactFunc                    func(ctx context.Context, leadID, contactID uuid.UUID) error
	CreateActivityFunc                   func(ctx context.Context, activity *domain.LeadActivity, stampLastContact bool) error
	FindActivitiesFunc                   func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error)
	CreateNoteFunc                       func(ctx context.Context, note *domain.LeadNote) error
	FindNotesFunc                        func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadNote, error)
	UpsertQualificationFunc              func(ctx context.Context, q *domain.LeadQualification) error
	FindQualificationFunc                func(ctx context.Context, leadID uuid.UUID) (*domain.LeadQualification, error)
	CreateFollowUpFunc                   func(ctx context.Context, f *domain.LeadFollowUp) error
	FindFollowUpsFunc                    func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadFollowUp, error)
	CompleteFollowUpFunc                 func(ctx context.Context, leadID, followUpID uuid.UUID) error
	MarkOverdueFollowUpsFunc             func(ctx context.Context, asOf time.Time) (int64, error)
	EscalateLeadsWithOverdueFollowUpsFunc func(ctx context.Context) (int64, error)
	AssignTagFunc                        func(ctx context.Context, leadID, tagID uuid.UUID) error
	RemoveTagFunc                        func(ctx context.Context, leadID, tagID uuid.UUID) error
	FindTagsFunc                         func(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadTag, error)
	SearchCandidatesFunc                 func(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Lead, error)
}

func (m *MockLeadRepository) CreateWithChildren(ctx context.Context, lead *domain.Lead, contacts []*domain.LeadContact, tagIDs []uuid.UUID, performedBy *uuid.UUID) error {
	if m.CreateWithChildrenFunc != nil {
		return m.CreateWithChildrenFunc(ctx, lead, contacts, tagIDs, performedBy)
	}
	return nil
}

func (m *MockLeadRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Lead, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, businessID, id)
	}
	return nil, nil
}

func (m *MockLeadRepository) List(ctx context.Context, b *query.Builder) ([]*domain.Lead, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, b)
	}
	return nil, 0, nil
}

func (m *MockLeadRepository) CountByColumn(ctx context.Context, b *query.Builder, column string) (map[string]int64, error) {
	if m.CountByColumnFunc != nil {
		return m.CountByColumnFunc(ctx, b, column)
	}
	return map[string]int64{}, nil
}

func (m *MockLeadRepository) UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, businessID, id, fields)
	}
	return nil
}

func (m *MockLeadRepository) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, businessID, id)
	}
	return nil
}

func (m *MockLeadRepository) Convert(ctx context.Context, lead *domain.Lead, customer *domain.Customer, conversion *domain.LeadConversion) error {
	if m.ConvertFunc != nil {
		return m.ConvertFunc(ctx, lead, customer, conversion)
	}
	return nil
}

func (m *MockLeadRepository) CreateContact(ctx context.Context, contact *domain.LeadContact) error {
	if m.CreateContactFunc != nil {
		return m.CreateContactFunc(ctx, contact)
	}
	return nil
}

func (m *MockLeadRepository) FindContacts(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadContact, error) {
	if m.FindContactsFunc != nil {
		return m.FindContactsFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockLeadRepository) SetPrimaryContact(ctx context.Context, leadID, contactID uuid.UUID) error {
	if m.SetPrimaryContactFunc != nil {
		return m.SetPrimaryContactFunc(ctx, leadID, contactID)
	}
	return nil
}

func (m *MockLeadRepository) DeleteContact(ctx context.Context, leadID, contactID uuid.UUID) error {
	if m.DeleteContactFunc != nil {
		return m.DeleteContactFunc(ctx, leadID, contactID)
	}
	return nil
}

func (m *MockLeadRepository) CreateActivity(ctx context.Context, activity *domain.LeadActivity, stampLastContact bool) error {
	if m.CreateActivityFunc != nil {
		return m.CreateActivityFunc(ctx, activity, stampLastContact)
	}
	return nil
}

func (m *MockLeadRepository) FindActivities(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadActivity, error) {
	if m.FindActivitiesFunc != nil {
		return m.FindActivitiesFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockLeadRepository) CreateNote(ctx context.Context, note *domain.LeadNote) error {
	if m.CreateNoteFunc != nil {
		return m.CreateNoteFunc(ctx, note)
	}
	return nil
}

func (m *MockLeadRepository) FindNotes(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadNote, error) {
	if m.FindNotesFunc != nil {
		return m.FindNotesFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockLeadRepository) UpsertQualification(ctx context.Context, q *domain.LeadQualification) error {
	if m.UpsertQualificationFunc != nil {
		return m.UpsertQualificationFunc(ctx, q)
	}
	return nil
}

func (m *MockLeadRepository) FindQualification(ctx context.Context, leadID uuid.UUID) (*domain.LeadQualification, error) {
	if m.FindQualificationFunc != nil {
		return m.FindQualificationFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockLeadRepository) CreateFollowUp(ctx context.Context, f *domain.LeadFollowUp) error {
	if m.CreateFollowUpFunc != nil {
		return m.CreateFollowUpFunc(ctx, f)
	}
	return nil
}

func (m *MockLeadRepository) FindFollowUps(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadFollowUp, error) {
	if m.FindFollowUpsFunc != nil {
		return m.FindFollowUpsFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockLeadRepository) CompleteFollowUp(ctx context.Context, leadID, followUpID uuid.UUID) error {
	if m.CompleteFollowUpFunc != nil {
		return m.CompleteFollowUpFunc(ctx, leadID, followUpID)
	}
	return nil
}

func (m *MockLeadRepository) MarkOverdueFollowUps(ctx context.Context, asOf time.Time) (int64, error) {
	if m.MarkOverdueFollowUpsFunc != nil {
		return m.MarkOverdueFollowUpsFunc(ctx, asOf)
	}
	return 0, nil
}

func (m *MockLeadRepository) EscalateLeadsWithOverdueFollowUps(ctx context.Context) (int64, error) {
	if m.EscalateLeadsWithOverdueFollowUpsFunc != nil {
		return m.EscalateLeadsWithOverdueFollowUpsFunc(ctx)
	}
	return 0, nil
}

func (m *MockLeadRepository) AssignTag(ctx context.Context, leadID, tagID uuid.UUID) error {
	if m.AssignTagFunc != nil {
		return m.AssignTagFunc(ctx, leadID, tagID)
	}
	return nil
}

func (m *MockLeadRepository) RemoveTag(ctx context.Context, leadID, tagID uuid.UUID) error {
	if m.RemoveTagFunc != nil {
		return m.RemoveTagFunc(ctx, leadID, tagID)
	}
	return nil
}

func (m *MockLeadRepository) FindTags(ctx context.Context, leadID uuid.UUID) ([]*domain.LeadTag, error) {
	if m.FindTagsFunc != nil {
		return m.FindTagsFunc(ctx, leadID)
	}
	return nil, nil
}

func (m *MockLeadRepository) SearchCandidates(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Lead, error) {
	if m.SearchCandidatesFunc != nil {
		return m.SearchCandidatesFunc(ctx, businessID, term, limit)
	}
	return nil, nil
}

// MockTagRepository is a function-field mock of repository.TagRepository
type MockTagRepository struct {
	CreateFunc          func(ctx context.Context, tag *domain.LeadTag) error
	FindByIDFunc        func(ctx context.Context, businessID, id uuid.UUID) (*domain.LeadTag, error)
	FindByNameFunc      func(ctx context.Context, businessID uuid.UUID, name string) (*domain.LeadTag, error)
	ListByBusinessFunc  func(ctx context.Context, businessID uuid.UUID) ([]*domain.LeadTag, error)
	UpdateFunc          func(ctx context.Context, businessID, id uuid.UUID, name, color string) error
	DeleteFunc          func(ctx context.Context, businessID, id uuid.UUID) error
	AssignmentCountFunc func(ctx context.Context, tagID uuid.UUID) (int64, error)
}

func (m *MockTagRepository) Create(ctx context.Context, tag *domain.LeadTag) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tag)
	}
	return nil
}

func (m *MockTagRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.LeadTag, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, businessID, id)
	}
	return nil, nil
}

func (m *MockTagRepository) FindByName(ctx context.Context, businessID uuid.UUID, name string) (*domain.LeadTag, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, businessID, name)
	}
	return nil, nil
}

func (m *MockTagRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.LeadTag, error) {
	if m.ListByBusinessFunc != nil {
		return m.ListByBusinessFunc(ctx, businessID)
	}
	return nil, nil
}

func (m *MockTagRepository) Update(ctx context.Context, businessID, id uuid.UUID, name, color string) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, businessID, id, name, color)
	}
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, businessID, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, businessID, id)
	}
	return nil
}

func (m *MockTagRepository) AssignmentCount(ctx context.Context, tagID uuid.UUID) (int64, error) {
	if m.AssignmentCountFunc != nil {
		return m.AssignmentCountFunc(ctx, tagID)
	}
	return 0, nil
}

// MockCustomerRepository is a function-field mock of repository.CustomerRepository
type MockCustomerRepository struct {
	CreateFunc           func(ctx context.Context, customer *domain.Customer) error
	FindByIDFunc         func(ctx context.Context, businessID, id uuid.UUID) (*domain.Customer, error)
	ListFunc             func(ctx context.Context, b *query.Builder) ([]*domain.Customer, int64, error)
	UpdateFieldsFunc     func(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error
	SoftDeleteFunc       func(ctx context.Context, businessID, id uuid.UUID) error
	SearchCandidatesFunc func(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Customer, error)
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, customer)
	}
	return nil
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Customer, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, businessID, id)
	}
	return nil, nil
}

func (m *MockCustomerRepository) List(ctx context.Context, b *query.Builder) ([]*domain.Customer, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, b)
	}
	return nil, 0, nil
}

func (m *MockCustomerRepository) UpdateFields(ctx context.Context, businessID, id uuid.UUID, fields map[string]interface{}) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, businessID, id, fields)
	}
	return nil
}

func (m *MockCustomerRepository) SoftDelete(ctx context.Context, businessID, id uuid.UUID) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, businessID, id)
	}
	return nil
}

func (m *MockCustomerRepository) SearchCandidates(ctx context.Context, businessID uuid.UUID, term string, limit int) ([]*domain.Customer, error) {
	if m.SearchCandidatesFunc != nil {
		return m.SearchCandidatesFunc(ctx, businessID, term, limit)
	}
	return nil, nil
}

// MockEstimateRepository is a function-field mock of repository.EstimateRepository
type MockEstimateRepository struct {
	CreateWithItemsFunc func(ctx context.Context, estimate *domain.Estimate, items []*domain.EstimateItem) error
	FindByIDFunc        func(ctx context.Context, businessID, id uuid.UUID) (*domain.Estimate, error)
	ListFunc            func(ctx context.Context, b *query.Builder) ([]*domain.Estimate, int64, error)
	UpdateStatusFunc    func(ctx context.Context, businessID, id uuid.UUID, from []domain.EstimateStatus, to domain.EstimateStatus) error
	ReplaceItemsFunc    func(ctx context.Context, businessID, id uuid.UUID, items []*domain.EstimateItem) error
}

func (m *MockEstimateRepository) CreateWithItems(ctx context.Context, estimate *domain.Estimate, items []*domain.EstimateItem) error {
	if m.CreateWithItemsFunc != nil {
		return m.CreateWithItemsFunc(ctx, estimate, items)
	}
	return nil
}

func (m *MockEstimateRepository) FindByID(ctx context.Context, businessID, id uuid.UUID) (*domain.Estimate, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, businessID, id)
	}
	return nil, nil
}

func (m *MockEstimateRepository) List(ctx context.Context, b *query.Builder) ([]*domain.Estimate, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, b)
	}
	return nil, 0, nil
}

func (m *MockEstimateRepository) UpdateStatus(ctx context.Context, businessID, id uuid.UUID, from []domain.EstimateStatus, to domain.EstimateStatus) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, businessID, id, from, to)
	}
	return nil
}

func (m *MockEstimateRepository) ReplaceItems(ctx context.Context, businessID, id uuid.UUID, items []*domain.EstimateItem) error {
	if m.ReplaceItemsFunc != nil {
		return m.ReplaceItemsFunc(ctx, businessID, id, items)
	}
	return nil
}

// MockSmsLogRepository is a function-field mock of repository.SmsLogRepository
type MockSmsLogRepository struct {
	CreateFunc          func(ctx context.Context, log *domain.SmsLog) error
	FindByVendorSIDFunc func(ctx context.Context, vendorSID string) (*domain.SmsLog, error)
	ListFunc            func(ctx context.Context, b *query.Builder) ([]*domain.SmsLog, int64, error)
	ListByLeadFunc      func(ctx context.Context, leadID uuid.UUID) ([]*domain.SmsLog, error)
}

func (m *MockSmsLogRepository) Create(ctx context.Context, log *domain.SmsLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	return nil
}

func (m *MockSmsLogRepository) FindByVendorSID(ctx context.Context, vendorSID string) (*domain.SmsLog, error) {
	if m.FindByVendorSIDFunc != nil {
		return m.FindByVendorSIDFunc(ctx, vendorSID)
	}
	return nil, nil
}

func (m *MockSmsLogRepository) List(ctx context.Context, b *query.Builder) ([]*domain.SmsLog, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, b)
	}
	return nil, 0, nil
}

func (m *MockSmsLogRepository) ListByLead(ctx context.Context, leadID uuid.UUID) ([]*domain.SmsLog, error) {
	if m.ListByLeadFunc != nil {
		return m.ListByLeadFunc(ctx, leadID)
	}
	return nil, nil
}

// MockSmsClient is a function-field mock of client.SmsClient
type MockSmsClient struct {
	SendSmsFunc func(ctx context.Context, to, body string) (*client.SmsResult, error)
}

func (m *MockSmsClient) SendSms(ctx context.Context, to, body string) (*client.SmsResult, error) {
	if m.SendSmsFunc != nil {
		return m.SendSmsFunc(ctx, to, body)
	}
	return &client.SmsResult{SID: "SM0", Status: "queued"}, nil
}
