package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/query"
)

func setupLeadTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Lead{},
		&domain.Customer{},
		&domain.LeadContact{},
		&domain.LeadActivity{},
		&domain.LeadNote{},
		&domain.LeadQualification{},
		&domain.LeadFollowUp{},
		&domain.LeadConversion{},
		&domain.LeadTag{},
		&domain.LeadTagAssignment{},
	))
	return db
}

func seedLead(t *testing.T, db *gorm.DB, businessID uuid.UUID, status domain.LeadStatus) *domain.Lead {
	lead := &domain.Lead{
		BusinessID: businessID,
		Name:       "Dumpster Dan",
		Status:     status,
		Source:     domain.LeadSourceWebsite,
		Priority:   domain.LeadPriorityMedium,
	}
	require.NoError(t, db.Create(lead).Error)
	return lead
}

func seedContact(t *testing.T, db *gorm.DB, repo LeadRepository, leadID uuid.UUID, name string, primary bool, createdAt time.Time) *domain.LeadContact {
	contact := &domain.LeadContact{
		LeadID:           leadID,
		Name:             name,
		IsPrimaryContact: primary,
	}
	contact.CreatedAt = createdAt
	require.NoError(t, repo.CreateContact(context.Background(), contact))
	return contact
}

func countPrimaries(t *testing.T, db *gorm.DB, leadID uuid.UUID) int64 {
	var n int64
	require.NoError(t, db.Model(&domain.LeadContact{}).
		Where("lead_id = ? AND is_primary_contact = ?", leadID, true).
		Count(&n).Error)
	return n
}

func TestCreateWithChildren_WritesInitialActivityAndQualification(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	performer := uuid.New()

	lead := &domain.Lead{
		BusinessID: uuid.New(),
		Name:       "Garage Cleanout",
		Status:     domain.LeadStatusNew,
		Source:     domain.LeadSourcePhone,
		Priority:   domain.LeadPriorityMedium,
	}
	contacts := []*domain.LeadContact{
		{Name: "Alice", IsPrimaryContact: true},
		{Name: "Bob", IsPrimaryContact: true},
	}

	require.NoError(t, repo.CreateWithChildren(context.Background(), lead, contacts, nil, &performer))

	var activity domain.LeadActivity
	require.NoError(t, db.First(&activity, "lead_id = ?", lead.ID).Error)
	assert.Equal(t, domain.ActivityInitialContact, activity.ActivityType)
	require.NotNil(t, activity.PerformedBy)
	assert.Equal(t, performer, *activity.PerformedBy)

	var qualification domain.LeadQualification
	require.NoError(t, db.First(&qualification, "lead_id = ?", lead.ID).Error)
	assert.False(t, qualification.IsQualified)

	// Two contacts both flagged primary collapse to one, first wins
	assert.Equal(t, int64(1), countPrimaries(t, db, lead.ID))
	var first domain.LeadContact
	require.NoError(t, db.First(&first, "lead_id = ? AND name = ?", lead.ID, "Alice").Error)
	assert.True(t, first.IsPrimaryContact)
}

func TestCreateWithChildren_AssignsTags(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()

	tag := &domain.LeadTag{BusinessID: businessID, Name: "hot"}
	require.NoError(t, db.Create(tag).Error)

	lead := &domain.Lead{
		BusinessID: businessID,
		Name:       "Estate Cleanout",
		Status:     domain.LeadStatusNew,
		Source:     domain.LeadSourceReferral,
		Priority:   domain.LeadPriorityHigh,
	}
	require.NoError(t, repo.CreateWithChildren(context.Background(), lead, nil, []uuid.UUID{tag.ID}, nil))

	tags, err := repo.FindTags(context.Background(), lead.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "hot", tags[0].Name)
}

func TestFindByID_ExcludesDeletedAndOtherBusinesses(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()

	lead := seedLead(t, db, businessID, domain.LeadStatusContacted)
	deleted := seedLead(t, db, businessID, domain.LeadStatusDeleted)

	found, err := repo.FindByID(context.Background(), businessID, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.ID, found.ID)

	_, err = repo.FindByID(context.Background(), businessID, deleted.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID(context.Background(), uuid.New(), lead.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "leads are invisible across businesses")
}

func TestList_CountMatchesPredicate(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()

	seedLead(t, db, businessID, domain.LeadStatusNew)
	seedLead(t, db, businessID, domain.LeadStatusContacted)
	seedLead(t, db, businessID, domain.LeadStatusDeleted)
	seedLead(t, db, uuid.New(), domain.LeadStatusNew)

	b := query.NewBuilder().
		Equal("business_id", businessID).
		NotEqual("status", domain.LeadStatusDeleted).
		Paginate(1, 10)

	leads, total, err := repo.List(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, leads, 2)
}

func TestCountByColumn_GroupsByStatus(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()

	seedLead(t, db, businessID, domain.LeadStatusNew)
	seedLead(t, db, businessID, domain.LeadStatusNew)
	seedLead(t, db, businessID, domain.LeadStatusQuoted)

	b := query.NewBuilder().Equal("business_id", businessID)
	counts, err := repo.CountByColumn(context.Background(), b, "status")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts["new"])
	assert.Equal(t, int64(1), counts["quoted"])
}

func TestUpdateFields_RejectsUnknownColumns(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()
	lead := seedLead(t, db, businessID, domain.LeadStatusNew)

	err := repo.UpdateFields(context.Background(), businessID, lead.ID, map[string]interface{}{
		"business_id": uuid.New(),
		"id":          uuid.New(),
		"created_at":  time.Now(),
	})
	assert.ErrorIs(t, err, ErrNoValidFields)

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, businessID, got.BusinessID, "filtered update must not touch the row")
}

func TestUpdateFields_AppliesAllowListedColumns(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()
	lead := seedLead(t, db, businessID, domain.LeadStatusNew)

	err := repo.UpdateFields(context.Background(), businessID, lead.ID, map[string]interface{}{
		"name":        "Renamed",
		"city":        "Austin",
		"business_id": uuid.New(),
	})
	require.NoError(t, err)

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "Austin", got.City)
	assert.Equal(t, businessID, got.BusinessID)
}

func TestUpdateFields_DeletedLeadNotFound(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()
	lead := seedLead(t, db, businessID, domain.LeadStatusDeleted)

	err := repo.UpdateFields(context.Background(), businessID, lead.ID, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSoftDelete_RetainsRow(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()
	lead := seedLead(t, db, businessID, domain.LeadStatusContacted)

	require.NoError(t, repo.SoftDelete(context.Background(), businessID, lead.ID))

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error, "row survives the delete")
	assert.Equal(t, domain.LeadStatusDeleted, got.Status)

	err := repo.SoftDelete(context.Background(), businessID, lead.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "second delete finds nothing")
}

func TestConvert_CreatesCustomerAndConversion(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()
	lead := seedLead(t, db, businessID, domain.LeadStatusQuoted)

	customer := &domain.Customer{
		BusinessID:   businessID,
		Name:         lead.Name,
		SourceLeadID: &lead.ID,
	}
	conversion := &domain.LeadConversion{ConversionValue: 450}

	require.NoError(t, repo.Convert(context.Background(), lead, customer, conversion))

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadStatusConverted, got.Status)
	require.NotNil(t, got.ConvertedToCustomer)
	assert.Equal(t, customer.ID, *got.ConvertedToCustomer)
	assert.NotNil(t, got.ConvertedAt)

	var stored domain.LeadConversion
	require.NoError(t, db.First(&stored, "lead_id = ?", lead.ID).Error)
	assert.Equal(t, customer.ID, stored.CustomerID)
	assert.Equal(t, float64(450), stored.ConversionValue)
}

func TestConvert_SecondAttemptFails(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()
	lead := seedLead(t, db, businessID, domain.LeadStatusQuoted)

	first := &domain.Customer{BusinessID: businessID, Name: lead.Name, SourceLeadID: &lead.ID}
	require.NoError(t, repo.Convert(context.Background(), lead, first, &domain.LeadConversion{}))

	second := &domain.Customer{BusinessID: businessID, Name: lead.Name, SourceLeadID: &lead.ID}
	err := repo.Convert(context.Background(), lead, second, &domain.LeadConversion{})
	assert.ErrorIs(t, err, ErrLeadAlreadyConverted)

	var customers int64
	require.NoError(t, db.Model(&domain.Customer{}).Where("source_lead_id = ?", lead.ID).Count(&customers).Error)
	assert.Equal(t, int64(1), customers, "losing attempt rolls back its customer row")

	var conversions int64
	require.NoError(t, db.Model(&domain.LeadConversion{}).Where("lead_id = ?", lead.ID).Count(&conversions).Error)
	assert.Equal(t, int64(1), conversions)
}

func TestConvert_DeletedLeadFails(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()
	lead := seedLead(t, db, businessID, domain.LeadStatusDeleted)

	customer := &domain.Customer{BusinessID: businessID, Name: lead.Name}
	err := repo.Convert(context.Background(), lead, customer, &domain.LeadConversion{})
	assert.ErrorIs(t, err, ErrLeadAlreadyConverted)
}

func TestCreateContact_PrimaryUnsetsSiblings(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusNew)
	base := time.Now().UTC().Add(-time.Hour)

	seedContact(t, db, repo, lead.ID, "Alice", true, base)
	seedContact(t, db, repo, lead.ID, "Bob", true, base.Add(time.Minute))

	assert.Equal(t, int64(1), countPrimaries(t, db, lead.ID))

	contacts, err := repo.FindContacts(context.Background(), lead.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Alice", contacts[0].Name, "contacts come back oldest first")
	assert.False(t, contacts[0].IsPrimaryContact)
	assert.True(t, contacts[1].IsPrimaryContact)
}

func TestSetPrimaryContact_MovesFlag(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusNew)
	base := time.Now().UTC().Add(-time.Hour)

	alice := seedContact(t, db, repo, lead.ID, "Alice", true, base)
	bob := seedContact(t, db, repo, lead.ID, "Bob", false, base.Add(time.Minute))

	require.NoError(t, repo.SetPrimaryContact(context.Background(), lead.ID, bob.ID))

	assert.Equal(t, int64(1), countPrimaries(t, db, lead.ID))
	var got domain.LeadContact
	require.NoError(t, db.First(&got, "id = ?", bob.ID).Error)
	assert.True(t, got.IsPrimaryContact)
	got = domain.LeadContact{}
	require.NoError(t, db.First(&got, "id = ?", alice.ID).Error)
	assert.False(t, got.IsPrimaryContact)
}

func TestSetPrimaryContact_UnknownContact(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusNew)
	seedContact(t, db, repo, lead.ID, "Alice", true, time.Now().UTC())

	err := repo.SetPrimaryContact(context.Background(), lead.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, int64(1), countPrimaries(t, db, lead.ID), "failed move leaves the old primary in place")
}

func TestDeleteContact_PromotesOldestSibling(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusNew)
	base := time.Now().UTC().Add(-time.Hour)

	alice := seedContact(t, db, repo, lead.ID, "Alice", false, base)
	seedContact(t, db, repo, lead.ID, "Bob", false, base.Add(time.Minute))
	primary := seedContact(t, db, repo, lead.ID, "Carol", true, base.Add(2*time.Minute))

	require.NoError(t, repo.DeleteContact(context.Background(), lead.ID, primary.ID))

	assert.Equal(t, int64(1), countPrimaries(t, db, lead.ID))
	var got domain.LeadContact
	require.NoError(t, db.First(&got, "id = ?", alice.ID).Error)
	assert.True(t, got.IsPrimaryContact, "oldest remaining contact inherits primary")
}

func TestDeleteContact_NonPrimaryLeavesFlagAlone(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusNew)
	base := time.Now().UTC().Add(-time.Hour)

	primary := seedContact(t, db, repo, lead.ID, "Alice", true, base)
	bob := seedContact(t, db, repo, lead.ID, "Bob", false, base.Add(time.Minute))

	require.NoError(t, repo.DeleteContact(context.Background(), lead.ID, bob.ID))

	var got domain.LeadContact
	require.NoError(t, db.First(&got, "id = ?", primary.ID).Error)
	assert.True(t, got.IsPrimaryContact)
}

func TestDeleteContact_LastContact(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusNew)
	only := seedContact(t, db, repo, lead.ID, "Alice", true, time.Now().UTC())

	require.NoError(t, repo.DeleteContact(context.Background(), lead.ID, only.ID))

	contacts, err := repo.FindContacts(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestCreateActivity_StampsLastContact(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusContacted)

	call := &domain.LeadActivity{LeadID: lead.ID, ActivityType: domain.ActivityPhoneCall, Subject: "Quoted over the phone"}
	require.NoError(t, repo.CreateActivity(context.Background(), call, true))

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.NotNil(t, got.LastContactDate)

	note := &domain.LeadActivity{LeadID: lead.ID, ActivityType: domain.ActivityNote, Subject: "Internal note"}
	stamped := *got.LastContactDate
	require.NoError(t, repo.CreateActivity(context.Background(), note, false))
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, stamped, *got.LastContactDate, "non-contact activities do not move the stamp")
}

func TestUpsertQualification_ReplacesAndPromotes(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusContacted)

	require.NoError(t, repo.UpsertQualification(context.Background(), &domain.LeadQualification{
		LeadID:             lead.ID,
		IsQualified:        false,
		QualificationScore: 40,
	}))
	require.NoError(t, repo.UpsertQualification(context.Background(), &domain.LeadQualification{
		LeadID:             lead.ID,
		IsQualified:        true,
		QualificationScore: 85,
	}))

	var qualifications int64
	require.NoError(t, db.Model(&domain.LeadQualification{}).Where("lead_id = ?", lead.ID).Count(&qualifications).Error)
	assert.Equal(t, int64(1), qualifications, "upsert keeps a single record per lead")

	q, err := repo.FindQualification(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, q.QualificationScore)

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadStatusQualified, got.Status, "qualifying pushes the lead forward")
}

func TestCompleteFollowUp_MovesNextFollowUpDate(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusContacted)

	soon := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	later := soon.Add(72 * time.Hour)

	first := &domain.LeadFollowUp{LeadID: lead.ID, FollowUpType: "call", ScheduledDate: soon, Status: domain.FollowUpPending}
	require.NoError(t, repo.CreateFollowUp(context.Background(), first))
	second := &domain.LeadFollowUp{LeadID: lead.ID, FollowUpType: "email", ScheduledDate: later, Status: domain.FollowUpPending}
	require.NoError(t, repo.CreateFollowUp(context.Background(), second))

	require.NoError(t, repo.CompleteFollowUp(context.Background(), lead.ID, first.ID))

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	require.NotNil(t, got.NextFollowUpDate)
	assert.True(t, got.NextFollowUpDate.Equal(later), "lead points at the next pending follow-up")

	require.NoError(t, repo.CompleteFollowUp(context.Background(), lead.ID, second.ID))
	got = domain.Lead{}
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Nil(t, got.NextFollowUpDate, "no pending follow-ups left")

	err := repo.CompleteFollowUp(context.Background(), lead.ID, second.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "completed follow-ups cannot be completed again")
}

func TestRemoveTag_MissingAssignment(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	lead := seedLead(t, db, uuid.New(), domain.LeadStatusNew)

	tag := &domain.LeadTag{BusinessID: lead.BusinessID, Name: "vip"}
	require.NoError(t, db.Create(tag).Error)

	require.NoError(t, repo.AssignTag(context.Background(), lead.ID, tag.ID))
	require.NoError(t, repo.RemoveTag(context.Background(), lead.ID, tag.ID))

	err := repo.RemoveTag(context.Background(), lead.ID, tag.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSearchCandidates_ScopedAndBounded(t *testing.T) {
	db := setupLeadTestDB(t)
	repo := NewLeadRepository(db)
	businessID := uuid.New()

	match := &domain.Lead{BusinessID: businessID, Name: "Smith Hauling", Status: domain.LeadStatusNew, Source: domain.LeadSourceOther, Priority: domain.LeadPriorityMedium}
	require.NoError(t, db.Create(match).Error)
	cityMatch := &domain.Lead{BusinessID: businessID, Name: "Jones", City: "Smithville", Status: domain.LeadStatusNew, Source: domain.LeadSourceOther, Priority: domain.LeadPriorityMedium}
	require.NoError(t, db.Create(cityMatch).Error)
	deleted := &domain.Lead{BusinessID: businessID, Name: "Smith Removed", Status: domain.LeadStatusDeleted, Source: domain.LeadSourceOther, Priority: domain.LeadPriorityMedium}
	require.NoError(t, db.Create(deleted).Error)
	other := &domain.Lead{BusinessID: uuid.New(), Name: "Smith Elsewhere", Status: domain.LeadStatusNew, Source: domain.LeadSourceOther, Priority: domain.LeadPriorityMedium}
	require.NoError(t, db.Create(other).Error)

	results, err := repo.SearchCandidates(context.Background(), businessID, "Smith", 50)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, lead := range results {
		assert.Equal(t, businessID, lead.BusinessID)
		assert.NotEqual(t, domain.LeadStatusDeleted, lead.Status)
	}

	capped, err := repo.SearchCandidates(context.Background(), businessID, "Smith", 1)
	require.NoError(t, err)
	assert.Len(t, capped, 1)
}
