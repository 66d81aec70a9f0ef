package job

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/repository"
)

func setupJobTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.Lead{},
		&domain.LeadFollowUp{},
	))
	return db
}

func createTestLead(t *testing.T, db *gorm.DB, priority domain.LeadPriority, status domain.LeadStatus) *domain.Lead {
	lead := &domain.Lead{
		BusinessID: uuid.New(),
		Name:       "Test Lead",
		Status:     status,
		Source:     domain.LeadSourceWebsite,
		Priority:   priority,
	}
	require.NoError(t, db.Create(lead).Error)
	return lead
}

func createTestFollowUp(t *testing.T, db *gorm.DB, leadID uuid.UUID, status domain.FollowUpStatus, scheduled time.Time) *domain.LeadFollowUp {
	f := &domain.LeadFollowUp{
		LeadID:        leadID,
		FollowUpType:  "call",
		ScheduledDate: scheduled,
		Status:        status,
	}
	require.NoError(t, db.Create(f).Error)
	return f
}

func TestFollowUpJob_MarksPastDueAsOverdue(t *testing.T) {
	db := setupJobTestDB(t)
	leadRepo := repository.NewLeadRepository(db)
	j := NewFollowUpJob(leadRepo, zap.NewNop())

	lead := createTestLead(t, db, domain.LeadPriorityMedium, domain.LeadStatusContacted)
	pastDue := createTestFollowUp(t, db, lead.ID, domain.FollowUpPending, time.Now().UTC().Add(-2*time.Hour))
	future := createTestFollowUp(t, db, lead.ID, domain.FollowUpPending, time.Now().UTC().Add(24*time.Hour))

	j.Run()

	var got domain.LeadFollowUp
	require.NoError(t, db.First(&got, "id = ?", pastDue.ID).Error)
	assert.Equal(t, domain.FollowUpOverdue, got.Status)

	got = domain.LeadFollowUp{}
	require.NoError(t, db.First(&got, "id = ?", future.ID).Error)
	assert.Equal(t, domain.FollowUpPending, got.Status, "future follow-ups stay pending")
}

func TestFollowUpJob_EscalatesLeadPriority(t *testing.T) {
	db := setupJobTestDB(t)
	leadRepo := repository.NewLeadRepository(db)
	j := NewFollowUpJob(leadRepo, zap.NewNop())

	lead := createTestLead(t, db, domain.LeadPriorityLow, domain.LeadStatusContacted)
	createTestFollowUp(t, db, lead.ID, domain.FollowUpPending, time.Now().UTC().Add(-time.Hour))

	j.Run()

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadPriorityHigh, got.Priority)
}

func TestFollowUpJob_LeavesUrgentLeadsAlone(t *testing.T) {
	db := setupJobTestDB(t)
	leadRepo := repository.NewLeadRepository(db)
	j := NewFollowUpJob(leadRepo, zap.NewNop())

	lead := createTestLead(t, db, domain.LeadPriorityUrgent, domain.LeadStatusQuoted)
	createTestFollowUp(t, db, lead.ID, domain.FollowUpPending, time.Now().UTC().Add(-time.Hour))

	j.Run()

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadPriorityUrgent, got.Priority, "urgent leads are never downgraded to high")
}

func TestFollowUpJob_SkipsTerminalLeads(t *testing.T) {
	db := setupJobTestDB(t)
	leadRepo := repository.NewLeadRepository(db)
	j := NewFollowUpJob(leadRepo, zap.NewNop())

	lead := createTestLead(t, db, domain.LeadPriorityLow, domain.LeadStatusLost)
	createTestFollowUp(t, db, lead.ID, domain.FollowUpPending, time.Now().UTC().Add(-time.Hour))

	j.Run()

	var got domain.Lead
	require.NoError(t, db.First(&got, "id = ?", lead.ID).Error)
	assert.Equal(t, domain.LeadPriorityLow, got.Priority, "lost leads are not escalated")
}

func TestFollowUpJob_IdempotentSweep(t *testing.T) {
	db := setupJobTestDB(t)
	leadRepo := repository.NewLeadRepository(db)
	j := NewFollowUpJob(leadRepo, zap.NewNop())

	lead := createTestLead(t, db, domain.LeadPriorityMedium, domain.LeadStatusContacted)
	createTestFollowUp(t, db, lead.ID, domain.FollowUpPending, time.Now().UTC().Add(-time.Hour))

	j.Run()

	marked, err := leadRepo.MarkOverdueFollowUps(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Zero(t, marked, "second sweep finds nothing pending")
}
