package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"junkops-api/internal/repository"
)

// FollowUpJob marks past-due pending follow-ups as overdue and escalates
// the owning leads. Scheduled hourly by the cron runner in main.
type FollowUpJob struct {
	leadRepo repository.LeadRepository
	logger   *zap.Logger
}

// NewFollowUpJob creates a new FollowUpJob instance
func NewFollowUpJob(leadRepo repository.LeadRepository, logger *zap.Logger) *FollowUpJob {
	return &FollowUpJob{
		leadRepo: leadRepo,
		logger:   logger,
	}
}

// Run executes one sweep. It satisfies cron.Job.
func (j *FollowUpJob) Run() {
	ctx := context.Background()
	now := time.Now().UTC()

	j.logger.Info("Starting follow-up sweep")

	marked, err := j.leadRepo.MarkOverdueFollowUps(ctx, now)
	if err != nil {
		j.logger.Error("Failed to mark overdue follow-ups", zap.Error(err))
		return
	}

	escalated, err := j.leadRepo.EscalateLeadsWithOverdueFollowUps(ctx)
	if err != nil {
		j.logger.Error("Failed to escalate leads with overdue follow-ups", zap.Error(err))
		return
	}

	j.logger.Info("Follow-up sweep completed",
		zap.Int64("marked_overdue", marked),
		zap.Int64("leads_escalated", escalated),
	)
}
