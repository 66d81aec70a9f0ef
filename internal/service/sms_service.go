package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"junkops-api/internal/client"
	"junkops-api/internal/domain"
	"junkops-api/internal/dto"
	"junkops-api/internal/metrics"
	"junkops-api/internal/query"
	"junkops-api/internal/repository"
	"junkops-api/internal/response"
)

// SmsService defines the interface for SMS sending and audit logging.
// Every vendor interaction leaves an append-only audit row, success or not.
type SmsService interface {
	SendSms(ctx context.Context, businessID uuid.UUID, req *dto.SendSmsRequest) (*dto.SmsLogResponse, error)
	HandleWebhook(ctx context.Context, businessID uuid.UUID, req *dto.SmsWebhookRequest) (*dto.SmsLogResponse, error)
	ListLogs(ctx context.Context, businessID uuid.UUID, req *dto.ListSmsLogsRequest) ([]dto.SmsLogResponse, response.Pagination, error)
	ListLeadLogs(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.SmsLogResponse, error)
}

// smsServiceImpl is the implementation of SmsService
type smsServiceImpl struct {
	smsLogRepo repository.SmsLogRepository
	leadRepo   repository.LeadRepository
	smsClient  client.SmsClient
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewSmsService creates a new instance of SmsService
func NewSmsService(
	smsLogRepo repository.SmsLogRepository,
	leadRepo repository.LeadRepository,
	smsClient client.SmsClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) SmsService {
	return &smsServiceImpl{
		smsLogRepo: smsLogRepo,
		leadRepo:   leadRepo,
		smsClient:  smsClient,
		metrics:    m,
		logger:     logger,
	}
}

// SendSms submits an outbound message to the vendor and audits the outcome.
// The audit row is written whether the vendor call succeeded or failed.
func (s *smsServiceImpl) SendSms(ctx context.Context, businessID uuid.UUID, req *dto.SendSmsRequest) (*dto.SmsLogResponse, error) {
	if req.LeadID != nil {
		if _, err := s.leadRepo.FindByID(ctx, businessID, *req.LeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeLeadNotFound, "Lead not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify lead", err.Error())
		}
	}

	log := &domain.SmsLog{
		BusinessID: businessID,
		LeadID:     req.LeadID,
		ToNumber:   req.ToNumber,
		Body:       req.Body,
		Direction:  domain.SmsDirectionOutbound,
	}

	result, sendErr := s.smsClient.SendSms(ctx, req.ToNumber, req.Body)
	if sendErr != nil {
		log.ErrorMessage = sendErr.Error()
		s.metrics.IncrementSmsSent("failed")
	} else {
		log.VendorSID = result.SID
		log.VendorStatus = result.Status
		s.metrics.IncrementSmsSent("sent")
	}

	if err := s.smsLogRepo.Create(ctx, log); err != nil {
		s.logger.Error("Failed to write SMS audit row", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record SMS", err.Error())
	}

	if sendErr != nil {
		return nil, response.NewAppError(response.ErrCodeSmsSendFailed, "Failed to send SMS", sendErr.Error())
	}

	// Sends tied to a lead count as contact activity
	if req.LeadID != nil {
		activity := &domain.LeadActivity{
			LeadID:       *req.LeadID,
			ActivityType: domain.ActivitySMS,
			Subject:      "SMS sent",
			Description:  req.Body,
		}
		if err := s.leadRepo.CreateActivity(ctx, activity, true); err != nil {
			s.logger.Warn("Failed to log SMS activity", zap.Error(err))
		}
	}

	resp := dto.ToSmsLogResponse(log)
	return &resp, nil
}

// HandleWebhook records a vendor callback, either an inbound message or a
// delivery status update for a previously sent one
func (s *smsServiceImpl) HandleWebhook(ctx context.Context, businessID uuid.UUID, req *dto.SmsWebhookRequest) (*dto.SmsLogResponse, error) {
	// Status callbacks reference a message we already audited; inbound
	// messages get a fresh row
	if existing, err := s.smsLogRepo.FindByVendorSID(ctx, req.MessageSid); err == nil {
		log := &domain.SmsLog{
			BusinessID:   existing.BusinessID,
			LeadID:       existing.LeadID,
			ToNumber:     existing.ToNumber,
			FromNumber:   existing.FromNumber,
			Direction:    existing.Direction,
			VendorSID:    req.MessageSid,
			VendorStatus: req.Status,
		}
		if err := s.smsLogRepo.Create(ctx, log); err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record status update", err.Error())
		}
		resp := dto.ToSmsLogResponse(log)
		return &resp, nil
	}

	log := &domain.SmsLog{
		BusinessID:   businessID,
		ToNumber:     req.To,
		FromNumber:   req.From,
		Body:         req.Body,
		Direction:    domain.SmsDirectionInbound,
		VendorSID:    req.MessageSid,
		VendorStatus: req.Status,
	}
	if err := s.smsLogRepo.Create(ctx, log); err != nil {
		s.logger.Error("Failed to record inbound SMS", zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to record inbound SMS", err.Error())
	}

	resp := dto.ToSmsLogResponse(log)
	return &resp, nil
}

// ListLogs returns a filtered page of audit rows
func (s *smsServiceImpl) ListLogs(ctx context.Context, businessID uuid.UUID, req *dto.ListSmsLogsRequest) ([]dto.SmsLogResponse, response.Pagination, error) {
	b := query.NewBuilder().
		Equal("business_id", businessID).
		Equal("lead_id", req.LeadID).
		Equal("direction", req.Direction).
		Sort(map[string]bool{"created_at": true}, "created_at", "desc").
		Paginate(req.Page, req.Limit)

	if req.DateFrom != "" {
		b.DateFrom("created_at", req.DateFrom)
	}
	if req.DateTo != "" {
		b.DateTo("created_at", req.DateTo)
	}

	logs, total, err := s.smsLogRepo.List(ctx, b)
	if err != nil {
		return nil, response.Pagination{}, response.NewAppError(response.ErrCodeInternal, "Failed to list SMS logs", err.Error())
	}

	pagination := response.Pagination{
		Page:  b.Page(),
		Limit: b.Limit(),
		Total: total,
		Pages: b.Pages(total),
	}
	return dto.ToSmsLogResponses(logs), pagination, nil
}

// ListLeadLogs lists the SMS history of one lead
func (s *smsServiceImpl) ListLeadLogs(ctx context.Context, businessID, leadID uuid.UUID) ([]dto.SmsLogResponse, error) {
	if _, err := s.leadRepo.FindByID(ctx, businessID, leadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeLeadNotFound, "Lead not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify lead", err.Error())
	}

	logs, err := s.smsLogRepo.ListByLead(ctx, leadID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list SMS logs", err.Error())
	}
	return dto.ToSmsLogResponses(logs), nil
}
