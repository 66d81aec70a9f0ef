package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/dto"
	"junkops-api/internal/query"
	"junkops-api/internal/repository"
	"junkops-api/internal/response"
)

var estimateSortableColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"amount":      true,
	"status":      true,
	"valid_until": true,
}

// EstimateService defines the interface for estimate business logic
type EstimateService interface {
	CreateEstimate(ctx context.Context, businessID uuid.UUID, req *dto.CreateEstimateRequest) (*dto.EstimateResponse, error)
	GetEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error)
	ListEstimates(ctx context.Context, businessID uuid.UUID, req *dto.ListEstimatesRequest) ([]dto.EstimateResponse, response.Pagination, error)
	SendEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error)
	AcceptEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error)
	DeclineEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error)
	ReplaceItems(ctx context.Context, businessID, id uuid.UUID, req *dto.ReplaceEstimateItemsRequest) (*dto.EstimateResponse, error)
}

// estimateServiceImpl is the implementation of EstimateService
type estimateServiceImpl struct {
	estimateRepo repository.EstimateRepository
	customerRepo repository.CustomerRepository
	leadRepo     repository.LeadRepository
	logger       *zap.Logger
}

// NewEstimateService creates a new instance of EstimateService
func NewEstimateService(
	estimateRepo repository.EstimateRepository,
	customerRepo repository.CustomerRepository,
	leadRepo repository.LeadRepository,
	logger *zap.Logger,
) EstimateService {
	return &estimateServiceImpl{
		estimateRepo: estimateRepo,
		customerRepo: customerRepo,
		leadRepo:     leadRepo,
		logger:       logger,
	}
}

// CreateEstimate creates a draft estimate attached to exactly one of a
// customer or a lead
func (s *estimateServiceImpl) CreateEstimate(ctx context.Context, businessID uuid.UUID, req *dto.CreateEstimateRequest) (*dto.EstimateResponse, error) {
	if (req.CustomerID == nil) == (req.LeadID == nil) {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"Exactly one of customer_id or lead_id must be provided", "")
	}

	if req.CustomerID != nil {
		if _, err := s.customerRepo.FindByID(ctx, businessID, *req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeCustomerNotFound, "Customer not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify customer", err.Error())
		}
	}
	if req.LeadID != nil {
		if _, err := s.leadRepo.FindByID(ctx, businessID, *req.LeadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeLeadNotFound, "Lead not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify lead", err.Error())
		}
	}

	estimate := &domain.Estimate{
		BusinessID:  businessID,
		CustomerID:  req.CustomerID,
		LeadID:      req.LeadID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      domain.EstimateStatusDraft,
		ValidUntil:  req.ValidUntil,
	}
	items := toEstimateItems(req.Items)

	if err := s.estimateRepo.CreateWithItems(ctx, estimate, items); err != nil {
		s.logger.Error("Failed to create estimate", zap.Error(err), zap.String("business_id", businessID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create estimate", err.Error())
	}
	return s.GetEstimate(ctx, businessID, estimate.ID)
}

// GetEstimate fetches a single estimate with its line items
func (s *estimateServiceImpl) GetEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error) {
	estimate, err := s.estimateRepo.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeEstimateNotFound, "Estimate not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch estimate", err.Error())
	}
	resp := dto.ToEstimateResponse(estimate)
	return &resp, nil
}

// ListEstimates returns a filtered page of estimates
func (s *estimateServiceImpl) ListEstimates(ctx context.Context, businessID uuid.UUID, req *dto.ListEstimatesRequest) ([]dto.EstimateResponse, response.Pagination, error) {
	b := query.NewBuilder().
		Equal("business_id", businessID).
		Equal("status", req.Status).
		Equal("customer_id", req.CustomerID).
		Equal("lead_id", req.LeadID).
		Sort(estimateSortableColumns, req.SortBy, req.SortOrder).
		Paginate(req.Page, req.Limit)

	estimates, total, err := s.estimateRepo.List(ctx, b)
	if err != nil {
		s.logger.Error("Failed to list estimates", zap.Error(err))
		return nil, response.Pagination{}, response.NewAppError(response.ErrCodeInternal, "Failed to list estimates", err.Error())
	}

	pagination := response.Pagination{
		Page:  b.Page(),
		Limit: b.Limit(),
		Total: total,
		Pages: b.Pages(total),
	}
	return dto.ToEstimateResponses(estimates), pagination, nil
}

// SendEstimate moves a draft estimate to sent
func (s *estimateServiceImpl) SendEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error) {
	return s.transition(ctx, businessID, id,
		[]domain.EstimateStatus{domain.EstimateStatusDraft}, domain.EstimateStatusSent)
}

// AcceptEstimate moves a sent estimate to accepted
func (s *estimateServiceImpl) AcceptEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error) {
	return s.transition(ctx, businessID, id,
		[]domain.EstimateStatus{domain.EstimateStatusSent}, domain.EstimateStatusAccepted)
}

// DeclineEstimate moves a sent estimate to declined
func (s *estimateServiceImpl) DeclineEstimate(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error) {
	return s.transition(ctx, businessID, id,
		[]domain.EstimateStatus{domain.EstimateStatusSent}, domain.EstimateStatusDeclined)
}

// ReplaceItems swaps the line items of a draft estimate
func (s *estimateServiceImpl) ReplaceItems(ctx context.Context, businessID, id uuid.UUID, req *dto.ReplaceEstimateItemsRequest) (*dto.EstimateResponse, error) {
	if err := s.estimateRepo.ReplaceItems(ctx, businessID, id, toEstimateItems(req.Items)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeEstimateNotFound, "Estimate not found or not editable", "")
		}
		s.logger.Error("Failed to replace estimate items", zap.Error(err), zap.String("estimate_id", id.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to replace estimate items", err.Error())
	}
	return s.GetEstimate(ctx, businessID, id)
}

func (s *estimateServiceImpl) transition(ctx context.Context, businessID, id uuid.UUID, from []domain.EstimateStatus, to domain.EstimateStatus) (*dto.EstimateResponse, error) {
	if err := s.estimateRepo.UpdateStatus(ctx, businessID, id, from, to); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeValidation,
				"Estimate not found or not in a valid state for this transition", string(to))
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update estimate status", err.Error())
	}
	return s.GetEstimate(ctx, businessID, id)
}

func toEstimateItems(reqs []dto.EstimateItemRequest) []*domain.EstimateItem {
	items := make([]*domain.EstimateItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, &domain.EstimateItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
		})
	}
	return items
}
