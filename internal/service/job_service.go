package service

import (
	"context"
	"errors"

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

var jobSortableColumns = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"title":          true,
	"scheduled_date": true,
	"status":         true,
	"total_amount":   true,
}

// JobSummary aggregates counts and revenue for a job listing
type JobSummary struct {
	Total        int64   `json:"total"`
	TotalRevenue float64 `json:"total_revenue"`
}

// JobService defines the interface for job business logic
type JobService interface {
	CreateJob(ctx context.Context, businessID uuid.UUID, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(ctx context.Context, businessID, id uuid.UUID) (*dto.JobResponse, error)
	ListJobs(ctx context.Context, businessID uuid.UUID, req *dto.ListJobsRequest) ([]dto.JobResponse, response.Pagination, *JobSummary, error)
	UpdateJob(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	CompleteJob(ctx context.Context, businessID, id uuid.UUID, req *dto.CompleteJobRequest) (*dto.JobResponse, error)
	CancelJob(ctx context.Context, businessID, id uuid.UUID) error
}

// jobServiceImpl is the implementation of JobService
type jobServiceImpl struct {
	jobRepo      repository.JobRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewJobService creates a new instance of JobService
func NewJobService(
	jobRepo repository.JobRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) JobService {
	return &jobServiceImpl{
		jobRepo:      jobRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		metrics:      m,
		logger:       logger,
	}
}

// CreateJob schedules a job for an existing customer, optionally assigned to
// an employee
func (s *jobServiceImpl) CreateJob(ctx context.Context, businessID uuid.UUID, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, businessID, req.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeCustomerNotFound, "Customer not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify customer", err.Error())
	}

	if req.AssignedEmployeeID != nil {
		if _, err := s.employeeRepo.FindByID(ctx, businessID, *req.AssignedEmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeEmployeeNotFound, "Assigned employee not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify employee", err.Error())
		}
	}

	job := &domain.Job{
		BusinessID:         businessID,
		CustomerID:         req.CustomerID,
		AssignedEmployeeID: req.AssignedEmployeeID,
		EstimateID:         req.EstimateID,
		Title:              req.Title,
		Description:        req.Description,
		ScheduledDate:      req.ScheduledDate,
		Status:             domain.JobStatusScheduled,
		TotalAmount:        req.TotalAmount,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		s.logger.Error("Failed to create job", zap.Error(err), zap.String("business_id", businessID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create job", err.Error())
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// GetJob fetches a single job
func (s *jobServiceImpl) GetJob(ctx context.Context, businessID, id uuid.UUID) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeJobNotFound, "Job not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch job", err.Error())
	}
	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// ListJobs returns a filtered page of jobs with a revenue summary computed
// over the same predicate
func (s *jobServiceImpl) ListJobs(ctx context.Context, businessID uuid.UUID, req *dto.ListJobsRequest) ([]dto.JobResponse, response.Pagination, *JobSummary, error) {
	b := query.NewBuilder().
		Equal("business_id", businessID).
		Equal("status", req.Status).
		Equal("customer_id", req.CustomerID).
		Equal("assigned_employee_id", req.EmployeeID).
		Sort(jobSortableColumns, req.SortBy, req.SortOrder).
		Paginate(req.Page, req.Limit)

	if req.DateFrom != "" {
		b.DateFrom("scheduled_date", req.DateFrom)
	}
	if req.DateTo != "" {
		b.DateTo("scheduled_date", req.DateTo)
	}

	jobs, total, err := s.jobRepo.List(ctx, b)
	if err != nil {
		s.logger.Error("Failed to list jobs", zap.Error(err))
		return nil, response.Pagination{}, nil, response.NewAppError(response.ErrCodeInternal, "Failed to list jobs", err.Error())
	}

	var summary *JobSummary
	if revenue, err := s.jobRepo.RevenueSummary(ctx, b); err != nil {
		s.logger.Warn("Failed to compute job revenue summary", zap.Error(err))
	} else {
		summary = &JobSummary{Total: total, TotalRevenue: revenue}
	}

	pagination := response.Pagination{
		Page:  b.Page(),
		Limit: b.Limit(),
		Total: total,
		Pages: b.Pages(total),
	}
	return dto.ToJobResponses(jobs), pagination, summary, nil
}

// UpdateJob applies a partial update through the allow-listed path. Completed
// and cancelled jobs reject updates.
func (s *jobServiceImpl) UpdateJob(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	if req.AssignedEmployeeID != nil {
		if _, err := s.employeeRepo.FindByID(ctx, businessID, *req.AssignedEmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, response.NewAppError(response.ErrCodeEmployeeNotFound, "Assigned employee not found", "")
			}
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify employee", err.Error())
		}
	}

	if err := s.jobRepo.UpdateFields(ctx, businessID, id, req.Fields()); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoValidFields):
			return nil, response.NewAppError(response.ErrCodeNoValidFields, "No valid fields to update", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeJobNotFound, "Job not found or no longer editable", "")
		default:
			s.logger.Error("Failed to update job", zap.Error(err), zap.String("job_id", id.String()))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update job", err.Error())
		}
	}
	return s.GetJob(ctx, businessID, id)
}

// CompleteJob marks a job completed, optionally stamping the final amount
func (s *jobServiceImpl) CompleteJob(ctx context.Context, businessID, id uuid.UUID, req *dto.CompleteJobRequest) (*dto.JobResponse, error) {
	if err := s.jobRepo.Complete(ctx, businessID, id, req.TotalAmount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeJobNotFound, "Job not found or already finished", "")
		}
		s.logger.Error("Failed to complete job", zap.Error(err), zap.String("job_id", id.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to complete job", err.Error())
	}
	s.metrics.IncrementJobCompleted()
	return s.GetJob(ctx, businessID, id)
}

// CancelJob marks a job cancelled
func (s *jobServiceImpl) CancelJob(ctx context.Context, businessID, id uuid.UUID) error {
	if err := s.jobRepo.Cancel(ctx, businessID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeJobNotFound, "Job not found or already finished", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to cancel job", err.Error())
	}
	return nil
}
