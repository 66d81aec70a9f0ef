package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"junkops-api/internal/domain"
	"junkops-api/internal/dto"
	"junkops-api/internal/query"
	"junkops-api/internal/repository"
	"junkops-api/internal/response"
)

var customerSortableColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"company":       true,
	"city":          true,
	"customer_type": true,
	"status":        true,
}

// CustomerService defines the interface for customer business logic
type CustomerService interface {
	CreateCustomer(ctx context.Context, businessID uuid.UUID, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, businessID, id uuid.UUID) (*dto.CustomerResponse, error)
	ListCustomers(ctx context.Context, businessID uuid.UUID, req *dto.ListCustomersRequest) ([]dto.CustomerResponse, response.Pagination, error)
	UpdateCustomer(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, businessID, id uuid.UUID) error
	SearchCustomers(ctx context.Context, businessID uuid.UUID, term string) ([]dto.CustomerResponse, error)
}

// customerServiceImpl is the implementation of CustomerService
type customerServiceImpl struct {
	customerRepo repository.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new instance of CustomerService
func NewCustomerService(customerRepo repository.CustomerRepository, logger *zap.Logger) CustomerService {
	return &customerServiceImpl{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateCustomer creates a customer directly, outside the lead conversion path
func (s *customerServiceImpl) CreateCustomer(ctx context.Context, businessID uuid.UUID, req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer := &domain.Customer{
		BusinessID:   businessID,
		Name:         req.Name,
		Company:      req.Company,
		Email:        req.Email,
		Phone:        req.Phone,
		Mobile:       req.Mobile,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		CustomerType: domain.CustomerType(defaultString(req.CustomerType, string(domain.CustomerTypeResidential))),
		Status:       domain.CustomerStatusActive,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		s.logger.Error("Failed to create customer", zap.Error(err), zap.String("business_id", businessID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create customer", err.Error())
	}

	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// GetCustomer fetches a single customer
func (s *customerServiceImpl) GetCustomer(ctx context.Context, businessID, id uuid.UUID) (*dto.CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeCustomerNotFound, "Customer not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch customer", err.Error())
	}
	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// ListCustomers returns a filtered page of customers
func (s *customerServiceImpl) ListCustomers(ctx context.Context, businessID uuid.UUID, req *dto.ListCustomersRequest) ([]dto.CustomerResponse, response.Pagination, error) {
	b := query.NewBuilder().
		Equal("business_id", businessID).
		NotEqual("status", domain.CustomerStatusDeleted).
		Equal("status", req.Status).
		Equal("customer_type", req.CustomerType).
		Equal("city", req.City).
		Search([]string{"name", "company", "email", "phone"}, req.Search).
		Sort(customerSortableColumns, req.SortBy, req.SortOrder).
		Paginate(req.Page, req.Limit)

	customers, total, err := s.customerRepo.List(ctx, b)
	if err != nil {
		s.logger.Error("Failed to list customers", zap.Error(err))
		return nil, response.Pagination{}, response.NewAppError(response.ErrCodeInternal, "Failed to list customers", err.Error())
	}

	pagination := response.Pagination{
		Page:  b.Page(),
		Limit: b.Limit(),
		Total: total,
		Pages: b.Pages(total),
	}
	return dto.ToCustomerResponses(customers), pagination, nil
}

// UpdateCustomer applies a partial update through the allow-listed path
func (s *customerServiceImpl) UpdateCustomer(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := s.customerRepo.UpdateFields(ctx, businessID, id, req.Fields()); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoValidFields):
			return nil, response.NewAppError(response.ErrCodeNoValidFields, "No valid fields to update", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeCustomerNotFound, "Customer not found", "")
		default:
			s.logger.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", id.String()))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update customer", err.Error())
		}
	}
	return s.GetCustomer(ctx, businessID, id)
}

// DeleteCustomer soft-deletes a customer
func (s *customerServiceImpl) DeleteCustomer(ctx context.Context, businessID, id uuid.UUID) error {
	if err := s.customerRepo.SoftDelete(ctx, businessID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeCustomerNotFound, "Customer not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete customer", err.Error())
	}
	return nil
}

// SearchCustomers runs a capped text search over the customer columns
func (s *customerServiceImpl) SearchCustomers(ctx context.Context, businessID uuid.UUID, term string) ([]dto.CustomerResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, response.NewAppError(response.ErrCodeMissingField, "Search term is required", "")
	}
	customers, err := s.customerRepo.SearchCandidates(ctx, businessID, term, searchResultCap)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to search customers", err.Error())
	}
	return dto.ToCustomerResponses(customers), nil
}
