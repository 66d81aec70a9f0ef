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

var employeeSortableColumns = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"position":    true,
	"hourly_rate": true,
	"hire_date":   true,
	"status":      true,
}

// EmployeeService defines the interface for employee business logic
type EmployeeService interface {
	CreateEmployee(ctx context.Context, businessID uuid.UUID, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetEmployee(ctx context.Context, businessID, id uuid.UUID) (*dto.EmployeeResponse, error)
	ListEmployees(ctx context.Context, businessID uuid.UUID, req *dto.ListEmployeesRequest) ([]dto.EmployeeResponse, response.Pagination, error)
	UpdateEmployee(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, businessID, id uuid.UUID) error
}

// employeeServiceImpl is the implementation of EmployeeService
type employeeServiceImpl struct {
	employeeRepo repository.EmployeeRepository
	logger       *zap.Logger
}

// NewEmployeeService creates a new instance of EmployeeService
func NewEmployeeService(employeeRepo repository.EmployeeRepository, logger *zap.Logger) EmployeeService {
	return &employeeServiceImpl{
		employeeRepo: employeeRepo,
		logger:       logger,
	}
}

// CreateEmployee creates an employee. Email is unique within the business.
func (s *employeeServiceImpl) CreateEmployee(ctx context.Context, businessID uuid.UUID, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if _, err := s.employeeRepo.FindByEmail(ctx, businessID, req.Email); err == nil {
		return nil, response.NewAppError(response.ErrCodeDuplicateEmail, "An employee with this email already exists", req.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify email uniqueness", err.Error())
	}

	employee := &domain.Employee{
		BusinessID: businessID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		HourlyRate: req.HourlyRate,
		Status:     domain.EmployeeStatusActive,
		HireDate:   req.HireDate,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		if isDuplicateKeyError(err) {
			return nil, response.NewAppError(response.ErrCodeDuplicateEmail, "An employee with this email already exists", req.Email)
		}
		s.logger.Error("Failed to create employee", zap.Error(err), zap.String("business_id", businessID.String()))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create employee", err.Error())
	}

	resp := dto.ToEmployeeResponse(employee)
	return &resp, nil
}

// GetEmployee fetches a single employee
func (s *employeeServiceImpl) GetEmployee(ctx context.Context, businessID, id uuid.UUID) (*dto.EmployeeResponse, error) {
	employee, err := s.employeeRepo.FindByID(ctx, businessID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeEmployeeNotFound, "Employee not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch employee", err.Error())
	}
	resp := dto.ToEmployeeResponse(employee)
	return &resp, nil
}

// ListEmployees returns a filtered page of employees
func (s *employeeServiceImpl) ListEmployees(ctx context.Context, businessID uuid.UUID, req *dto.ListEmployeesRequest) ([]dto.EmployeeResponse, response.Pagination, error) {
	b := query.NewBuilder().
		Equal("business_id", businessID).
		NotEqual("status", domain.EmployeeStatusDeleted).
		Equal("status", req.Status).
		Equal("position", req.Position).
		Search([]string{"name", "email", "phone"}, req.Search).
		Sort(employeeSortableColumns, req.SortBy, req.SortOrder).
		Paginate(req.Page, req.Limit)

	employees, total, err := s.employeeRepo.List(ctx, b)
	if err != nil {
		s.logger.Error("Failed to list employees", zap.Error(err))
		return nil, response.Pagination{}, response.NewAppError(response.ErrCodeInternal, "Failed to list employees", err.Error())
	}

	pagination := response.Pagination{
		Page:  b.Page(),
		Limit: b.Limit(),
		Total: total,
		Pages: b.Pages(total),
	}
	return dto.ToEmployeeResponses(employees), pagination, nil
}

// UpdateEmployee applies a partial update through the allow-listed path
func (s *employeeServiceImpl) UpdateEmployee(ctx context.Context, businessID, id uuid.UUID, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if err := s.employeeRepo.UpdateFields(ctx, businessID, id, req.Fields()); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoValidFields):
			return nil, response.NewAppError(response.ErrCodeNoValidFields, "No valid fields to update", "")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, response.NewAppError(response.ErrCodeEmployeeNotFound, "Employee not found", "")
		default:
			if isDuplicateKeyError(err) {
				return nil, response.NewAppError(response.ErrCodeDuplicateEmail, "An employee with this email already exists", "")
			}
			s.logger.Error("Failed to update employee", zap.Error(err), zap.String("employee_id", id.String()))
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to update employee", err.Error())
		}
	}
	return s.GetEmployee(ctx, businessID, id)
}

// DeleteEmployee soft-deletes an employee
func (s *employeeServiceImpl) DeleteEmployee(ctx context.Context, businessID, id uuid.UUID) error {
	if err := s.employeeRepo.SoftDelete(ctx, businessID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeEmployeeNotFound, "Employee not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to delete employee", err.Error())
	}
	return nil
}
