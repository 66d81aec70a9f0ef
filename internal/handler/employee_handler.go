package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junkops-api/internal/dto"
	"junkops-api/internal/middleware"
	"junkops-api/internal/response"
	"junkops-api/internal/service"
)

// EmployeeHandler serves the employee endpoints
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// CreateEmployee handles POST /employees
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Employee created successfully", employee)
}

// GetEmployee handles GET /employees/:id
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), businessID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Employee retrieved successfully", employee)
}

// ListEmployees handles GET /employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.ListEmployeesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	employees, pagination, err := h.employeeService.ListEmployees(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendList(c, http.StatusOK, "Employees retrieved successfully", employees, pagination, nil)
}

// UpdateEmployee handles PUT /employees/:id
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	// Payroll rate changes are restricted to admins
	if req.HourlyRate != nil && c.GetString(middleware.ContextRole) != "admin" {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Admin role required to update hourly rate")
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), businessID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Employee updated successfully", employee)
}

// DeleteEmployee handles DELETE /employees/:id
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), businessID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Employee deleted successfully", nil)
}
