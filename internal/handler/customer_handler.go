package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junkops-api/internal/dto"
	"junkops-api/internal/response"
	"junkops-api/internal/service"
)

// CustomerHandler serves the customer endpoints
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer handles POST /customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Customer created successfully", customer)
}

// GetCustomer handles GET /customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), businessID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Customer retrieved successfully", customer)
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.ListCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	customers, pagination, err := h.customerService.ListCustomers(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendList(c, http.StatusOK, "Customers retrieved successfully", customers, pagination, nil)
}

// UpdateCustomer handles PUT /customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), businessID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Customer updated successfully", customer)
}

// DeleteCustomer handles DELETE /customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), businessID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Customer deleted successfully", nil)
}

// SearchCustomers handles GET /customers/search
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	customers, err := h.customerService.SearchCustomers(c.Request.Context(), businessID, c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Search completed successfully", customers)
}
