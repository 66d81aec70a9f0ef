package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"junkops-api/internal/dto"
	"junkops-api/internal/response"
	"junkops-api/internal/service"
)

// EstimateHandler serves the estimate endpoints
type EstimateHandler struct {
	estimateService service.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler
func NewEstimateHandler(estimateService service.EstimateService) *EstimateHandler {
	return &EstimateHandler{
		estimateService: estimateService,
	}
}

// CreateEstimate handles POST /estimates
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	estimate, err := h.estimateService.CreateEstimate(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Estimate created successfully", estimate)
}

// GetEstimate handles GET /estimates/:id
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), businessID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Estimate retrieved successfully", estimate)
}

// ListEstimates handles GET /estimates
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.ListEstimatesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	estimates, pagination, err := h.estimateService.ListEstimates(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendList(c, http.StatusOK, "Estimates retrieved successfully", estimates, pagination, nil)
}

// SendEstimate handles PUT /estimates/:id/send
func (h *EstimateHandler) SendEstimate(c *gin.Context) {
	h.transition(c, h.estimateService.SendEstimate, "Estimate sent successfully")
}

// AcceptEstimate handles PUT /estimates/:id/accept
func (h *EstimateHandler) AcceptEstimate(c *gin.Context) {
	h.transition(c, h.estimateService.AcceptEstimate, "Estimate accepted successfully")
}

// DeclineEstimate handles PUT /estimates/:id/decline
func (h *EstimateHandler) DeclineEstimate(c *gin.Context) {
	h.transition(c, h.estimateService.DeclineEstimate, "Estimate declined successfully")
}

// ReplaceItems handles PUT /estimates/:id/items
func (h *EstimateHandler) ReplaceItems(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ReplaceEstimateItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	estimate, err := h.estimateService.ReplaceItems(c.Request.Context(), businessID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Estimate items replaced successfully", estimate)
}

func (h *EstimateHandler) transition(c *gin.Context, fn func(ctx context.Context, businessID, id uuid.UUID) (*dto.EstimateResponse, error), message string) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	estimate, err := fn(c.Request.Context(), businessID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, message, estimate)
}
