package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"junkops-api/internal/dto"
	"junkops-api/internal/response"
	"junkops-api/internal/service"
)

// LeadHandler serves the lead endpoints and their sub-resources
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
	}
}

// CreateLead handles POST /leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	businessID, userID, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	lead, err := h.leadService.CreateLead(c.Request.Context(), businessID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Lead created successfully", lead)
}

// GetLead handles GET /leads/:id
func (h *LeadHandler) GetLead(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lead, err := h.leadService.GetLead(c.Request.Context(), businessID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Lead retrieved successfully", lead)
}

// ListLeads handles GET /leads
func (h *LeadHandler) ListLeads(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	leads, pagination, summary, err := h.leadService.ListLeads(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var summaryData interface{}
	if summary != nil {
		summaryData = summary
	}
	response.SendList(c, http.StatusOK, "Leads retrieved successfully", leads, pagination, summaryData)
}

// UpdateLead handles PUT /leads/:id
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	lead, err := h.leadService.UpdateLead(c.Request.Context(), businessID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Lead updated successfully", lead)
}

// DeleteLead handles DELETE /leads/:id
func (h *LeadHandler) DeleteLead(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.leadService.DeleteLead(c.Request.Context(), businessID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Lead deleted successfully", nil)
}

// ConvertLead handles POST /leads/:id/convert
func (h *LeadHandler) ConvertLead(c *gin.Context) {
	businessID, userID, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	// The conversion body is optional; every field has a default
	var req dto.ConvertLeadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
			return
		}
	}

	result, err := h.leadService.ConvertLead(c.Request.Context(), businessID, id, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Lead converted successfully", result)
}

// SearchLeads handles GET /leads/search
func (h *LeadHandler) SearchLeads(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	start := time.Now()
	results, err := h.leadService.SearchLeads(c.Request.Context(), businessID, c.Query("q"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Search completed successfully", dto.LeadSearchResponse{
		Results: results,
		Count:   len(results),
		TookMs:  time.Since(start).Milliseconds(),
	})
}

// GetLeadSummary handles GET /leads/summary
func (h *LeadHandler) GetLeadSummary(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	summary, err := h.leadService.GetSummary(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Lead summary retrieved successfully", summary)
}
