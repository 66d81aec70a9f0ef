package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junkops-api/internal/dto"
	"junkops-api/internal/response"
	"junkops-api/internal/service"
)

// JobHandler serves the job endpoints
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// CreateJob handles POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Job created successfully", job)
}

// GetJob handles GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	job, err := h.jobService.GetJob(c.Request.Context(), businessID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Job retrieved successfully", job)
}

// ListJobs handles GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	jobs, pagination, summary, err := h.jobService.ListJobs(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	var summaryData interface{}
	if summary != nil {
		summaryData = summary
	}
	response.SendList(c, http.StatusOK, "Jobs retrieved successfully", jobs, pagination, summaryData)
}

// UpdateJob handles PUT /jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), businessID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Job updated successfully", job)
}

// CompleteJob handles PUT /jobs/:id/complete
func (h *JobHandler) CompleteJob(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CompleteJobRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
			return
		}
	}

	job, err := h.jobService.CompleteJob(c.Request.Context(), businessID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Job completed successfully", job)
}

// CancelJob handles PUT /jobs/:id/cancel
func (h *JobHandler) CancelJob(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.jobService.CancelJob(c.Request.Context(), businessID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Job cancelled successfully", nil)
}
