package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junkops-api/internal/dto"
	"junkops-api/internal/response"
	"junkops-api/internal/service"
)

// SmsHandler serves the SMS endpoints
type SmsHandler struct {
	smsService service.SmsService
}

// NewSmsHandler creates a new SmsHandler
func NewSmsHandler(smsService service.SmsService) *SmsHandler {
	return &SmsHandler{
		smsService: smsService,
	}
}

// SendSms handles POST /sms/send
func (h *SmsHandler) SendSms(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.SendSmsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	log, err := h.smsService.SendSms(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "SMS sent successfully", log)
}

// HandleWebhook handles POST /webhooks/sms/:businessId.
// The vendor posts form-encoded status callbacks, so this route carries
// no bearer token and identifies the tenant from the path.
func (h *SmsHandler) HandleWebhook(c *gin.Context) {
	businessID, ok := parseUUIDParam(c, "businessId")
	if !ok {
		return
	}

	var req dto.SmsWebhookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	log, err := h.smsService.HandleWebhook(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Webhook processed successfully", log)
}

// ListLogs handles GET /sms/logs
func (h *SmsHandler) ListLogs(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.ListSmsLogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	logs, pagination, err := h.smsService.ListLogs(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendList(c, http.StatusOK, "SMS logs retrieved successfully", logs, pagination, nil)
}

// ListLeadLogs handles GET /leads/:id/sms
func (h *SmsHandler) ListLeadLogs(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	logs, err := h.smsService.ListLeadLogs(c.Request.Context(), businessID, leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "SMS logs retrieved successfully", logs)
}
