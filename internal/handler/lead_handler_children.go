package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junkops-api/internal/dto"
	"junkops-api/internal/response"
)

// AddContact handles POST /leads/:id/contacts
func (h *LeadHandler) AddContact(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateLeadContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	contact, err := h.leadService.AddContact(c.Request.Context(), businessID, leadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Contact created successfully", contact)
}

// ListContacts handles GET /leads/:id/contacts
func (h *LeadHandler) ListContacts(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	contacts, err := h.leadService.ListContacts(c.Request.Context(), businessID, leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Contacts retrieved successfully", contacts)
}

// SetPrimaryContact handles PUT /leads/:id/contacts/:contactId/primary
func (h *LeadHandler) SetPrimaryContact(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	contactID, ok := parseUUIDParam(c, "contactId")
	if !ok {
		return
	}

	if err := h.leadService.SetPrimaryContact(c.Request.Context(), businessID, leadID, contactID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Primary contact updated successfully", nil)
}

// DeleteContact handles DELETE /leads/:id/contacts/:contactId
func (h *LeadHandler) DeleteContact(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	contactID, ok := parseUUIDParam(c, "contactId")
	if !ok {
		return
	}

	if err := h.leadService.DeleteContact(c.Request.Context(), businessID, leadID, contactID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Contact deleted successfully", nil)
}

// AddActivity handles POST /leads/:id/activities
func (h *LeadHandler) AddActivity(c *gin.Context) {
	businessID, userID, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateLeadActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	activity, err := h.leadService.AddActivity(c.Request.Context(), businessID, leadID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Activity logged successfully", activity)
}

// ListActivities handles GET /leads/:id/activities
func (h *LeadHandler) ListActivities(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	activities, err := h.leadService.ListActivities(c.Request.Context(), businessID, leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Activities retrieved successfully", activities)
}

// AddNote handles POST /leads/:id/notes
func (h *LeadHandler) AddNote(c *gin.Context) {
	businessID, userID, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateLeadNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	note, err := h.leadService.AddNote(c.Request.Context(), businessID, leadID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Note created successfully", note)
}

// ListNotes handles GET /leads/:id/notes
func (h *LeadHandler) ListNotes(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	notes, err := h.leadService.ListNotes(c.Request.Context(), businessID, leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Notes retrieved successfully", notes)
}

// UpsertQualification handles PUT /leads/:id/qualification
func (h *LeadHandler) UpsertQualification(c *gin.Context) {
	businessID, userID, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpsertQualificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	qualification, err := h.leadService.UpsertQualification(c.Request.Context(), businessID, leadID, userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Qualification saved successfully", qualification)
}

// GetQualification handles GET /leads/:id/qualification
func (h *LeadHandler) GetQualification(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	qualification, err := h.leadService.GetQualification(c.Request.Context(), businessID, leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Qualification retrieved successfully", qualification)
}

// AddFollowUp handles POST /leads/:id/follow-ups
func (h *LeadHandler) AddFollowUp(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	followUp, err := h.leadService.AddFollowUp(c.Request.Context(), businessID, leadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Follow-up scheduled successfully", followUp)
}

// ListFollowUps handles GET /leads/:id/follow-ups
func (h *LeadHandler) ListFollowUps(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	followUps, err := h.leadService.ListFollowUps(c.Request.Context(), businessID, leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Follow-ups retrieved successfully", followUps)
}

// CompleteFollowUp handles PUT /leads/:id/follow-ups/:followUpId/complete
func (h *LeadHandler) CompleteFollowUp(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	followUpID, ok := parseUUIDParam(c, "followUpId")
	if !ok {
		return
	}

	if err := h.leadService.CompleteFollowUp(c.Request.Context(), businessID, leadID, followUpID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Follow-up completed successfully", nil)
}

// AssignTag handles POST /leads/:id/tags/:tagId
func (h *LeadHandler) AssignTag(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseUUIDParam(c, "tagId")
	if !ok {
		return
	}

	if err := h.leadService.AssignTag(c.Request.Context(), businessID, leadID, tagID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Tag assigned successfully", nil)
}

// RemoveTag handles DELETE /leads/:id/tags/:tagId
func (h *LeadHandler) RemoveTag(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseUUIDParam(c, "tagId")
	if !ok {
		return
	}

	if err := h.leadService.RemoveTag(c.Request.Context(), businessID, leadID, tagID); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Tag removed successfully", nil)
}

// ListLeadTags handles GET /leads/:id/tags
func (h *LeadHandler) ListLeadTags(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	leadID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	tags, err := h.leadService.ListLeadTags(c.Request.Context(), businessID, leadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Tags retrieved successfully", tags)
}
