package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"junkops-api/internal/dto"
	"junkops-api/internal/response"
	"junkops-api/internal/service"
)

// TagHandler serves the tag endpoints
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// CreateTag handles POST /tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(c.Request.Context(), businessID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusCreated, "Tag created successfully", tag)
}

// ListTags handles GET /tags
func (h *TagHandler) ListTags(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}

	tags, err := h.tagService.ListTags(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Tags retrieved successfully", tags)
}

// UpdateTag handles PUT /tags/:id
func (h *TagHandler) UpdateTag(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, err.Error())
		return
	}

	tag, err := h.tagService.UpdateTag(c.Request.Context(), businessID, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Tag updated successfully", tag)
}

// DeleteTag handles DELETE /tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	businessID, _, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(c.Request.Context(), businessID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SendSuccess(c, http.StatusOK, "Tag deleted successfully", nil)
}
