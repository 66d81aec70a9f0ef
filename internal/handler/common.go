package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"junkops-api/internal/middleware"
	"junkops-api/internal/response"
)

// principal extracts the authenticated business and user from the context.
// Sends a 401 and returns ok=false when the auth middleware did not run.
func principal(c *gin.Context) (businessID uuid.UUID, userID *uuid.UUID, ok bool) {
	businessID, exists := middleware.BusinessID(c)
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Business ID not found in context")
		return uuid.Nil, nil, false
	}
	if uid, exists := middleware.UserID(c); exists {
		userID = &uid
	}
	return businessID, userID, true
}
