package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Error codes shared across handlers and services
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNoValidFields = "NO_VALID_FIELDS_TO_UPDATE"
	ErrCodeMissingField  = "MISSING_REQUIRED_FIELD"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "INSUFFICIENT_PERMISSIONS"
	ErrCodeAccessDenied  = "ACCESS_DENIED"
	ErrCodeInternal      = "INTERNAL_SERVER_ERROR"
)

// Entity specific error codes. The handler layer maps the suffix patterns
// (_NOT_FOUND, _ALREADY_, DUPLICATE_) to HTTP statuses.
const (
	ErrCodeLeadNotFound         = "LEAD_NOT_FOUND"
	ErrCodeLeadAlreadyConverted = "LEAD_ALREADY_CONVERTED"
	ErrCodeCustomerNotFound     = "CUSTOMER_NOT_FOUND"
	ErrCodeEmployeeNotFound     = "EMPLOYEE_NOT_FOUND"
	ErrCodeJobNotFound          = "JOB_NOT_FOUND"
	ErrCodeEstimateNotFound     = "ESTIMATE_NOT_FOUND"
	ErrCodeTagNotFound          = "TAG_NOT_FOUND"
	ErrCodeContactNotFound      = "CONTACT_NOT_FOUND"
	ErrCodeFollowUpNotFound     = "FOLLOW_UP_NOT_FOUND"
	ErrCodeDuplicateEmail       = "DUPLICATE_EMAIL"
	ErrCodeDuplicateTag         = "DUPLICATE_TAG"
	ErrCodeTagInUse             = "TAG_IN_USE"
	ErrCodeSmsSendFailed        = "SMS_SEND_FAILED"
)

// Envelope is the uniform response body for every endpoint
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data"`
	Error     *string     `json:"error"`
	Timestamp time.Time   `json:"timestamp"`
}

// Pagination describes the page window of a list response
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// ListData wraps list items together with pagination and an optional summary block
type ListData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
	Summary    interface{} `json:"summary,omitempty"`
}

// SendSuccess sends a success envelope with the given status and payload
func SendSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// SendList sends a success envelope carrying items, pagination and summary
func SendList(c *gin.Context, status int, message string, items interface{}, p Pagination, summary interface{}) {
	SendSuccess(c, status, message, ListData{
		Items:      items,
		Pagination: p,
		Summary:    summary,
	})
}

// SendError sends an error envelope with the given status, code and message
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{
		Success:   false,
		Message:   message,
		Error:     &code,
		Timestamp: time.Now().UTC(),
	})
}
