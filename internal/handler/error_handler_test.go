package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"junkops-api/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func recordedContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{response.ErrCodeNotFound, http.StatusNotFound},
		{response.ErrCodeValidation, http.StatusBadRequest},
		{response.ErrCodeNoValidFields, http.StatusBadRequest},
		{response.ErrCodeMissingField, http.StatusBadRequest},
		{response.ErrCodeAlreadyExists, http.StatusConflict},
		{response.ErrCodeTagInUse, http.StatusConflict},
		{response.ErrCodeUnauthorized, http.StatusUnauthorized},
		{response.ErrCodeForbidden, http.StatusForbidden},
		{response.ErrCodeAccessDenied, http.StatusForbidden},
		{response.ErrCodeSmsSendFailed, http.StatusBadGateway},
		{response.ErrCodeInternal, http.StatusInternalServerError},

		// Entity codes resolve through the suffix patterns
		{response.ErrCodeLeadNotFound, http.StatusNotFound},
		{response.ErrCodeEstimateNotFound, http.StatusNotFound},
		{response.ErrCodeContactNotFound, http.StatusNotFound},
		{response.ErrCodeLeadAlreadyConverted, http.StatusConflict},
		{response.ErrCodeDuplicateTag, http.StatusConflict},
		{response.ErrCodeDuplicateEmail, http.StatusConflict},
		{"SOMETHING_UNMAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestHandleServiceError_RecordNotFound(t *testing.T) {
	c, w := recordedContext()

	handleServiceError(c, gorm.ErrRecordNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeNotFound, *envelope.Error)
	assert.False(t, envelope.Timestamp.IsZero())
}

func TestHandleServiceError_AppError(t *testing.T) {
	c, w := recordedContext()

	handleServiceError(c, response.NewAppError(response.ErrCodeLeadAlreadyConverted, "Lead has already been converted", ""))

	assert.Equal(t, http.StatusConflict, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeLeadAlreadyConverted, *envelope.Error)
	assert.Equal(t, "Lead has already been converted", envelope.Message)
}

func TestHandleServiceError_UnknownError(t *testing.T) {
	c, w := recordedContext()

	handleServiceError(c, errors.New("driver: bad connection"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeInternal, *envelope.Error)
	assert.NotContains(t, envelope.Message, "driver", "internal details stay out of the response")
}

func TestParseUUIDParam(t *testing.T) {
	c, w := recordedContext()
	want := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: want.String()}}

	got, ok := parseUUIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, want, got)
	assert.Empty(t, w.Body.Bytes(), "no response written on success")
}

func TestParseUUIDParam_Invalid(t *testing.T) {
	c, w := recordedContext()
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	_, ok := parseUUIDParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, response.ErrCodeValidation, *envelope.Error)
}

func TestSendSuccessEnvelopeShape(t *testing.T) {
	c, w := recordedContext()

	response.SendSuccess(c, http.StatusOK, "Lead retrieved successfully", gin.H{"id": uuid.New().String()})

	assert.Equal(t, http.StatusOK, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	for _, key := range []string{"success", "data", "error", "timestamp"} {
		assert.Contains(t, raw, key)
	}
	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Error)
}
