package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "auth-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func performAuth(t *testing.T, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	var captured *gin.Context
	r := gin.New()
	r.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		captured = c
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, captured
}

func TestAuth_MissingHeader(t *testing.T) {
	w, _ := performAuth(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	w, _ := performAuth(t, "Basic dXNlcjpwYXNz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	w, _ := performAuth(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "some-other-secret", jwt.MapClaims{
		"user_id":     uuid.New().String(),
		"business_id": uuid.New().String(),
	})
	w, _ := performAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id":     uuid.New().String(),
		"business_id": uuid.New().String(),
		"exp":         time.Now().Add(-time.Hour).Unix(),
	})
	w, _ := performAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MissingBusinessClaim(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": uuid.New().String(),
	})
	w, _ := performAuth(t, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidTokenSetsPrincipal(t *testing.T) {
	userID := uuid.New()
	businessID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id":     userID.String(),
		"business_id": businessID.String(),
		"role":        "admin",
		"exp":         time.Now().Add(time.Hour).Unix(),
	})

	w, captured := performAuth(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)

	gotUser, ok := UserID(captured)
	require.True(t, ok)
	assert.Equal(t, userID, gotUser)

	gotBusiness, ok := BusinessID(captured)
	require.True(t, ok)
	assert.Equal(t, businessID, gotBusiness)

	assert.Equal(t, "admin", captured.GetString(ContextRole))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"dispatcher rejected", "dispatcher", http.StatusForbidden},
		{"empty role rejected", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.DELETE("/admin-only", func(c *gin.Context) {
				c.Set(ContextRole, tt.role)
			}, RequireRole("admin"), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodDelete, "/admin-only", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
