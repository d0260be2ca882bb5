package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.GlobalConfig{
		JWTSecret: testSecret,
		JWTIssuer: "session-service",
	}

	r := gin.New()
	r.GET("/protected", UserAuthRequiredMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":   c.GetString("user_id"),
			"user_type": c.GetString("user_type"),
		})
	})
	return r
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken(testSecret, "session-service", time.Hour, Claims{
		UserID:   "T1",
		UserType: "therapist",
	})
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "T1", claims.UserID)
	assert.Equal(t, "therapist", claims.UserType)
	assert.Equal(t, "T1", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewAccessToken(testSecret, "session-service", time.Hour, Claims{UserID: "T1"})
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := NewAccessToken(testSecret, "session-service", -time.Minute, Claims{UserID: "T1"})
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	r := newAuthTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBadScheme(t *testing.T) {
	r := newAuthTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r := newAuthTestRouter()

	token, err := NewAccessToken(testSecret, "session-service", time.Hour, Claims{
		UserID:   "P1",
		UserType: "patient",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"P1"`)
	assert.Contains(t, w.Body.String(), `"user_type":"patient"`)
}
