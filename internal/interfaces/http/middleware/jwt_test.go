package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeboard/backend/internal/infrastructure/auth"
	"github.com/storeboard/backend/internal/infrastructure/config"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-for-middleware-tests",
		Expiration: expiration,
		Issuer:     "storeboard-test",
	})
}

func newAuthRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(jwtService, nil))
	r.GET("/protected", func(c *gin.Context) {
		id, ok := GetAccountID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no account in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accountId": id})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Message
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, _, err := svc.GenerateToken("42")
	require.NoError(t, err)

	w := doRequest(newAuthRouter(svc), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accountId":42}`, w.Body.String())
}

func TestJWTAuth_MissingToken(t *testing.T) {
	r := newAuthRouter(newTestJWTService(time.Hour))

	for name, header := range map[string]string{
		"no header":     "",
		"wrong scheme":  "Basic abc123",
		"empty bearer":  "Bearer ",
		"bare keyword":  "Bearer",
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(r, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Access denied. No token provided", errorMessage(t, w))
		})
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(newTestJWTService(time.Hour))

	otherSvc := auth.NewJWTService(config.JWTConfig{
		Secret:     "a-completely-different-secret",
		Expiration: time.Hour,
		Issuer:     "storeboard-test",
	})
	token, _, err := otherSvc.GenerateToken("42")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, w))

	w = doRequest(r, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, w))
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	token, _, err := svc.GenerateToken("42")
	require.NoError(t, err)

	w := doRequest(newAuthRouter(newTestJWTService(time.Hour)), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", errorMessage(t, w))
}

func TestJWTAuth_NonNumericAccountID(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, _, err := svc.GenerateToken("not-a-number")
	require.NoError(t, err)

	w := doRequest(newAuthRouter(svc), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errorMessage(t, w))
}
