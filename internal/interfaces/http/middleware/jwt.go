package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/infrastructure/auth"
	applog "github.com/storeboard/backend/internal/infrastructure/logger"
	"github.com/storeboard/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware.
const (
	AccountIDKey  = "jwt_account_id"
	ClaimsKey     = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Client-facing 401 messages. Missing and invalid tokens are
// distinguished so the frontend can tell "log in" apart from
// "session broken" and "session expired".
const (
	msgNoToken      = "Access denied. No token provided"
	msgInvalidToken = "Invalid token"
	msgExpiredToken = "Token expired"
)

// JWTAuth validates the Bearer token on every request and stores the
// authenticated account ID in the gin context. Credential state is not
// cached across requests: handlers re-load the account on each call.
func JWTAuth(jwtService *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, msgNoToken)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, msgNoToken)
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if logger != nil {
				logger.Debug("token validation failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path))
			}
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, msgExpiredToken)
			} else {
				abortUnauthorized(c, msgInvalidToken)
			}
			return
		}

		accountID, err := strconv.ParseInt(claims.AccountID, 10, 64)
		if err != nil || accountID <= 0 {
			abortUnauthorized(c, msgInvalidToken)
			return
		}

		c.Set(AccountIDKey, accountID)
		c.Set(ClaimsKey, claims)

		// Downstream logging picks up the account from the request
		// context.
		ctx, _ := applog.WithAccountID(c.Request.Context(),
			applog.FromContext(c.Request.Context()), claims.AccountID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetAccountID returns the authenticated account ID from the gin
// context, or false if the request did not pass JWT authentication.
func GetAccountID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(AccountIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}
