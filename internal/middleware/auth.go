package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/car_market_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var errMissingBearer = errors.New("authorization header format must be Bearer {token}")

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		userID, err := authenticate(authHeader, jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": tokenErrorMessage(err)})
			return
		}

		attachUser(c, userID)
		c.Next()
	}
}

// OptionalAuthMiddleware identifies the caller when a valid bearer token is present
// and lets anonymous requests through otherwise.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		if userID, err := authenticate(authHeader, jwtSecret); err == nil {
			attachUser(c, userID)
		} else {
			GetLoggerFromCtx(c.Request.Context()).Debug("Ignoring invalid optional token", slog.String("error", err.Error()))
		}
		c.Next()
	}
}

func authenticate(authHeader, jwtSecret string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errMissingBearer
	}

	claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, errMissingBearer):
		return "Authorization header format must be Bearer {token}"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token not valid yet"
	default:
		return "Invalid token"
	}
}

// attachUser stores the user ID in both the Gin and the request context and
// enriches the request logger with it.
func attachUser(c *gin.Context, userID string) {
	ctx := WithUserID(c.Request.Context(), userID)
	ctx = WithLogger(ctx, GetLoggerFromCtx(ctx).With(slog.String("user_id", userID)))
	c.Request = c.Request.WithContext(ctx)
	c.Set(string(userIDKey), userID)
}
