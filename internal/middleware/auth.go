package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saloonhq/saloon-backend/internal/auth"
	"github.com/saloonhq/saloon-backend/internal/config"
	"github.com/saloonhq/saloon-backend/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c, cfg)
		if !ok {
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// OptionalAuth sets the user context when a valid token is present and
// lets the request through anonymously otherwise. Used on read surfaces
// whose visibility widens for authenticated callers.
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := auth.Parse(cfg.JWTSecret, parts[1])
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, cfg *config.Config) (*auth.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		httperr.Unauthorized(c, "missing_authorization_header", "Authorization header is required.")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		httperr.Unauthorized(c, "invalid_authorization_header", "Expected a Bearer token.")
		c.Abort()
		return nil, false
	}

	claims, err := auth.Parse(cfg.JWTSecret, parts[1])
	if err != nil {
		httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
		c.Abort()
		return nil, false
	}

	if claims.TokenType != auth.TokenTypeAccess {
		httperr.Unauthorized(c, "invalid_token_type", "An access token is required.")
		c.Abort()
		return nil, false
	}

	return claims, true
}
