package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/reservation-console/internal/models"
	"github.com/campus-ops/reservation-console/internal/service"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
	"github.com/campus-ops/reservation-console/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

// ContextSessionKey is the gin context key storing the request session.
const ContextSessionKey = "currentSession"

// JWT protects routes by requiring a valid access token. The raw token is
// kept on the session so upstream calls can forward it unchanged.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(ContextSessionKey, models.SessionFromClaims(claims, parts[1]))
		c.Next()
	}
}

// RequireRole blocks requests whose claims carry none of the allowed roles.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		for _, role := range allowed {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
