package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-ops/reservation-console/internal/middleware"
	"github.com/campus-ops/reservation-console/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func sessionFromContext(c *gin.Context) (models.Session, bool) {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}
