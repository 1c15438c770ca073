package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/reservation-console/internal/models"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
	"github.com/campus-ops/reservation-console/pkg/response"
)

type catalogService interface {
	ListCourses(ctx context.Context, token string) ([]models.Course, error)
	ListRooms(ctx context.Context, token string) ([]models.Room, error)
	Invalidate(ctx context.Context)
}

// CatalogHandler exposes read-only catalog passthroughs.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc catalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Courses godoc
// @Summary List the course catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/courses [get]
func (h *CatalogHandler) Courses(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.service.ListCourses(c.Request.Context(), session.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Rooms godoc
// @Summary List the room inventory
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog/rooms [get]
func (h *CatalogHandler) Rooms(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	rooms, err := h.service.ListRooms(c.Request.Context(), session.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms)
}

// Refresh godoc
// @Summary Drop the cached catalog so the next read refetches
// @Tags Catalog
// @Success 204
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	if _, ok := sessionFromContext(c); !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	h.service.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}
