package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
	"github.com/campus-ops/reservation-console/internal/service"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
	"github.com/campus-ops/reservation-console/pkg/response"
)

type conflictService interface {
	List(ctx context.Context, session models.Session, query dto.ConflictQuery) (*dto.ConflictListResponse, error)
	Detect(ctx context.Context, session models.Session) (*dto.DetectResponse, error)
	Reschedule(ctx context.Context, session models.Session, eventID int64, req dto.RescheduleRequest) (*dto.DetectResponse, error)
	ChangeRoom(ctx context.Context, session models.Session, eventID int64, req dto.ChangeRoomRequest) (*dto.DetectResponse, error)
	Rooms(ctx context.Context, session models.Session) ([]models.Room, error)
	Dismiss(session models.Session, groupID string)
	Restore(session models.Session)
}

type conflictExporter interface {
	ConflictReport(ctx context.Context, session models.Session, format service.ExportFormat) (*service.ExportArtifact, error)
}

// ConflictHandler exposes the conflict review endpoints.
type ConflictHandler struct {
	service  conflictService
	exporter conflictExporter
}

// NewConflictHandler constructs the handler.
func NewConflictHandler(svc conflictService, exporter conflictExporter) *ConflictHandler {
	return &ConflictHandler{service: svc, exporter: exporter}
}

// List godoc
// @Summary List current conflicts
// @Tags Conflicts
// @Produce json
// @Param q query string false "Search term matching teacher or room names"
// @Param grouped query bool false "Return resource-centric groups instead of flat records"
// @Success 200 {object} response.Envelope
// @Router /conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var query dto.ConflictQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid query parameters"))
		return
	}

	listing, err := h.service.List(c.Request.Context(), session, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, listing)
}

// Detect godoc
// @Summary Run conflict detection
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts/detect [post]
func (h *ConflictHandler) Detect(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.service.Detect(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Reschedule godoc
// @Summary Reschedule a conflicting event
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.RescheduleRequest true "New date and time window"
// @Success 200 {object} response.Envelope
// @Router /conflicts/events/{id}/reschedule [put]
func (h *ConflictHandler) Reschedule(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid event id"))
		return
	}

	var req dto.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid reschedule payload"))
		return
	}

	result, err := h.service.Reschedule(c.Request.Context(), session, eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ChangeRoom godoc
// @Summary Move a conflicting event to another room
// @Tags Conflicts
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param request body dto.ChangeRoomRequest true "Target room"
// @Success 200 {object} response.Envelope
// @Router /conflicts/events/{id}/change-room [put]
func (h *ConflictHandler) ChangeRoom(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid event id"))
		return
	}

	var req dto.ChangeRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid change-room payload"))
		return
	}

	result, err := h.service.ChangeRoom(c.Request.Context(), session, eventID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Rooms godoc
// @Summary List candidate rooms for the change-room remedy
// @Tags Conflicts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /conflicts/rooms [get]
func (h *ConflictHandler) Rooms(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	rooms, err := h.service.Rooms(c.Request.Context(), session)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms)
}

// Dismiss godoc
// @Summary Hide a conflict group for this session
// @Tags Conflicts
// @Param id path string true "Group ID"
// @Success 204
// @Router /conflicts/groups/{id}/dismiss [post]
func (h *ConflictHandler) Dismiss(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	groupID := c.Param("id")
	if groupID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "group id is required"))
		return
	}
	h.service.Dismiss(session, groupID)
	response.NoContent(c)
}

// Restore godoc
// @Summary Restore all dismissed conflict groups for this session
// @Tags Conflicts
// @Success 204
// @Router /conflicts/groups/restore [post]
func (h *ConflictHandler) Restore(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	h.service.Restore(session)
	response.NoContent(c)
}

// Export godoc
// @Summary Download the grouped conflict report
// @Tags Conflicts
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Router /conflicts/export [get]
func (h *ConflictHandler) Export(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "reports are disabled"))
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportFormatCSV)))
	artifact, err := h.exporter.ConflictReport(c.Request.Context(), session, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Content)
}
