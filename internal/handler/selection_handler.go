package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/reservation-console/internal/dto"
	"github.com/campus-ops/reservation-console/internal/models"
	appErrors "github.com/campus-ops/reservation-console/pkg/errors"
	"github.com/campus-ops/reservation-console/pkg/response"
)

type selectionService interface {
	CreateBoard(ctx context.Context, session models.Session, req dto.CreateBoardRequest) (*dto.BoardResponse, error)
	GetBoard(boardID string) (*dto.BoardResponse, error)
	Filter(boardID string, criteria dto.FilterCriteria) ([]models.CourseSelection, error)
	UpdateEntry(boardID string, courseID int64, req dto.UpdateEntryRequest) (*dto.BoardResponse, error)
	SelectAllFiltered(boardID string, criteria dto.FilterCriteria) (*dto.BoardResponse, error)
	DeselectAll(boardID string) (*dto.BoardResponse, error)
	ApplyBulkPriority(boardID string, req dto.BulkPriorityRequest) (*dto.BoardResponse, error)
	ShufflePriorities(boardID string) (*dto.BoardResponse, error)
	ApplyPreset(boardID string, req dto.PresetRequest) (*dto.BoardResponse, error)
	Validate(boardID string, weekStartDate string) error
	Submit(ctx context.Context, session models.Session, boardID string, req dto.SubmitRequest) (*models.ScheduleResult, error)
	DeleteBoard(boardID string)
}

// SelectionHandler exposes the selection board endpoints.
type SelectionHandler struct {
	service selectionService
}

// NewSelectionHandler constructs the handler.
func NewSelectionHandler(svc selectionService) *SelectionHandler {
	return &SelectionHandler{service: svc}
}

// Create godoc
// @Summary Open a selection board seeded from the course catalog
// @Tags Selection
// @Accept json
// @Produce json
// @Param request body dto.CreateBoardRequest false "Optional week start date"
// @Success 201 {object} response.Envelope
// @Router /selection/boards [post]
func (h *SelectionHandler) Create(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateBoardRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid board payload"))
			return
		}
	}

	board, err := h.service.CreateBoard(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, board)
}

// Get godoc
// @Summary Fetch a selection board
// @Tags Selection
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id} [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	board, err := h.service.GetBoard(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// Filter godoc
// @Summary List board entries passing the filter criteria
// @Tags Selection
// @Produce json
// @Param id path string true "Board ID"
// @Param subject query string false "Subject or All"
// @Param minCapacity query int false "Minimum capacity floor"
// @Param maxCapacity query int false "Maximum capacity ceiling"
// @Param durationHours query int false "Exact duration in hours"
// @Param sessionsPerWeek query int false "Exact sessions per week"
// @Param nameContains query string false "Name substring"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/filter [get]
func (h *SelectionHandler) Filter(c *gin.Context) {
	var criteria dto.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid filter criteria"))
		return
	}

	entries, err := h.service.Filter(c.Param("id"), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// UpdateEntry godoc
// @Summary Patch one board entry
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param courseId path int true "Course ID"
// @Param request body dto.UpdateEntryRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/entries/{courseId} [patch]
func (h *SelectionHandler) UpdateEntry(c *gin.Context) {
	courseID, err := strconv.ParseInt(c.Param("courseId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid course id"))
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid entry payload"))
		return
	}

	board, err := h.service.UpdateEntry(c.Param("id"), courseID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// SelectAllFiltered godoc
// @Summary Select every entry passing the filter criteria
// @Tags Selection
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/select-filtered [post]
func (h *SelectionHandler) SelectAllFiltered(c *gin.Context) {
	var criteria dto.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid filter criteria"))
		return
	}

	board, err := h.service.SelectAllFiltered(c.Param("id"), criteria)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// DeselectAll godoc
// @Summary Clear every selection on the board
// @Tags Selection
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/deselect-all [post]
func (h *SelectionHandler) DeselectAll(c *gin.Context) {
	board, err := h.service.DeselectAll(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// BulkPriority godoc
// @Summary Assign consecutive priorities to the selected entries
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body dto.BulkPriorityRequest true "Starting priority"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/bulk-priority [post]
func (h *SelectionHandler) BulkPriority(c *gin.Context) {
	var req dto.BulkPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid bulk priority payload"))
		return
	}

	board, err := h.service.ApplyBulkPriority(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// Shuffle godoc
// @Summary Randomly permute priorities over the selected entries
// @Tags Selection
// @Produce json
// @Param id path string true "Board ID"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/shuffle [post]
func (h *SelectionHandler) Shuffle(c *gin.Context) {
	board, err := h.service.ShufflePriorities(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// Preset godoc
// @Summary Apply a named selection preset
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body dto.PresetRequest true "Preset name"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/preset [post]
func (h *SelectionHandler) Preset(c *gin.Context) {
	var req dto.PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid preset payload"))
		return
	}

	board, err := h.service.ApplyPreset(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board)
}

// Validate godoc
// @Summary Check a board for submission readiness
// @Tags Selection
// @Produce json
// @Param id path string true "Board ID"
// @Param weekStartDate query string false "Week start date override"
// @Success 204
// @Router /selection/boards/{id}/validate [get]
func (h *SelectionHandler) Validate(c *gin.Context) {
	if err := h.service.Validate(c.Param("id"), c.Query("weekStartDate")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Submit godoc
// @Summary Submit a board to the scheduler
// @Tags Selection
// @Accept json
// @Produce json
// @Param id path string true "Board ID"
// @Param request body dto.SubmitRequest false "Week start date and mode"
// @Success 200 {object} response.Envelope
// @Router /selection/boards/{id}/submit [post]
func (h *SelectionHandler) Submit(c *gin.Context) {
	session, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid submit payload"))
			return
		}
	}

	result, err := h.service.Submit(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Discard a selection board
// @Tags Selection
// @Param id path string true "Board ID"
// @Success 204
// @Router /selection/boards/{id} [delete]
func (h *SelectionHandler) Delete(c *gin.Context) {
	h.service.DeleteBoard(c.Param("id"))
	response.NoContent(c)
}
