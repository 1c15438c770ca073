package dto

import "github.com/campus-ops/reservation-console/internal/models"

// ConflictQuery narrows and shapes the review listing.
type ConflictQuery struct {
	Search  string `form:"q" json:"q"`
	Grouped bool   `form:"grouped" json:"grouped"`
}

// RescheduleRequest moves one event to a new date/time window.
type RescheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// ChangeRoomRequest moves one event into a different room.
type ChangeRoomRequest struct {
	RoomID int64 `json:"roomId" validate:"required,min=1"`
}

// GroupView is a ConflictGroup annotated with the advisory output.
type GroupView struct {
	models.ConflictGroup
	Description string   `json:"description"`
	Suggestions []string `json:"suggestions"`
}

// ConflictListResponse is the review listing in either view mode.
type ConflictListResponse struct {
	Conflicts []models.ConflictRecord `json:"conflicts,omitempty"`
	Groups    []GroupView             `json:"groups,omitempty"`
	Summary   models.ConflictSummary  `json:"summary"`
}

// DetectResponse returns a detection pass outcome. Preview is true when the
// persisting detect failed and the result came from the non-persisting
// preview endpoint instead.
type DetectResponse struct {
	Conflicts []models.ConflictRecord `json:"conflicts"`
	Preview   bool                    `json:"preview"`
}
