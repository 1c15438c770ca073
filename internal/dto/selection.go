package dto

import "github.com/campus-ops/reservation-console/internal/models"

// FilterAll is the sentinel meaning "do not filter on this facet".
const FilterAll = "All"

// CreateBoardRequest opens a new selection board seeded from the catalog.
type CreateBoardRequest struct {
	WeekStartDate string `json:"weekStartDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateEntryRequest patches one board entry. Pointer fields distinguish
// "leave unchanged" from an explicit zero.
type UpdateEntryRequest struct {
	Selected     *bool `json:"selected,omitempty"`
	Priority     *int  `json:"priority,omitempty" validate:"omitempty,min=1"`
	StudentCount *int  `json:"studentCount,omitempty" validate:"omitempty,min=1"`
}

// FilterCriteria narrows the catalog view of a board. Zero values and the
// FilterAll sentinel disable individual facets.
type FilterCriteria struct {
	Subject         string `json:"subject,omitempty" form:"subject"`
	MinCapacity     int    `json:"minCapacity,omitempty" form:"minCapacity" validate:"omitempty,min=0"`
	MaxCapacity     int    `json:"maxCapacity,omitempty" form:"maxCapacity" validate:"omitempty,min=0"`
	DurationHours   int    `json:"durationHours,omitempty" form:"durationHours" validate:"omitempty,min=0"`
	SessionsPerWeek int    `json:"sessionsPerWeek,omitempty" form:"sessionsPerWeek" validate:"omitempty,min=0"`
	NameContains    string `json:"nameContains,omitempty" form:"nameContains"`
}

// BulkPriorityRequest assigns sequential priorities to the current filtered
// selection, starting at Start.
type BulkPriorityRequest struct {
	Start int `json:"start" validate:"required,min=1"`
}

// PresetRequest applies a named selection preset to the board.
type PresetRequest struct {
	Name string `json:"name" validate:"required,oneof=core-subjects small-groups full-catalog"`
}

// Submission modes. Structured carries priorities and student counts;
// professional sends the bare course id list to the professional scheduler.
const (
	SubmitModeStructured   = "structured"
	SubmitModeProfessional = "professional"
)

// SubmitRequest finalizes a board into a scheduling run.
type SubmitRequest struct {
	WeekStartDate string `json:"weekStartDate" validate:"omitempty,datetime=2006-01-02"`
	Mode          string `json:"mode" validate:"omitempty,oneof=structured professional"`
}

// BoardResponse is the full state of one selection board.
type BoardResponse struct {
	BoardID       string                   `json:"boardId"`
	WeekStartDate string                   `json:"weekStartDate,omitempty"`
	Entries       []models.CourseSelection `json:"entries"`
	Summary       models.SelectionSummary  `json:"summary"`
}

// CourseScheduleEntry is one course line of the structured submission payload.
type CourseScheduleEntry struct {
	CourseID     int64 `json:"courseId"`
	Priority     int   `json:"priority"`
	StudentCount int   `json:"studentCount"`
}

// StructuredScheduleRequest is the payload sent to the standard scheduler.
// The professional scheduler takes no wrapper at all: its body is a bare JSON
// array of course ids, so it has no request struct here.
type StructuredScheduleRequest struct {
	WeekStartDate string                `json:"weekStartDate"`
	Courses       []CourseScheduleEntry `json:"courses"`
}
