package models

// Course is a catalog entry served by the reservation backend.
type Course struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Subject           string `json:"subject"`
	DurationHours     int    `json:"durationHours"`
	SessionsPerWeek   int    `json:"sessionsPerWeek"`
	MinCapacity       int    `json:"minCapacity"`
	MaxCapacity       int    `json:"maxCapacity,omitempty"`
	PreferredRoomType string `json:"preferredRoomType,omitempty"`
	Department        string `json:"department,omitempty"`
}

// CourseSelection is one course plus the operator's staged scheduling intent.
// Priority is only meaningful while Selected is true.
type CourseSelection struct {
	Course       Course `json:"course"`
	CourseID     int64  `json:"courseId"`
	Selected     bool   `json:"selected"`
	Priority     int    `json:"priority"`
	StudentCount int    `json:"studentCount"`
}

// SelectionSummary aggregates the selected entries of a board for the
// pre-submit analysis view.
type SelectionSummary struct {
	SelectedCount       int   `json:"selectedCount"`
	TotalCourses        int   `json:"totalCourses"`
	SessionsPerWeek     int   `json:"sessionsPerWeek"`
	TotalStudents       int   `json:"totalStudents"`
	DistinctSubjects    int   `json:"distinctSubjects"`
	DuplicatePriorities []int `json:"duplicatePriorities,omitempty"`
}
