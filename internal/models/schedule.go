package models

// ScheduledPlacement is one event placed by the upstream scheduler.
type ScheduledPlacement struct {
	CourseName   string   `json:"courseName"`
	DayOfWeek    string   `json:"dayOfWeek"`
	EventDate    string   `json:"eventDate"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	Room         *Room    `json:"room,omitempty"`
	Teacher      *Teacher `json:"teacher,omitempty"`
	StudentCount int      `json:"studentCount"`
	Priority     int      `json:"priority"`
}

// ScheduleResult is the scheduling service's outcome. Partial failure is a
// normal variant of this result, not a transport error: FailedCourses and
// Conflicts describe courses the scheduler could not place.
type ScheduleResult struct {
	WeekStartDate     string               `json:"weekStartDate"`
	ScheduledEvents   []ScheduledPlacement `json:"scheduledEvents"`
	TotalCourses      int                  `json:"totalCourses"`
	SuccessfulCourses int                  `json:"successfulCourses"`
	FailedCourses     int                  `json:"failedCourses"`
	Conflicts         []string             `json:"conflicts,omitempty"`
}
