package models

// EventType enumerates the kinds of reservable events.
type EventType string

const (
	EventTypeCourse  EventType = "COURSE"
	EventTypeDefense EventType = "DEFENSE"
	EventTypeMeeting EventType = "MEETING"
)

// EventStatus tracks the lifecycle of a scheduled event.
type EventStatus string

const (
	EventStatusScheduled EventStatus = "SCHEDULED"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// Teacher identifies the staff member assigned to an event.
type Teacher struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Room is a bookable physical space.
type Room struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Location string `json:"location,omitempty"`
}

// Event mirrors the reservation backend's event representation.
// Dates are ISO (2006-01-02) and times are HH:MM strings, as served upstream.
type Event struct {
	ID                   int64       `json:"id"`
	Type                 EventType   `json:"type"`
	Title                string      `json:"title,omitempty"`
	Date                 string      `json:"date"`
	StartTime            string      `json:"startTime"`
	EndTime              string      `json:"endTime"`
	Teacher              *Teacher    `json:"teacher,omitempty"`
	Room                 *Room       `json:"room,omitempty"`
	Status               EventStatus `json:"status,omitempty"`
	ExpectedParticipants int         `json:"expectedParticipants,omitempty"`
}
