package models

// ConflictType enumerates the dimensions along which two events can collide.
type ConflictType string

const (
	ConflictTypeRoom     ConflictType = "ROOM"
	ConflictTypeTeacher  ConflictType = "TEACHER"
	ConflictTypeCapacity ConflictType = "CAPACITY"
)

// ConflictRecord is one pairwise (or single-event capacity) conflict as
// detected by the reservation backend. Event1 is always present; Event2 is
// absent for single-event conflicts such as capacity overflow.
type ConflictRecord struct {
	ID           int64        `json:"id"`
	ConflictType ConflictType `json:"conflictType"`
	Event1       *Event       `json:"event1"`
	Event2       *Event       `json:"event2,omitempty"`
	Description  string       `json:"description"`
}

// ConflictGroup clusters ConflictRecords that share the same
// resource/date/time signature. Groups are derived on every pass and never
// persisted.
type ConflictGroup struct {
	ID        string           `json:"id"`
	Type      ConflictType     `json:"type"`
	Resource  string           `json:"resource"`
	Date      string           `json:"date"`
	TimeRange string           `json:"timeRange"`
	EventIDs  []int64          `json:"eventIds"`
	Conflicts []ConflictRecord `json:"conflicts"`
}

// ConflictSummary carries per-type counts for the review dashboard.
type ConflictSummary struct {
	Room     int `json:"room"`
	Teacher  int `json:"teacher"`
	Capacity int `json:"capacity"`
	Total    int `json:"total"`
}
