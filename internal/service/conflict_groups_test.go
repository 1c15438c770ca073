package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-ops/reservation-console/internal/models"
)

func roomConflict(id int64, room string, date, start, end string, event1, event2 int64) models.ConflictRecord {
	return models.ConflictRecord{
		ID:           id,
		ConflictType: models.ConflictTypeRoom,
		Event1: &models.Event{
			ID: event1, Date: date, StartTime: start, EndTime: end,
			Room: &models.Room{ID: 1, Name: room},
		},
		Event2: &models.Event{
			ID: event2, Date: date, StartTime: start, EndTime: end,
			Room: &models.Room{ID: 1, Name: room},
		},
	}
}

func teacherConflict(id int64, teacher string, date, start, end string, event1, event2 int64) models.ConflictRecord {
	return models.ConflictRecord{
		ID:           id,
		ConflictType: models.ConflictTypeTeacher,
		Event1: &models.Event{
			ID: event1, Date: date, StartTime: start, EndTime: end,
			Teacher: &models.Teacher{ID: 1, Name: teacher},
		},
		Event2: &models.Event{
			ID: event2, Date: date, StartTime: start, EndTime: end,
			Teacher: &models.Teacher{ID: 1, Name: teacher},
		},
	}
}

func TestGroupConflictsPairBecomesSingleGroup(t *testing.T) {
	records := []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E06", "2025-08-19", "08:30", "09:30", 4, 3),
	}

	groups := GroupConflicts(records)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, models.ConflictTypeRoom, g.Type)
	assert.Equal(t, "E06", g.Resource)
	assert.Equal(t, "2025-08-19", g.Date)
	assert.Equal(t, "08:30-09:30", g.TimeRange)
	assert.Equal(t, []int64{3, 4}, g.EventIDs)
	assert.Len(t, g.Conflicts, 2)
	assert.Equal(t, "E06 conflict between 2 events", GroupDescription(g))
}

func TestGroupConflictsSeparatesByResourceAndTime(t *testing.T) {
	records := []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E07", "2025-08-19", "08:30", "09:30", 5, 6),
		roomConflict(3, "E06", "2025-08-19", "10:00", "11:00", 7, 8),
		teacherConflict(4, "Prof1", "2025-08-19", "08:30", "09:30", 3, 9),
	}

	groups := GroupConflicts(records)
	require.Len(t, groups, 4)

	// insertion order is preserved
	assert.Equal(t, "E06", groups[0].Resource)
	assert.Equal(t, "E07", groups[1].Resource)
	assert.Equal(t, "10:00-11:00", groups[2].TimeRange)
	assert.Equal(t, models.ConflictTypeTeacher, groups[3].Type)
	assert.Equal(t, "Prof1", groups[3].Resource)
}

func TestGroupConflictsEventIDsDeduplicated(t *testing.T) {
	records := []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E06", "2025-08-19", "08:30", "09:30", 3, 5),
		roomConflict(3, "E06", "2025-08-19", "08:30", "09:30", 4, 5),
	}

	groups := GroupConflicts(records)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, []int64{3, 4, 5}, g.EventIDs)
	assert.Len(t, g.Conflicts, 3)
	assert.Equal(t, "E06 conflicts among 3 events (3 total conflicts)", GroupDescription(g))
}

func TestGroupConflictsDeterministic(t *testing.T) {
	records := []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		teacherConflict(2, "Prof1", "2025-08-20", "10:00", "11:00", 5, 6),
		roomConflict(3, "E06", "2025-08-19", "08:30", "09:30", 4, 7),
	}

	first := GroupConflicts(records)
	second := GroupConflicts(records)
	assert.Equal(t, first, second)
}

func TestGroupConflictsCompleteness(t *testing.T) {
	records := []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E07", "2025-08-19", "08:30", "09:30", 5, 6),
		teacherConflict(3, "Prof1", "2025-08-20", "10:00", "11:00", 7, 8),
	}

	groups := GroupConflicts(records)
	total := 0
	for _, g := range groups {
		total += len(g.Conflicts)
	}
	assert.Equal(t, len(records), total)
}

func TestGroupResourceFallbacks(t *testing.T) {
	room := models.ConflictRecord{
		ConflictType: models.ConflictTypeRoom,
		Event1:       &models.Event{ID: 1, Date: "2025-08-19", StartTime: "08:30", EndTime: "09:30"},
	}
	teacher := models.ConflictRecord{
		ConflictType: models.ConflictTypeTeacher,
		Event1:       &models.Event{ID: 2, Date: "2025-08-19", StartTime: "08:30", EndTime: "09:30"},
	}

	groups := GroupConflicts([]models.ConflictRecord{room, teacher})
	require.Len(t, groups, 2)
	assert.Equal(t, "Unknown Room", groups[0].Resource)
	assert.Equal(t, "Unknown Teacher", groups[1].Resource)
}

func TestResolutionSuggestionsRoom(t *testing.T) {
	groups := GroupConflicts([]models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E06", "2025-08-19", "08:30", "09:30", 3, 5),
	})
	require.Len(t, groups, 1)

	suggestions := ResolutionSuggestions(groups[0])
	assert.Equal(t, []string{
		"Move 2 event(s) to different room(s)",
		"Reschedule 2 event(s) to different time(s)",
		"Contact administrator for assistance",
	}, suggestions)
}

func TestResolutionSuggestionsTeacher(t *testing.T) {
	groups := GroupConflicts([]models.ConflictRecord{
		teacherConflict(1, "Prof1", "2025-08-19", "08:30", "09:30", 3, 4),
	})
	require.Len(t, groups, 1)

	suggestions := ResolutionSuggestions(groups[0])
	assert.Equal(t, []string{
		"Assign different teacher(s) to 1 event(s)",
		"Reschedule 1 event(s) to different time(s)",
		"Contact administrator for assistance",
	}, suggestions)
}

func TestSummarizeConflicts(t *testing.T) {
	records := []models.ConflictRecord{
		roomConflict(1, "E06", "2025-08-19", "08:30", "09:30", 3, 4),
		roomConflict(2, "E07", "2025-08-19", "08:30", "09:30", 5, 6),
		teacherConflict(3, "Prof1", "2025-08-20", "10:00", "11:00", 7, 8),
		{
			ID:           4,
			ConflictType: models.ConflictTypeCapacity,
			Event1:       &models.Event{ID: 9, Date: "2025-08-21", StartTime: "09:00", EndTime: "10:00"},
		},
	}

	summary := SummarizeConflicts(records)
	assert.Equal(t, 2, summary.Room)
	assert.Equal(t, 1, summary.Teacher)
	assert.Equal(t, 1, summary.Capacity)
	assert.Equal(t, 4, summary.Total)
}
