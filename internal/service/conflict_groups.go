package service

import (
	"fmt"

	"github.com/campus-ops/reservation-console/internal/models"
)

// Grouping collapses the backend's pairwise conflict records into per-cluster
// groups keyed by type, contested resource, date and time window. Three
// pairwise records over the same room and slot become one group of three
// events, which is what an operator actually has to resolve.

// groupResource names the contested resource of a record. The first event
// carries the authoritative assignment for every conflict type the backend
// emits.
func groupResource(rec models.ConflictRecord) string {
	switch rec.ConflictType {
	case models.ConflictTypeRoom:
		if rec.Event1 != nil && rec.Event1.Room != nil && rec.Event1.Room.Name != "" {
			return rec.Event1.Room.Name
		}
		return "Unknown Room"
	case models.ConflictTypeTeacher:
		if rec.Event1 != nil && rec.Event1.Teacher != nil && rec.Event1.Teacher.Name != "" {
			return rec.Event1.Teacher.Name
		}
		return "Unknown Teacher"
	default:
		if rec.Event1 != nil && rec.Event1.Room != nil && rec.Event1.Room.Name != "" {
			return rec.Event1.Room.Name
		}
		return "Unknown"
	}
}

// groupKey is the cluster identity. Records sharing a key describe the same
// underlying contention and are merged.
func groupKey(rec models.ConflictRecord) string {
	var date, start, end string
	if rec.Event1 != nil {
		date = rec.Event1.Date
		start = rec.Event1.StartTime
		end = rec.Event1.EndTime
	}
	return fmt.Sprintf("%s-%s-%s-%s-%s", rec.ConflictType, groupResource(rec), date, start, end)
}

// GroupConflicts clusters records into groups. Group order follows the first
// appearance of each cluster in the input, and event ids within a group are
// deduplicated in first-seen order, so the same input always yields the same
// output.
func GroupConflicts(records []models.ConflictRecord) []models.ConflictGroup {
	groups := make([]models.ConflictGroup, 0)
	index := make(map[string]int)

	for _, rec := range records {
		key := groupKey(rec)
		i, ok := index[key]
		if !ok {
			var date, start, end string
			if rec.Event1 != nil {
				date = rec.Event1.Date
				start = rec.Event1.StartTime
				end = rec.Event1.EndTime
			}
			groups = append(groups, models.ConflictGroup{
				ID:        key,
				Type:      rec.ConflictType,
				Resource:  groupResource(rec),
				Date:      date,
				TimeRange: start + "-" + end,
				EventIDs:  make([]int64, 0, 2),
				Conflicts: make([]models.ConflictRecord, 0, 1),
			})
			i = len(groups) - 1
			index[key] = i
		}

		g := &groups[i]
		g.Conflicts = append(g.Conflicts, rec)
		if rec.Event1 != nil {
			g.EventIDs = appendUniqueID(g.EventIDs, rec.Event1.ID)
		}
		if rec.Event2 != nil {
			g.EventIDs = appendUniqueID(g.EventIDs, rec.Event2.ID)
		}
	}
	return groups
}

func appendUniqueID(ids []int64, id int64) []int64 {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// GroupDescription renders the one-line headline for a group.
func GroupDescription(g models.ConflictGroup) string {
	if len(g.EventIDs) == 2 {
		return fmt.Sprintf("%s conflict between 2 events", g.Resource)
	}
	return fmt.Sprintf("%s conflicts among %d events (%d total conflicts)",
		g.Resource, len(g.EventIDs), len(g.Conflicts))
}

// ResolutionSuggestions lists the remedies an operator can apply to clear a
// group. Moving all but one event always suffices, so counts are N-1.
func ResolutionSuggestions(g models.ConflictGroup) []string {
	remaining := len(g.EventIDs) - 1

	suggestions := make([]string, 0, 3)
	switch g.Type {
	case models.ConflictTypeRoom:
		suggestions = append(suggestions,
			fmt.Sprintf("Move %d event(s) to different room(s)", remaining),
			fmt.Sprintf("Reschedule %d event(s) to different time(s)", remaining),
		)
	case models.ConflictTypeTeacher:
		suggestions = append(suggestions,
			fmt.Sprintf("Assign different teacher(s) to %d event(s)", remaining),
			fmt.Sprintf("Reschedule %d event(s) to different time(s)", remaining),
		)
	case models.ConflictTypeCapacity:
		suggestions = append(suggestions,
			"Move event(s) to larger room(s)",
			"Split the session into smaller groups",
		)
	}
	suggestions = append(suggestions, "Contact administrator for assistance")
	return suggestions
}

// SummarizeConflicts counts records per conflict type.
func SummarizeConflicts(records []models.ConflictRecord) models.ConflictSummary {
	var s models.ConflictSummary
	for _, rec := range records {
		switch rec.ConflictType {
		case models.ConflictTypeRoom:
			s.Room++
		case models.ConflictTypeTeacher:
			s.Teacher++
		case models.ConflictTypeCapacity:
			s.Capacity++
		}
	}
	s.Total = len(records)
	return s
}
