package timetable

// Hard limits shared by both scheduling strategies.
const (
	maxDailyHours   = 8.0
	minBreakMinutes = 30
)

// hasConflict reports whether the candidate collides with any committed
// entry on the same day: same teacher, same room, or an overlapping
// session for the same cohort (same level and a shared department).
func hasConflict(entries []Entry, cand Entry) bool {
	for _, e := range entries {
		if e.Day != cand.Day || !e.Span.Overlaps(cand.Span) {
			continue
		}
		if e.TeacherID == cand.TeacherID {
			return true
		}
		if e.RoomID == cand.RoomID {
			return true
		}
		if sameCohort(e, cand) {
			return true
		}
	}
	return false
}

// dailyLoadOK checks that adding the candidate keeps every affected
// cohort within maxDailyHours for that day.
func dailyLoadOK(entries []Entry, cand Entry) bool {
	total := cand.Hours
	for _, e := range entries {
		if e.Day == cand.Day && sameCohort(e, cand) {
			total += e.Hours
		}
	}
	return total <= maxDailyHours
}

// breakOK checks that the candidate leaves at least minBreakMinutes
// between itself and every other same-day session of the same cohort.
// Overlapping pairs are left to hasConflict.
func breakOK(entries []Entry, cand Entry) bool {
	for _, e := range entries {
		if e.Day != cand.Day || !sameCohort(e, cand) {
			continue
		}
		if cand.Span.End <= e.Span.Start {
			if e.Span.Start-cand.Span.End < minBreakMinutes {
				return false
			}
		} else if e.Span.End <= cand.Span.Start {
			if cand.Span.Start-e.Span.End < minBreakMinutes {
				return false
			}
		}
	}
	return true
}

// placementOK is the combined admission test both strategies use before
// committing a candidate entry.
func placementOK(entries []Entry, cand Entry) bool {
	if hasConflict(entries, cand) {
		return false
	}
	if !dailyLoadOK(entries, cand) {
		return false
	}
	return breakOK(entries, cand)
}

func sameCohort(a, b Entry) bool {
	if a.Level != b.Level {
		return false
	}
	for _, da := range a.Departments {
		for _, db := range b.Departments {
			if da == db {
				return true
			}
		}
	}
	return false
}
