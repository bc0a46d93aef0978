package timetable

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Greedy places courses one by one in priority order: lab-type courses
// first, then by descending credits, total hours and enrollment. Within
// a course, theory sessions are placed before lab sessions, and a lab
// session is only attempted once a theory entry for its course is on
// the board; once a session cannot be placed, the remaining sessions of
// that course are reported unscheduled with the first blocking reason.
// Day and room
// iteration order is shuffled with rng to spread load, so a fixed seed
// yields a fixed schedule.
func Greedy(snap Snapshot, rng *rand.Rand) Result {
	teachers := make(map[string]Teacher, len(snap.Teachers))
	availability := make(map[string]map[string][]int, len(snap.Teachers))
	for _, t := range snap.Teachers {
		teachers[t.ID] = t
		availability[t.ID] = deriveAvailability(t.Availability)
	}

	var entries []Entry
	var unscheduled []Unscheduled

	for _, course := range prioritize(snap.Courses) {
		sessions := course.orderedSessions()
		if len(sessions) == 0 {
			unscheduled = append(unscheduled, Unscheduled{CourseID: course.ID, Reason: "no sessions defined for course"})
			continue
		}
		blockReason := courseGap(course, teachers, availability)
		for _, session := range sessions {
			if blockReason != "" {
				unscheduled = append(unscheduled, Unscheduled{CourseID: course.ID, Reason: blockReason})
				continue
			}
			if session.Kind == KindLab && !hasTheory(entries, course.ID) {
				unscheduled = append(unscheduled, Unscheduled{CourseID: course.ID, Reason: "lab session requires a scheduled theory session"})
				continue
			}
			entry, reason := placeSession(course, session, availability[course.TeacherID], snap.Rooms, entries, rng)
			if reason != "" {
				blockReason = reason
				unscheduled = append(unscheduled, Unscheduled{CourseID: course.ID, Reason: reason})
				continue
			}
			entries = append(entries, entry)
		}
	}

	return newResult(entries, unscheduled)
}

// courseGap checks the data preconditions a course needs before any
// slot search is worth attempting. Empty string means no gap.
func courseGap(course Course, teachers map[string]Teacher, availability map[string]map[string][]int) string {
	if _, ok := teachers[course.TeacherID]; !ok {
		return "no teacher assigned to course"
	}
	if len(availability[course.TeacherID]) == 0 {
		return "teacher has no available time slots"
	}
	if len(course.Departments) == 0 {
		return "no departments enrolled in course"
	}
	return ""
}

// placeSession finds the first admissible (day, run, room) triple for
// the session. Days and rooms are tried in shuffled order, candidate
// runs earliest-first within a day.
func placeSession(course Course, session Session, availability map[string][]int, rooms []Room, entries []Entry, rng *rand.Rand) (Entry, string) {
	students := course.Enrollment()
	eligible := matchRooms(session.Kind, rooms, students)
	if len(eligible) == 0 {
		return Entry{}, fmt.Sprintf("no %s classroom with capacity for %d students", session.Kind, students)
	}

	days := availableDays(availability)
	rng.Shuffle(len(days), func(i, j int) { days[i], days[j] = days[j], days[i] })

	departments := course.departmentNames()
	for _, day := range days {
		var placed *Entry
		forEachRun(availability[day], session.Hours, func(span Range) bool {
			order := append([]Room(nil), eligible...)
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
			for _, room := range order {
				cand := Entry{
					Day:          dayTitle(day),
					Span:         span,
					CourseID:     course.ID,
					RoomID:       room.ID,
					TeacherID:    course.TeacherID,
					Departments:  departments,
					Level:        course.Level,
					SessionID:    session.ID,
					Kind:         session.Kind,
					Hours:        session.Hours,
					Students:     students,
					RoomCapacity: room.Capacity,
				}
				if placementOK(entries, cand) {
					placed = &cand
					return false
				}
			}
			return true
		})
		if placed != nil {
			return *placed, ""
		}
	}
	return Entry{}, "no conflict-free time slot available"
}

// prioritize orders courses for greedy placement. Ties keep the input
// order, so the pass is stable for a given snapshot.
func prioritize(courses []Course) []Course {
	ordered := append([]Course(nil), courses...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		aLab := strings.EqualFold(a.Type, string(KindLab))
		bLab := strings.EqualFold(b.Type, string(KindLab))
		if aLab != bLab {
			return aLab
		}
		if a.Credits != b.Credits {
			return a.Credits > b.Credits
		}
		if a.TotalHours != b.TotalHours {
			return a.TotalHours > b.TotalHours
		}
		return a.Enrollment() > b.Enrollment()
	})
	return ordered
}
