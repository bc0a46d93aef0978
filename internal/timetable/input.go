package timetable

import (
	"sort"
	"strings"
)

// SessionKind distinguishes theory blocks from lab blocks.
type SessionKind string

const (
	KindTheory SessionKind = "theory"
	KindLab    SessionKind = "lab"
)

// KindFromString normalizes a stored session type into a SessionKind.
// Anything that is not a recognizable lab tag is treated as theory.
func KindFromString(raw string) SessionKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "lab", "laboratory", "laboratuvar", "uygulama", "uygulamali", "uygulamalı":
		return KindLab
	default:
		return KindTheory
	}
}

// Teacher is the scheduling view of an instructor: identity plus the raw
// weekly availability payload (lowercase day name to "HH:MM" start marks).
type Teacher struct {
	ID           string
	Availability map[string][]string
}

// Session is one theory or lab block of a course. Hours is a multiple
// of 0.5.
type Session struct {
	ID    string
	Kind  SessionKind
	Hours float64
}

// Department is an enrolled cohort of a course.
type Department struct {
	Name         string
	StudentCount int
}

// Course is the scheduling view of a course.
type Course struct {
	ID          string
	TeacherID   string
	Level       string
	Type        string
	Credits     int
	TotalHours  float64
	Departments []Department
	Sessions    []Session
}

// Enrollment is the total student count across all enrolled departments.
func (c Course) Enrollment() int {
	total := 0
	for _, d := range c.Departments {
		total += d.StudentCount
	}
	return total
}

func (c Course) departmentNames() []string {
	names := make([]string, 0, len(c.Departments))
	for _, d := range c.Departments {
		names = append(names, d.Name)
	}
	return names
}

// orderedSessions returns the course sessions with theory blocks before
// lab blocks, preserving relative order otherwise.
func (c Course) orderedSessions() []Session {
	ordered := append([]Session(nil), c.Sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind == KindTheory && ordered[j].Kind != KindTheory
	})
	return ordered
}

// Room is the scheduling view of a classroom.
type Room struct {
	ID       string
	Capacity int
	Type     string
}

// Snapshot is the immutable input to a scheduling run.
type Snapshot struct {
	Teachers []Teacher
	Courses  []Course
	Rooms    []Room
}

// Entry is one placed session. Day is title-cased ("Monday"). Fields
// beyond the (day, span, course, room) assignment are bookkeeping the
// conflict checks need.
type Entry struct {
	Day      string
	Span     Range
	CourseID string
	RoomID   string

	TeacherID    string
	Departments  []string
	Level        string
	SessionID    string
	Kind         SessionKind
	Hours        float64
	Students     int
	RoomCapacity int
}

// TimeRange renders the entry span as "HH:MM-HH:MM".
func (e Entry) TimeRange() string {
	return e.Span.String()
}

var weekDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var dayRank = func() map[string]int {
	ranks := make(map[string]int, len(weekDays))
	for i, d := range weekDays {
		ranks[dayTitle(d)] = i
	}
	return ranks
}()

func dayTitle(day string) string {
	if day == "" {
		return ""
	}
	return strings.ToUpper(day[:1]) + day[1:]
}
