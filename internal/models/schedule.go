package models

import "time"

// ScheduleEntry is one persisted timetable assignment: a course session
// placed into a (day, time range, classroom) triple. TimeRange is stored
// as "HH:MM-HH:MM" with half-hour granularity.
type ScheduleEntry struct {
	ID          string    `db:"id" json:"id"`
	Day         string    `db:"day" json:"day"`
	TimeRange   string    `db:"time_range" json:"time_range"`
	CourseID    string    `db:"course_id" json:"course_id"`
	ClassroomID string    `db:"classroom_id" json:"classroom_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleFilter captures filtering options for listing schedule entries.
type ScheduleFilter struct {
	Day       string
	CourseID  string
	SortBy    string
	SortOrder string
}
