package models

import "time"

// Course represents one teachable course with its weekly sessions and the
// department cohorts enrolled in it.
type Course struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Code       string    `db:"code" json:"code"`
	TeacherID  string    `db:"teacher_id" json:"teacher_id"`
	Faculty    *string   `db:"faculty" json:"faculty,omitempty"`
	Level      string    `db:"level" json:"level"`
	Type       string    `db:"type" json:"type"`
	Category   *string   `db:"category" json:"category,omitempty"`
	Semester   *string   `db:"semester" json:"semester,omitempty"`
	ECTS       int       `db:"ects" json:"ects"`
	TotalHours float64   `db:"total_hours" json:"total_hours"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`

	Sessions    []CourseSession    `db:"-" json:"sessions,omitempty"`
	Departments []CourseDepartment `db:"-" json:"departments,omitempty"`
}

// CourseSession is a single block belonging to a course. Kind is
// "theory" or "lab"; Hours is a multiple of 0.5.
type CourseSession struct {
	ID       string  `db:"id" json:"id"`
	CourseID string  `db:"course_id" json:"course_id"`
	Kind     string  `db:"kind" json:"kind"`
	Hours    float64 `db:"hours" json:"hours"`
}

// CourseDepartment links a course to an enrolled department cohort.
type CourseDepartment struct {
	ID           string `db:"id" json:"id"`
	CourseID     string `db:"course_id" json:"course_id"`
	Department   string `db:"department" json:"department"`
	StudentCount int    `db:"student_count" json:"student_count"`
}
