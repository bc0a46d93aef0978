package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/uniplan/uniplan-api/internal/models"
)

// CourseRepository provides read access to courses and their sessions
// and department enrollments.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListActiveWithDetails returns all active courses with their sessions
// and department enrollments attached.
func (r *CourseRepository) ListActiveWithDetails(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, code, teacher_id, faculty, level, type, category, semester, ects, total_hours, active, created_at, updated_at FROM courses WHERE active = TRUE ORDER BY created_at ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list active courses: %w", err)
	}
	if len(courses) == 0 {
		return courses, nil
	}

	ids := make([]string, 0, len(courses))
	index := make(map[string]int, len(courses))
	for i, course := range courses {
		ids = append(ids, course.ID)
		index[course.ID] = i
	}

	const sessionQuery = `SELECT id, course_id, kind, hours FROM course_sessions WHERE course_id = ANY($1) ORDER BY course_id, id`
	var sessions []models.CourseSession
	if err := r.db.SelectContext(ctx, &sessions, sessionQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list course sessions: %w", err)
	}
	for _, session := range sessions {
		if i, ok := index[session.CourseID]; ok {
			courses[i].Sessions = append(courses[i].Sessions, session)
		}
	}

	const departmentQuery = `SELECT id, course_id, department, student_count FROM course_departments WHERE course_id = ANY($1) ORDER BY course_id, department`
	var departments []models.CourseDepartment
	if err := r.db.SelectContext(ctx, &departments, departmentQuery, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list course departments: %w", err)
	}
	for _, dept := range departments {
		if i, ok := index[dept.CourseID]; ok {
			courses[i].Departments = append(courses[i].Departments, dept)
		}
	}

	return courses, nil
}
