package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

type stubTeacherReader struct {
	teachers []models.Teacher
	err      error
}

func (s *stubTeacherReader) ListActive(context.Context) ([]models.Teacher, error) {
	return s.teachers, s.err
}

type stubCourseReader struct {
	courses []models.Course
	err     error
}

func (s *stubCourseReader) ListActiveWithDetails(context.Context) ([]models.Course, error) {
	return s.courses, s.err
}

type stubClassroomReader struct {
	classrooms []models.Classroom
	err        error
}

func (s *stubClassroomReader) List(context.Context) ([]models.Classroom, error) {
	return s.classrooms, s.err
}

type stubMaterializer struct {
	entries    []models.ScheduleEntry
	replaced   []models.ScheduleEntry
	replaceErr error
}

func (s *stubMaterializer) List(context.Context, models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	return s.entries, nil
}

func (s *stubMaterializer) ReplaceAll(_ context.Context, entries []models.ScheduleEntry) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = entries
	return nil
}

type stubCache struct {
	data map[string][]byte
}

func (s *stubCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	s.data[key] = raw
	return nil
}

func seedPtr(v int64) *int64 { return &v }

func schedulingFixture() (*stubTeacherReader, *stubCourseReader, *stubClassroomReader, *stubMaterializer, *stubCache) {
	teachers := &stubTeacherReader{teachers: []models.Teacher{{
		ID:           "t1",
		FullName:     "Aylin Demir",
		Availability: types.JSONText(`{"monday":["09:00","09:30","10:00","10:30","11:00"]}`),
		Active:       true,
	}}}
	courses := &stubCourseReader{courses: []models.Course{{
		ID:         "c1",
		Name:       "Algorithms",
		Code:       "CENG301",
		TeacherID:  "t1",
		Level:      "BSc",
		Type:       "theory",
		ECTS:       6,
		TotalHours: 1.5,
		Active:     true,
		Sessions: []models.CourseSession{
			{ID: "c1-s1", CourseID: "c1", Kind: "theory", Hours: 1.5},
		},
		Departments: []models.CourseDepartment{
			{ID: "d1", CourseID: "c1", Department: "CENG", StudentCount: 30},
		},
	}}}
	classrooms := &stubClassroomReader{classrooms: []models.Classroom{{
		ID: "r1", Name: "A-101", Capacity: 40, Type: "classroom",
	}}}
	return teachers, courses, classrooms, &stubMaterializer{}, &stubCache{}
}

func TestSchedulerServiceRunGreedy(t *testing.T) {
	teachers, courses, classrooms, schedules, cache := schedulingFixture()
	svc := NewSchedulerService(teachers, courses, classrooms, schedules, cache, nil, nil, nil, SchedulerRunConfig{ResultCacheTTL: time.Minute})

	result, err := svc.Run(context.Background(), dto.RunScheduleRequest{Algorithm: "greedy", Seed: seedPtr(7)})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "greedy", result.Algorithm)
	assert.Equal(t, int64(7), result.Seed)
	assert.Equal(t, 1, result.ScheduledCount)
	assert.Equal(t, 0, result.UnscheduledCount)
	assert.Equal(t, 100.0, result.SuccessRatePercent)
	assert.Nil(t, result.Perfect)

	require.Len(t, result.Entries, 1)
	entry := result.Entries[0]
	assert.Equal(t, "Monday", entry.Day)
	assert.Equal(t, 1.5, entry.Duration)
	assert.Equal(t, 75.0, entry.CapacityRatio)

	// the winning timetable was materialized
	require.Len(t, schedules.replaced, 1)
	assert.Equal(t, "c1", schedules.replaced[0].CourseID)
	assert.Equal(t, "r1", schedules.replaced[0].ClassroomID)

	// and the outcome is retrievable from the cache
	cached, err := svc.LastResult(context.Background())
	require.NoError(t, err)
	assert.Equal(t, result.ScheduledCount, cached.ScheduledCount)
}

func TestSchedulerServiceRunGenetic(t *testing.T) {
	teachers, courses, classrooms, schedules, cache := schedulingFixture()
	svc := NewSchedulerService(teachers, courses, classrooms, schedules, cache, nil, nil, nil, SchedulerRunConfig{
		Generations:    5,
		PopulationSize: 8,
		MutationRate:   0.05,
		ResultCacheTTL: time.Minute,
	})

	result, err := svc.Run(context.Background(), dto.RunScheduleRequest{Algorithm: "genetic", Seed: seedPtr(3)})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ScheduledCount)
	require.NotNil(t, result.Perfect)
	assert.True(t, *result.Perfect)
	require.Len(t, schedules.replaced, 1)
}

func TestSchedulerServiceRejectsUnknownAlgorithm(t *testing.T) {
	teachers, courses, classrooms, schedules, cache := schedulingFixture()
	svc := NewSchedulerService(teachers, courses, classrooms, schedules, cache, nil, nil, nil, SchedulerRunConfig{})

	_, err := svc.Run(context.Background(), dto.RunScheduleRequest{Algorithm: "simulated-annealing"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSchedulerServiceRequiresCourses(t *testing.T) {
	teachers, _, classrooms, schedules, cache := schedulingFixture()
	svc := NewSchedulerService(teachers, &stubCourseReader{}, classrooms, schedules, cache, nil, nil, nil, SchedulerRunConfig{})

	_, err := svc.Run(context.Background(), dto.RunScheduleRequest{Algorithm: "greedy"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestSchedulerServicePropagatesMaterializeFailure(t *testing.T) {
	teachers, courses, classrooms, schedules, cache := schedulingFixture()
	schedules.replaceErr = errors.New("db down")
	svc := NewSchedulerService(teachers, courses, classrooms, schedules, cache, nil, nil, nil, SchedulerRunConfig{})

	_, err := svc.Run(context.Background(), dto.RunScheduleRequest{Algorithm: "greedy", Seed: seedPtr(1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "materialize schedule")
}

func TestSchedulerServiceStatus(t *testing.T) {
	teachers, courses, classrooms, schedules, cache := schedulingFixture()
	schedules.entries = []models.ScheduleEntry{
		{ID: "e1", Day: "Monday", TimeRange: "09:00-10:30", CourseID: "c1", ClassroomID: "r1"},
	}
	svc := NewSchedulerService(teachers, courses, classrooms, schedules, cache, nil, nil, nil, SchedulerRunConfig{})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalActiveCourses)
	assert.Equal(t, 1, status.TotalSessions)
	assert.Equal(t, 1, status.ScheduledSessions)
	assert.Equal(t, 100.0, status.CompletionPercent)
}

func TestSchedulerServiceStatusIgnoresMismatchedDurations(t *testing.T) {
	teachers, courses, classrooms, schedules, cache := schedulingFixture()
	schedules.entries = []models.ScheduleEntry{
		{ID: "e1", Day: "Monday", TimeRange: "09:00-10:00", CourseID: "c1", ClassroomID: "r1"},
	}
	svc := NewSchedulerService(teachers, courses, classrooms, schedules, cache, nil, nil, nil, SchedulerRunConfig{})

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, status.ScheduledSessions)
	assert.Equal(t, 0.0, status.CompletionPercent)
}
