package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/dto"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/timetable"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
)

type schedulerTeacherReader interface {
	ListActive(ctx context.Context) ([]models.Teacher, error)
}

type schedulerCourseReader interface {
	ListActiveWithDetails(ctx context.Context) ([]models.Course, error)
}

type schedulerClassroomReader interface {
	List(ctx context.Context) ([]models.Classroom, error)
}

type scheduleMaterializer interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error)
	ReplaceAll(ctx context.Context, entries []models.ScheduleEntry) error
}

type runResultCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type runObserver interface {
	ObserveSchedulingRun(algorithm string, duration time.Duration, scheduled, unscheduled int)
}

const (
	algorithmGreedy  = "greedy"
	algorithmGenetic = "genetic"

	lastRunCacheKey = "scheduler:last_run"

	// session hours and stored range durations are both derived from
	// half-hour marks, so a small tolerance absorbs float noise
	sessionHourTolerance = 0.1
)

// SchedulerRunConfig carries server defaults for scheduling runs.
type SchedulerRunConfig struct {
	Generations    int
	PopulationSize int
	MutationRate   float64
	ResultCacheTTL time.Duration
}

// SchedulerService loads the scheduling snapshot, executes the chosen
// strategy and materializes the winning timetable. Runs are not safe to
// execute concurrently against the same database; callers serialize.
type SchedulerService struct {
	teachers   schedulerTeacherReader
	courses    schedulerCourseReader
	classrooms schedulerClassroomReader
	schedules  scheduleMaterializer
	cache      runResultCache
	metrics    runObserver
	validator  *validator.Validate
	logger     *zap.Logger
	cfg        SchedulerRunConfig
}

// NewSchedulerService wires scheduler dependencies.
func NewSchedulerService(
	teachers schedulerTeacherReader,
	courses schedulerCourseReader,
	classrooms schedulerClassroomReader,
	schedules scheduleMaterializer,
	cache runResultCache,
	metrics runObserver,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg SchedulerRunConfig,
) *SchedulerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulerService{
		teachers:   teachers,
		courses:    courses,
		classrooms: classrooms,
		schedules:  schedules,
		cache:      cache,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run executes one scheduling run and replaces the persisted timetable
// with the outcome.
func (s *SchedulerService) Run(ctx context.Context, req dto.RunScheduleRequest) (*dto.RunResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scheduling request")
	}

	snap, rooms, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.Courses) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no active courses to schedule")
	}
	if len(snap.Rooms) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no classrooms available")
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	started := time.Now()
	var outcome timetable.Result
	switch req.Algorithm {
	case algorithmGenetic:
		cfg := timetable.GeneticConfig{
			Generations:    s.cfg.Generations,
			PopulationSize: s.cfg.PopulationSize,
			MutationRate:   s.cfg.MutationRate,
		}
		if req.Generations > 0 {
			cfg.Generations = req.Generations
		}
		if req.PopulationSize > 0 {
			cfg.PopulationSize = req.PopulationSize
		}
		if req.MutationRate > 0 {
			cfg.MutationRate = req.MutationRate
		}
		outcome = timetable.Genetic(snap, cfg, rng)
	default:
		outcome = timetable.Greedy(snap, rng)
	}
	elapsed := time.Since(started)

	if err := s.schedules.ReplaceAll(ctx, entriesToModels(outcome.Entries)); err != nil {
		return nil, fmt.Errorf("materialize schedule: %w", err)
	}

	result := buildRunResult(req.Algorithm, seed, outcome, rooms)

	if s.metrics != nil {
		s.metrics.ObserveSchedulingRun(req.Algorithm, elapsed, result.ScheduledCount, result.UnscheduledCount)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, lastRunCacheKey, result, s.cfg.ResultCacheTTL); err != nil {
			s.logger.Warn("cache scheduling result", zap.Error(err))
		}
	}

	s.logger.Info("scheduling run finished",
		zap.String("algorithm", req.Algorithm),
		zap.Int64("seed", seed),
		zap.Int("scheduled", result.ScheduledCount),
		zap.Int("unscheduled", result.UnscheduledCount),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}

// LastResult returns the cached outcome of the most recent run.
func (s *SchedulerService) LastResult(ctx context.Context) (*dto.RunResult, error) {
	if s.cache == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no scheduling run recorded")
	}
	var result dto.RunResult
	if err := s.cache.Get(ctx, lastRunCacheKey, &result); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no scheduling run recorded")
	}
	return &result, nil
}

// Status reports how much of the required session load the persisted
// timetable currently covers. A persisted entry accounts for a session
// when it belongs to the same course and its duration matches.
func (s *SchedulerService) Status(ctx context.Context) (*dto.ScheduleStatus, error) {
	courses, err := s.courses.ListActiveWithDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("load courses for status: %w", err)
	}
	entries, err := s.schedules.List(ctx, models.ScheduleFilter{})
	if err != nil {
		return nil, fmt.Errorf("load schedule for status: %w", err)
	}

	type placed struct {
		courseID string
		hours    float64
		used     bool
	}
	pool := make([]placed, 0, len(entries))
	for _, entry := range entries {
		r, ok := timetable.ParseTimeRange(entry.TimeRange)
		if !ok {
			continue
		}
		pool = append(pool, placed{courseID: entry.CourseID, hours: r.Hours()})
	}

	totalSessions := 0
	scheduled := 0
	for _, course := range courses {
		for _, session := range course.Sessions {
			totalSessions++
			for i := range pool {
				if pool[i].used || pool[i].courseID != course.ID {
					continue
				}
				if math.Abs(pool[i].hours-session.Hours) < sessionHourTolerance {
					pool[i].used = true
					scheduled++
					break
				}
			}
		}
	}

	completion := 0.0
	if totalSessions > 0 {
		completion = math.Round(float64(scheduled)/float64(totalSessions)*10000) / 100
	}

	return &dto.ScheduleStatus{
		TotalActiveCourses: len(courses),
		TotalSessions:      totalSessions,
		ScheduledSessions:  scheduled,
		CompletionPercent:  completion,
	}, nil
}

// loadSnapshot assembles the immutable scheduling input. Teacher
// availability payloads that fail to parse leave the teacher with no
// capacity rather than aborting the run.
func (s *SchedulerService) loadSnapshot(ctx context.Context) (timetable.Snapshot, map[string]models.Classroom, error) {
	teachers, err := s.teachers.ListActive(ctx)
	if err != nil {
		return timetable.Snapshot{}, nil, fmt.Errorf("load teachers: %w", err)
	}
	courses, err := s.courses.ListActiveWithDetails(ctx)
	if err != nil {
		return timetable.Snapshot{}, nil, fmt.Errorf("load courses: %w", err)
	}
	classrooms, err := s.classrooms.List(ctx)
	if err != nil {
		return timetable.Snapshot{}, nil, fmt.Errorf("load classrooms: %w", err)
	}

	snap := timetable.Snapshot{}
	for _, teacher := range teachers {
		availability := map[string][]string{}
		if len(teacher.Availability) > 0 {
			if err := json.Unmarshal(teacher.Availability, &availability); err != nil {
				s.logger.Warn("unparsable teacher availability",
					zap.String("teacher_id", teacher.ID), zap.Error(err))
				availability = map[string][]string{}
			}
		}
		snap.Teachers = append(snap.Teachers, timetable.Teacher{
			ID:           teacher.ID,
			Availability: availability,
		})
	}

	for _, course := range courses {
		tc := timetable.Course{
			ID:         course.ID,
			TeacherID:  course.TeacherID,
			Level:      course.Level,
			Type:       course.Type,
			Credits:    course.ECTS,
			TotalHours: course.TotalHours,
		}
		for _, dept := range course.Departments {
			tc.Departments = append(tc.Departments, timetable.Department{
				Name:         dept.Department,
				StudentCount: dept.StudentCount,
			})
		}
		for _, session := range course.Sessions {
			tc.Sessions = append(tc.Sessions, timetable.Session{
				ID:    session.ID,
				Kind:  timetable.KindFromString(session.Kind),
				Hours: session.Hours,
			})
		}
		snap.Courses = append(snap.Courses, tc)
	}

	roomIndex := make(map[string]models.Classroom, len(classrooms))
	for _, room := range classrooms {
		roomIndex[room.ID] = room
		snap.Rooms = append(snap.Rooms, timetable.Room{
			ID:       room.ID,
			Capacity: room.Capacity,
			Type:     room.Type,
		})
	}

	return snap, roomIndex, nil
}

func entriesToModels(entries []timetable.Entry) []models.ScheduleEntry {
	rows := make([]models.ScheduleEntry, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, models.ScheduleEntry{
			Day:         entry.Day,
			TimeRange:   entry.TimeRange(),
			CourseID:    entry.CourseID,
			ClassroomID: entry.RoomID,
		})
	}
	return rows
}

func buildRunResult(algorithm string, seed int64, outcome timetable.Result, rooms map[string]models.Classroom) *dto.RunResult {
	payload := make([]dto.ScheduleEntryPayload, 0, len(outcome.Entries))
	for _, entry := range outcome.Entries {
		ratio := 0.0
		if room, ok := rooms[entry.RoomID]; ok && room.Capacity > 0 {
			ratio = math.Round(float64(entry.Students)/float64(room.Capacity)*1000) / 10
		}
		payload = append(payload, dto.ScheduleEntryPayload{
			Day:           entry.Day,
			TimeRange:     entry.TimeRange(),
			CourseID:      entry.CourseID,
			ClassroomID:   entry.RoomID,
			Duration:      entry.Span.Hours(),
			CapacityRatio: ratio,
		})
	}

	unscheduled := make([]dto.UnscheduledCourse, 0, len(outcome.Unscheduled))
	for _, u := range outcome.Unscheduled {
		unscheduled = append(unscheduled, dto.UnscheduledCourse{CourseID: u.CourseID, Reason: u.Reason})
	}

	result := &dto.RunResult{
		Success:            outcome.Success,
		Message:            fmt.Sprintf("scheduled %d of %d sessions (%.1f%% success rate)", outcome.ScheduledCount, outcome.ScheduledCount+outcome.UnscheduledCount, outcome.SuccessRatePercent),
		Algorithm:          algorithm,
		Seed:               seed,
		ScheduledCount:     outcome.ScheduledCount,
		UnscheduledCount:   outcome.UnscheduledCount,
		SuccessRatePercent: outcome.SuccessRatePercent,
		Entries:            payload,
		Unscheduled:        unscheduled,
	}
	if algorithm == algorithmGenetic {
		perfect := outcome.Perfect
		result.Perfect = &perfect
	}
	return result
}
