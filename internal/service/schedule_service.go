package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/uniplan/uniplan-api/internal/models"
	appErrors "github.com/uniplan/uniplan-api/pkg/errors"
	"github.com/uniplan/uniplan-api/pkg/export"
)

type scheduleReader interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error)
}

type scheduleCourseReader interface {
	ListActiveWithDetails(ctx context.Context) ([]models.Course, error)
}

type scheduleClassroomReader interface {
	List(ctx context.Context) ([]models.Classroom, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type documentRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

// ExportDocument is a rendered timetable ready for download.
type ExportDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ScheduleService serves the persisted timetable and its exports.
type ScheduleService struct {
	schedules  scheduleReader
	courses    scheduleCourseReader
	classrooms scheduleClassroomReader
	csv        tableRenderer
	pdf        documentRenderer
	logger     *zap.Logger
	title      string
}

// NewScheduleService wires schedule dependencies.
func NewScheduleService(
	schedules scheduleReader,
	courses scheduleCourseReader,
	classrooms scheduleClassroomReader,
	csv tableRenderer,
	pdf documentRenderer,
	logger *zap.Logger,
	title string,
) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if title == "" {
		title = "Weekly Course Timetable"
	}
	return &ScheduleService{
		schedules:  schedules,
		courses:    courses,
		classrooms: classrooms,
		csv:        csv,
		pdf:        pdf,
		logger:     logger,
		title:      title,
	}
}

// List returns persisted schedule entries with optional filtering.
func (s *ScheduleService) List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error) {
	entries, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	sortEntriesForDisplay(entries)
	return entries, nil
}

// Export renders the full persisted timetable as CSV or PDF.
func (s *ScheduleService) Export(ctx context.Context, format string) (*ExportDocument, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	entries, err := s.schedules.List(ctx, models.ScheduleFilter{})
	if err != nil {
		return nil, fmt.Errorf("load schedule for export: %w", err)
	}
	sortEntriesForDisplay(entries)

	courseNames, classroomNames, err := s.loadNameIndexes(ctx)
	if err != nil {
		return nil, err
	}

	table := export.Table{
		Columns: []string{"Day", "Time", "Course", "Classroom"},
	}
	for _, entry := range entries {
		course := courseNames[entry.CourseID]
		if course == "" {
			course = entry.CourseID
		}
		classroom := classroomNames[entry.ClassroomID]
		if classroom == "" {
			classroom = entry.ClassroomID
		}
		table.Rows = append(table.Rows, []string{entry.Day, entry.TimeRange, course, classroom})
	}

	switch format {
	case "pdf":
		content, err := s.pdf.Render(table, s.title)
		if err != nil {
			return nil, fmt.Errorf("render pdf export: %w", err)
		}
		return &ExportDocument{Content: content, ContentType: "application/pdf", Filename: "timetable.pdf"}, nil
	default:
		content, err := s.csv.Render(table)
		if err != nil {
			return nil, fmt.Errorf("render csv export: %w", err)
		}
		return &ExportDocument{Content: content, ContentType: "text/csv", Filename: "timetable.csv"}, nil
	}
}

func (s *ScheduleService) loadNameIndexes(ctx context.Context) (map[string]string, map[string]string, error) {
	courses, err := s.courses.ListActiveWithDetails(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load courses for export: %w", err)
	}
	classrooms, err := s.classrooms.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load classrooms for export: %w", err)
	}

	courseNames := make(map[string]string, len(courses))
	for _, course := range courses {
		label := course.Name
		if course.Code != "" {
			label = fmt.Sprintf("%s %s", course.Code, course.Name)
		}
		courseNames[course.ID] = label
	}
	classroomNames := make(map[string]string, len(classrooms))
	for _, room := range classrooms {
		classroomNames[room.ID] = room.Name
	}
	return courseNames, classroomNames, nil
}

var displayDayRank = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

func sortEntriesForDisplay(entries []models.ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		ra, okA := displayDayRank[a.Day]
		rb, okB := displayDayRank[b.Day]
		if !okA {
			ra = len(displayDayRank)
		}
		if !okB {
			rb = len(displayDayRank)
		}
		if ra != rb {
			return ra < rb
		}
		return a.TimeRange < b.TimeRange
	})
}
