package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/uniplan/uniplan-api/internal/models"
)

func newScheduleRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleRepositoryList(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "day", "time_range", "course_id", "classroom_id", "created_at", "updated_at"}).
		AddRow("e1", "Monday", "09:00-10:30", "c1", "r1", now, now).
		AddRow("e2", "Monday", "11:00-12:00", "c2", "r2", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, day, time_range, course_id, classroom_id, created_at, updated_at FROM schedule_entries WHERE 1=1 AND day = $1")).
		WithArgs("Monday").
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), models.ScheduleFilter{Day: "Monday"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "09:00-10:30", entries[0].TimeRange)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReplaceAll(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	entries := []models.ScheduleEntry{
		{Day: "Monday", TimeRange: "09:00-10:30", CourseID: "c1", ClassroomID: "r1"},
		{Day: "Tuesday", TimeRange: "13:00-14:00", CourseID: "c2", ClassroomID: "r2"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_entries")).
		WillReturnResult(sqlmock.NewResult(0, 3))
	for range entries {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_entries")).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err := repo.ReplaceAll(context.Background(), entries)
	require.NoError(t, err)
	require.NotEmpty(t, entries[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryReplaceAllRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	entries := []models.ScheduleEntry{
		{Day: "Monday", TimeRange: "09:00-10:30", CourseID: "c1", ClassroomID: "r1"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_entries")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_entries")).
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	err := repo.ReplaceAll(context.Background(), entries)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
