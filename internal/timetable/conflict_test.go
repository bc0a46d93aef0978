package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func entryAt(day string, start, end int) Entry {
	return Entry{
		Day:         day,
		Span:        Range{Start: start, End: end},
		CourseID:    "c1",
		RoomID:      "r1",
		TeacherID:   "t1",
		Departments: []string{"CENG"},
		Level:       "BSc",
		Hours:       float64(end-start) / 60,
	}
}

func TestHasConflict(t *testing.T) {
	booked := []Entry{entryAt("Monday", 540, 630)}

	cand := entryAt("Monday", 600, 690)
	cand.RoomID = "r2"
	cand.TeacherID = "t2"
	cand.Departments = []string{"EEE"}
	assert.False(t, hasConflict(booked, cand))

	teacherClash := cand
	teacherClash.TeacherID = "t1"
	assert.True(t, hasConflict(booked, teacherClash))

	roomClash := cand
	roomClash.RoomID = "r1"
	assert.True(t, hasConflict(booked, roomClash))

	cohortClash := cand
	cohortClash.Departments = []string{"MATH", "CENG"}
	assert.True(t, hasConflict(booked, cohortClash))

	// same departments at a different level is a different cohort
	otherLevel := cohortClash
	otherLevel.Level = "MSc"
	assert.False(t, hasConflict(booked, otherLevel))

	// back-to-back sessions conflict under the closed-interval test
	backToBack := entryAt("Monday", 630, 720)
	assert.True(t, hasConflict(booked, backToBack))

	otherDay := entryAt("Tuesday", 540, 630)
	assert.False(t, hasConflict(booked, otherDay))
}

func TestDailyLoadOK(t *testing.T) {
	booked := []Entry{
		entryAt("Monday", 540, 780),  // 4h
		entryAt("Monday", 840, 1020), // 3h
	}

	ok := entryAt("Monday", 1080, 1140) // 1h, total 8h
	assert.True(t, dailyLoadOK(booked, ok))

	over := entryAt("Monday", 1080, 1170) // 1.5h, total 8.5h
	assert.False(t, dailyLoadOK(booked, over))

	otherCohort := over
	otherCohort.Departments = []string{"EEE"}
	assert.True(t, dailyLoadOK(booked, otherCohort))
}

func TestBreakOK(t *testing.T) {
	booked := []Entry{entryAt("Monday", 540, 630)}

	tight := entryAt("Monday", 650, 710) // 20 minute gap
	assert.False(t, breakOK(booked, tight))

	spaced := entryAt("Monday", 660, 720) // 30 minute gap
	assert.True(t, breakOK(booked, spaced))

	before := entryAt("Monday", 450, 510) // 30 minutes before
	assert.True(t, breakOK(booked, before))

	otherCohort := tight
	otherCohort.Departments = []string{"EEE"}
	assert.True(t, breakOK(booked, otherCohort))
}
