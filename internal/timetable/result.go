package timetable

import (
	"math"
	"sort"
)

// Unscheduled reports one session that could not be placed and why.
type Unscheduled struct {
	CourseID string
	Reason   string
}

// Result is the outcome of one scheduling run. Counts are per session;
// SuccessRatePercent is rounded to one decimal. Perfect is only
// meaningful for the genetic strategy: it marks a conflict-free best
// individual, whether or not every session was placed.
type Result struct {
	Success            bool
	ScheduledCount     int
	UnscheduledCount   int
	SuccessRatePercent float64
	Entries            []Entry
	Unscheduled        []Unscheduled
	Perfect            bool
}

func newResult(entries []Entry, unscheduled []Unscheduled) Result {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if dayRank[a.Day] != dayRank[b.Day] {
			return dayRank[a.Day] < dayRank[b.Day]
		}
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		return a.CourseID < b.CourseID
	})

	scheduled := len(entries)
	total := scheduled + len(unscheduled)
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(scheduled)/float64(total)*1000) / 10
	}
	return Result{
		Success:            true,
		ScheduledCount:     scheduled,
		UnscheduledCount:   len(unscheduled),
		SuccessRatePercent: rate,
		Entries:            entries,
		Unscheduled:        unscheduled,
	}
}
