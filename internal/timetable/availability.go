package timetable

import (
	"sort"
	"strings"
)

// deriveAvailability turns the raw availability payload into per-day
// sorted, deduplicated half-hour marks in minutes since midnight.
// Unknown day keys, unparsable marks and marks off the half-hour grid
// are skipped rather than rejected: a teacher with a broken payload
// simply has no capacity there.
func deriveAvailability(raw map[string][]string) map[string][]int {
	out := make(map[string][]int, len(raw))
	for day, marks := range raw {
		key := strings.ToLower(strings.TrimSpace(day))
		if !isWeekDay(key) {
			continue
		}
		var minutes []int
		for _, mark := range marks {
			v, ok := parseMark(mark)
			if !ok || v%30 != 0 {
				continue
			}
			minutes = append(minutes, v)
		}
		if len(minutes) == 0 {
			continue
		}
		sort.Ints(minutes)
		out[key] = dedupInts(minutes)
	}
	return out
}

// availableDays lists the days with at least one free mark, in week
// order so iteration stays deterministic.
func availableDays(availability map[string][]int) []string {
	days := make([]string, 0, len(availability))
	for _, day := range weekDays {
		if len(availability[day]) > 0 {
			days = append(days, day)
		}
	}
	return days
}

func isWeekDay(day string) bool {
	for _, d := range weekDays {
		if d == day {
			return true
		}
	}
	return false
}

func dedupInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}
