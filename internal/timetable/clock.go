package timetable

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a same-day time interval expressed in minutes since midnight.
type Range struct {
	Start int
	End   int
}

// Overlaps uses a closed-interval test: back-to-back ranges sharing an
// endpoint count as overlapping.
func (r Range) Overlaps(o Range) bool {
	return r.Start <= o.End && r.End >= o.Start
}

// Hours returns the range duration in hours.
func (r Range) Hours() float64 {
	return float64(r.End-r.Start) / 60
}

// String renders the range as "HH:MM-HH:MM".
func (r Range) String() string {
	return formatMark(r.Start) + "-" + formatMark(r.End)
}

// ParseTimeRange parses a stored "HH:MM-HH:MM" value.
func ParseTimeRange(raw string) (Range, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return Range{}, false
	}
	start, ok := parseMark(parts[0])
	if !ok {
		return Range{}, false
	}
	end, ok := parseMark(parts[1])
	if !ok || end <= start {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

func parseMark(raw string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func formatMark(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
