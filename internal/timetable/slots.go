package timetable

import "math"

// forEachRun enumerates every minimal contiguous run of half-hour marks
// long enough to host a session of the given duration, earliest start
// first. Marks must be sorted; a run is contiguous only when adjacent
// marks are exactly 30 minutes apart. The span end is the last mark
// plus 30 minutes. Enumeration stops when fn returns false.
func forEachRun(marks []int, hours float64, fn func(span Range) bool) {
	need := int(math.Round(hours * 2))
	if need <= 0 || len(marks) < need {
		return
	}
	for i := 0; i+need <= len(marks); i++ {
		contiguous := true
		for j := i; j < i+need-1; j++ {
			if marks[j+1]-marks[j] != 30 {
				contiguous = false
				break
			}
		}
		if !contiguous {
			continue
		}
		span := Range{Start: marks[i], End: marks[i+need-1] + 30}
		if !fn(span) {
			return
		}
	}
}
