package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectRuns(marks []int, hours float64) []Range {
	var spans []Range
	forEachRun(marks, hours, func(span Range) bool {
		spans = append(spans, span)
		return true
	})
	return spans
}

func TestForEachRunEnumeratesContiguousRuns(t *testing.T) {
	// 09:00-11:00 block, then a gap, then 13:00-14:00
	marks := []int{540, 570, 600, 630, 780, 810}

	spans := collectRuns(marks, 1.5)
	assert.Equal(t, []Range{
		{Start: 540, End: 630},
		{Start: 570, End: 660},
	}, spans)

	spans = collectRuns(marks, 1)
	assert.Equal(t, []Range{
		{Start: 540, End: 600},
		{Start: 570, End: 630},
		{Start: 600, End: 660},
		{Start: 780, End: 840},
	}, spans)
}

func TestForEachRunTooLongOrEmpty(t *testing.T) {
	assert.Empty(t, collectRuns([]int{540, 570}, 2))
	assert.Empty(t, collectRuns(nil, 1))
}

func TestForEachRunStopsWhenCallbackReturnsFalse(t *testing.T) {
	marks := []int{540, 570, 600}
	calls := 0
	forEachRun(marks, 0.5, func(Range) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)
}
