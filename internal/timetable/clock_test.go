package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeRange(t *testing.T) {
	r, ok := ParseTimeRange("09:00-10:30")
	require.True(t, ok)
	assert.Equal(t, 540, r.Start)
	assert.Equal(t, 630, r.End)
	assert.Equal(t, "09:00-10:30", r.String())
	assert.Equal(t, 1.5, r.Hours())

	for _, raw := range []string{"", "09:00", "banana-10:00", "10:00-09:00", "09:00-09:00", "25:00-26:00"} {
		_, ok := ParseTimeRange(raw)
		assert.False(t, ok, "expected %q to be rejected", raw)
	}
}

func TestRangeOverlapsIsClosedInterval(t *testing.T) {
	a := Range{Start: 540, End: 630}

	assert.True(t, a.Overlaps(Range{Start: 600, End: 660}))
	// back-to-back ranges share an endpoint and therefore conflict
	assert.True(t, a.Overlaps(Range{Start: 630, End: 690}))
	assert.True(t, a.Overlaps(Range{Start: 480, End: 540}))
	assert.False(t, a.Overlaps(Range{Start: 660, End: 720}))
	assert.False(t, a.Overlaps(Range{Start: 450, End: 510}))
}
