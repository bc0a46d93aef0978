package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchRoomsFiltersByTypeAndCapacity(t *testing.T) {
	rooms := []Room{
		{ID: "r1", Capacity: 40, Type: "Lecture Hall"},
		{ID: "r2", Capacity: 20, Type: "Laboratory"},
		{ID: "r3", Capacity: 60, Type: "Laboratuvar"},
		{ID: "r4", Capacity: 100, Type: "Uygulamalı Ders"},
		{ID: "r5", Capacity: 100, Type: "storage"},
	}

	labRooms := matchRooms(KindLab, rooms, 30)
	ids := make([]string, 0, len(labRooms))
	for _, r := range labRooms {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"r3", "r4"}, ids)

	theoryRooms := matchRooms(KindTheory, rooms, 30)
	assert.Len(t, theoryRooms, 1)
	assert.Equal(t, "r1", theoryRooms[0].ID)

	assert.Empty(t, matchRooms(KindTheory, rooms, 50))
}

func TestKindFromString(t *testing.T) {
	assert.Equal(t, KindLab, KindFromString("Lab"))
	assert.Equal(t, KindLab, KindFromString("uygulama"))
	assert.Equal(t, KindTheory, KindFromString("teorik"))
	assert.Equal(t, KindTheory, KindFromString("anything-else"))
}
