package timetable

import "strings"

// roomTypeAliases maps a session kind to the classroom type tags that
// can host it. The Turkish tags show up in imported datasets.
var roomTypeAliases = map[SessionKind][]string{
	KindLab: {
		"lab", "laboratory", "laboratuvar", "computer lab",
		"uygulama", "uygulamali", "uygulamalı",
		"uygulamali ders", "uygulamalı ders",
	},
	KindTheory: {
		"theory", "theoretical", "teorik", "teori",
		"lecture", "lecture hall", "classroom", "ders",
	},
}

// matchRooms returns the rooms whose type tag is compatible with the
// session kind and whose capacity fits the enrolled student count.
func matchRooms(kind SessionKind, rooms []Room, studentCount int) []Room {
	aliases, ok := roomTypeAliases[kind]
	if !ok {
		aliases = []string{string(kind)}
	}
	var matched []Room
	for _, room := range rooms {
		if room.Capacity < studentCount {
			continue
		}
		tag := strings.ToLower(strings.TrimSpace(room.Type))
		for _, alias := range aliases {
			if tag == alias {
				matched = append(matched, room)
				break
			}
		}
	}
	return matched
}
