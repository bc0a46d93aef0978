package models

import "time"

// Classroom represents a bookable room with a capacity and a type tag
// such as "Laboratory" or "Lecture Hall".
type Classroom struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	Type      string    `db:"type" json:"type"`
	Faculty   *string   `db:"faculty" json:"faculty,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
