package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Teacher represents an instructor record. Availability holds the weekly
// free half-hour marks as a JSON object keyed by lowercase day name, e.g.
// {"monday": ["09:00", "09:30", "10:00"]}.
type Teacher struct {
	ID           string         `db:"id" json:"id"`
	FullName     string         `db:"full_name" json:"full_name"`
	Email        string         `db:"email" json:"email"`
	Faculty      *string        `db:"faculty" json:"faculty,omitempty"`
	Department   *string        `db:"department" json:"department,omitempty"`
	Availability types.JSONText `db:"availability" json:"availability"`
	Active       bool           `db:"active" json:"active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}
