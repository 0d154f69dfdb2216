package models

import (
	"time"

	"github.com/lib/pq"
)

// ClassRoster holds the subjects configured for one class number.
// Rosters are maintained by administrators only and are never auto-created.
type ClassRoster struct {
	ID          string         `db:"id" json:"id"`
	ClassNumber int            `db:"class_number" json:"class_number"`
	Subjects    pq.StringArray `db:"subjects" json:"subjects"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// HasSubject reports whether the roster contains the given subject identifier.
func (r *ClassRoster) HasSubject(subjectID string) bool {
	for _, s := range r.Subjects {
		if s == subjectID {
			return true
		}
	}
	return false
}
