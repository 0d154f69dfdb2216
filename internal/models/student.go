package models

import "time"

// Student is a read-only membership record for roster and marking checks.
// Student lifecycle management lives outside this service.
type Student struct {
	ID          string    `db:"id" json:"id"`
	FullName    string    `db:"full_name" json:"full_name"`
	RollNumber  string    `db:"roll_number" json:"roll_number"`
	ClassNumber int       `db:"class_number" json:"class_number"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
