package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// SubjectMark is one submitted subject score. It is stored opaquely inside
// StudentYearlyGrade.RawMarks and decoded again on every read.
type SubjectMark struct {
	SubjectID     string  `json:"subject_id"`
	ObtainedMarks float64 `json:"obtained_marks"`
	TotalMarks    float64 `json:"total_marks"`
}

// GradeRollup is the derived summary for a set of subject marks. Percentage
// and grade are computed from the summed obtained/total, never averaged
// per subject.
type GradeRollup struct {
	TotalObtained float64    `json:"total_obtained"`
	TotalMarks    float64    `json:"total_marks"`
	Percentage    Percentage `json:"percentage"`
	Grade         string     `json:"grade"`
}

// StudentYearlyGrade is one row per (student, class, year). RawMarks is the
// canonical record; the summary columns beside it are a write-time artifact
// and are recomputed from RawMarks before any value leaves the service.
type StudentYearlyGrade struct {
	ID            string         `db:"id" json:"id"`
	StudentID     string         `db:"student_id" json:"student_id"`
	ClassNumber   int            `db:"class_number" json:"class_number"`
	Year          int            `db:"year" json:"year"`
	RawMarks      types.JSONText `db:"raw_marks" json:"-"`
	TotalObtained float64        `db:"total_obtained" json:"total_obtained"`
	TotalMarks    float64        `db:"total_marks" json:"total_marks"`
	Percentage    Percentage     `db:"percentage" json:"percentage"`
	Grade         string         `db:"grade" json:"grade"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// DecodeMarks parses the opaque raw-marks blob back into subject marks.
func (g *StudentYearlyGrade) DecodeMarks() ([]SubjectMark, error) {
	if len(g.RawMarks) == 0 {
		return nil, fmt.Errorf("yearly grade %s has no raw marks", g.ID)
	}
	var marks []SubjectMark
	if err := json.Unmarshal(g.RawMarks, &marks); err != nil {
		return nil, fmt.Errorf("decode raw marks for grade %s: %w", g.ID, err)
	}
	return marks, nil
}

// EncodeMarks serialises subject marks into the stored raw form.
func EncodeMarks(marks []SubjectMark) (types.JSONText, error) {
	raw, err := json.Marshal(marks)
	if err != nil {
		return nil, fmt.Errorf("encode raw marks: %w", err)
	}
	return types.JSONText(raw), nil
}

// YearlyGradeFilter scopes yearly grade listings. Zero values mean "any".
type YearlyGradeFilter struct {
	StudentID   string
	ClassNumber int
	Year        int
}
