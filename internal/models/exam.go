package models

import (
	"time"

	"github.com/lib/pq"
)

// ResultStatus captures the outcome of one exam sitting for one student.
type ResultStatus string

const (
	ResultStatusPass   ResultStatus = "pass"
	ResultStatusFail   ResultStatus = "fail"
	ResultStatusAbsent ResultStatus = "absent"
)

// Valid reports whether the status is one of the known outcomes.
func (s ResultStatus) Valid() bool {
	switch s {
	case ResultStatusPass, ResultStatusFail, ResultStatusAbsent:
		return true
	}
	return false
}

// ExamSchedule is one sitting of one subject exam for one class within an
// examination. Read-only from the evaluation engine's perspective.
type ExamSchedule struct {
	ID            string         `db:"id" json:"id"`
	ExaminationID string         `db:"examination_id" json:"examination_id"`
	ClassNumber   int            `db:"class_number" json:"class_number"`
	SubjectID     string         `db:"subject_id" json:"subject_id"`
	TotalMarks    float64        `db:"total_marks" json:"total_marks"`
	PassingMarks  float64        `db:"passing_marks" json:"passing_marks"`
	ExamDate      time.Time      `db:"exam_date" json:"exam_date"`
	Invigilators  pq.StringArray `db:"invigilators" json:"invigilators"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// ExamResult is the single result row per (schedule, student). Re-marking
// overwrites every derived field in place; the unique key on the pair is the
// only concurrency primitive.
type ExamResult struct {
	ID            string       `db:"id" json:"id"`
	ScheduleID    string       `db:"schedule_id" json:"schedule_id"`
	StudentID     string       `db:"student_id" json:"student_id"`
	ObtainedMarks float64      `db:"obtained_marks" json:"obtained_marks"`
	TotalMarks    float64      `db:"total_marks" json:"total_marks"`
	Percentage    Percentage   `db:"percentage" json:"percentage"`
	Grade         string       `db:"grade" json:"grade"`
	Status        ResultStatus `db:"status" json:"status"`
	MarkedBy      string       `db:"marked_by" json:"marked_by"`
	Remarks       string       `db:"remarks" json:"remarks,omitempty"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

// ClassExamResultRow is an ExamResult joined with its schedule's subject,
// used by the class exam summary.
type ClassExamResultRow struct {
	ExamResult
	SubjectID string `db:"subject_id" json:"subject_id"`
}

// BulkMarkingSession is the append-only audit row written once per bulk
// marking call, after the result batch is durable.
type BulkMarkingSession struct {
	ID             string    `db:"id" json:"id"`
	ScheduleID     string    `db:"schedule_id" json:"schedule_id"`
	MarkedBy       string    `db:"marked_by" json:"marked_by"`
	TotalStudents  int       `db:"total_students" json:"total_students"`
	StudentsMarked int       `db:"students_marked" json:"students_marked"`
	StudentsAbsent int       `db:"students_absent" json:"students_absent"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
