package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

const resultUpsertQuery = `INSERT INTO exam_results
        (id, schedule_id, student_id, obtained_marks, total_marks, percentage, grade, status, marked_by, remarks, created_at, updated_at)
        VALUES (:id, :schedule_id, :student_id, :obtained_marks, :total_marks, :percentage, :grade, :status, :marked_by, :remarks, :created_at, :updated_at)
        ON CONFLICT (schedule_id, student_id)
        DO UPDATE SET obtained_marks = EXCLUDED.obtained_marks, total_marks = EXCLUDED.total_marks,
            percentage = EXCLUDED.percentage, grade = EXCLUDED.grade, status = EXCLUDED.status,
            marked_by = EXCLUDED.marked_by, remarks = EXCLUDED.remarks, updated_at = EXCLUDED.updated_at`

// ResultRepository persists exam results. The unique key on
// (schedule_id, student_id) plus ON CONFLICT DO UPDATE keeps re-marking
// idempotent without explicit locking.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new result repository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// FindByID returns one result row. Missing rows surface as sql.ErrNoRows.
func (r *ResultRepository) FindByID(ctx context.Context, id string) (*models.ExamResult, error) {
	const query = `SELECT id, schedule_id, student_id, obtained_marks, total_marks, percentage, grade,
        status, marked_by, remarks, created_at, updated_at
        FROM exam_results WHERE id = $1`
	var result models.ExamResult
	if err := r.db.GetContext(ctx, &result, query, id); err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert inserts or overwrites the result for one (schedule, student) pair.
func (r *ResultRepository) Upsert(ctx context.Context, result *models.ExamResult) error {
	prepare(result)
	if _, err := r.db.NamedExecContext(ctx, resultUpsertQuery, result); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

// BulkUpsert writes a batch of results in one transaction. Either every row
// lands or none do.
func (r *ResultRepository) BulkUpsert(ctx context.Context, results []models.ExamResult) error {
	if len(results) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	for i := range results {
		prepare(&results[i])
		if _, err := tx.NamedExecContext(ctx, resultUpsertQuery, results[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("bulk upsert result: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

// ListBySchedule returns all results for one exam schedule.
func (r *ResultRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ExamResult, error) {
	const query = `SELECT id, schedule_id, student_id, obtained_marks, total_marks, percentage, grade,
        status, marked_by, remarks, created_at, updated_at
        FROM exam_results WHERE schedule_id = $1 ORDER BY student_id`
	var results []models.ExamResult
	if err := r.db.SelectContext(ctx, &results, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list results by schedule: %w", err)
	}
	return results, nil
}

// ListByStudent returns all results for one student across schedules.
func (r *ResultRepository) ListByStudent(ctx context.Context, studentID string) ([]models.ExamResult, error) {
	const query = `SELECT id, schedule_id, student_id, obtained_marks, total_marks, percentage, grade,
        status, marked_by, remarks, created_at, updated_at
        FROM exam_results WHERE student_id = $1 ORDER BY created_at DESC`
	var results []models.ExamResult
	if err := r.db.SelectContext(ctx, &results, query, studentID); err != nil {
		return nil, fmt.Errorf("list results by student: %w", err)
	}
	return results, nil
}

// ListByClassAndExam returns every result for a class/examination pair joined
// with the owning schedule's subject, feeding the class exam summary.
func (r *ResultRepository) ListByClassAndExam(ctx context.Context, classNumber int, examinationID string) ([]models.ClassExamResultRow, error) {
	const query = `SELECT er.id, er.schedule_id, er.student_id, er.obtained_marks, er.total_marks,
        er.percentage, er.grade, er.status, er.marked_by, er.remarks, er.created_at, er.updated_at,
        es.subject_id
        FROM exam_results er
        JOIN exam_schedules es ON es.id = er.schedule_id
        WHERE es.class_number = $1 AND es.examination_id = $2
        ORDER BY es.subject_id, er.student_id`
	var rows []models.ClassExamResultRow
	if err := r.db.SelectContext(ctx, &rows, query, classNumber, examinationID); err != nil {
		return nil, fmt.Errorf("list results by class and exam: %w", err)
	}
	return rows, nil
}

func prepare(result *models.ExamResult) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if result.CreatedAt.IsZero() {
		result.CreatedAt = now
	}
	result.UpdatedAt = now
}
