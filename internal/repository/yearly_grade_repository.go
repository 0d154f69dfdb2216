package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

// YearlyGradeRepository persists yearly grade rows. Each write replaces the
// full row for its (student, class, year) key, raw marks and summary columns
// together; partial updates do not exist.
type YearlyGradeRepository struct {
	db *sqlx.DB
}

// NewYearlyGradeRepository creates a new yearly grade repository.
func NewYearlyGradeRepository(db *sqlx.DB) *YearlyGradeRepository {
	return &YearlyGradeRepository{db: db}
}

// Upsert inserts or fully replaces the yearly grade row.
func (r *YearlyGradeRepository) Upsert(ctx context.Context, grade *models.StudentYearlyGrade) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if grade.CreatedAt.IsZero() {
		grade.CreatedAt = now
	}
	grade.UpdatedAt = now
	const query = `INSERT INTO student_yearly_grades
        (id, student_id, class_number, year, raw_marks, total_obtained, total_marks, percentage, grade, created_at, updated_at)
        VALUES (:id, :student_id, :class_number, :year, :raw_marks, :total_obtained, :total_marks, :percentage, :grade, :created_at, :updated_at)
        ON CONFLICT (student_id, class_number, year)
        DO UPDATE SET raw_marks = EXCLUDED.raw_marks, total_obtained = EXCLUDED.total_obtained,
            total_marks = EXCLUDED.total_marks, percentage = EXCLUDED.percentage, grade = EXCLUDED.grade,
            created_at = EXCLUDED.created_at, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("upsert yearly grade: %w", err)
	}
	return nil
}

// ListByStudent returns a student's yearly grade rows ordered by class number
// ascending, optionally narrowed to one class and/or year.
func (r *YearlyGradeRepository) ListByStudent(ctx context.Context, filter models.YearlyGradeFilter) ([]models.StudentYearlyGrade, error) {
	query := `SELECT id, student_id, class_number, year, raw_marks, total_obtained, total_marks,
        percentage, grade, created_at, updated_at
        FROM student_yearly_grades WHERE student_id = $1`
	args := []interface{}{filter.StudentID}
	if filter.ClassNumber > 0 {
		query += fmt.Sprintf(" AND class_number = $%d", len(args)+1)
		args = append(args, filter.ClassNumber)
	}
	if filter.Year > 0 {
		query += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, filter.Year)
	}
	query += " ORDER BY class_number ASC, year ASC"
	var grades []models.StudentYearlyGrade
	if err := r.db.SelectContext(ctx, &grades, query, args...); err != nil {
		return nil, fmt.Errorf("list yearly grades: %w", err)
	}
	return grades, nil
}
