package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

// ScheduleRepository reads exam schedules. Schedules are created and
// maintained by the examination admin module.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindByID returns one exam schedule. Missing rows surface as sql.ErrNoRows.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.ExamSchedule, error) {
	const query = `SELECT id, examination_id, class_number, subject_id, total_marks, passing_marks,
        exam_date, invigilators, created_at, updated_at
        FROM exam_schedules WHERE id = $1`
	var schedule models.ExamSchedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListByExamAndClass returns all schedules for an examination/class pair.
func (r *ScheduleRepository) ListByExamAndClass(ctx context.Context, examinationID string, classNumber int) ([]models.ExamSchedule, error) {
	const query = `SELECT id, examination_id, class_number, subject_id, total_marks, passing_marks,
        exam_date, invigilators, created_at, updated_at
        FROM exam_schedules WHERE examination_id = $1 AND class_number = $2
        ORDER BY exam_date ASC`
	var schedules []models.ExamSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, examinationID, classNumber); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}
