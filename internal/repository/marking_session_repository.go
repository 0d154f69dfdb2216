package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

// MarkingSessionRepository appends bulk-marking audit rows. Sessions are
// insert-only; there is no update or delete path.
type MarkingSessionRepository struct {
	db *sqlx.DB
}

// NewMarkingSessionRepository creates a new marking session repository.
func NewMarkingSessionRepository(db *sqlx.DB) *MarkingSessionRepository {
	return &MarkingSessionRepository{db: db}
}

// Append writes one audit row.
func (r *MarkingSessionRepository) Append(ctx context.Context, session *models.BulkMarkingSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO bulk_marking_sessions
        (id, schedule_id, marked_by, total_students, students_marked, students_absent, created_at)
        VALUES (:id, :schedule_id, :marked_by, :total_students, :students_marked, :students_absent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("append marking session: %w", err)
	}
	return nil
}

// ListBySchedule returns the audit trail for one schedule, newest first.
func (r *MarkingSessionRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.BulkMarkingSession, error) {
	const query = `SELECT id, schedule_id, marked_by, total_students, students_marked, students_absent, created_at
        FROM bulk_marking_sessions WHERE schedule_id = $1 ORDER BY created_at DESC`
	var sessions []models.BulkMarkingSession
	if err := r.db.SelectContext(ctx, &sessions, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list marking sessions: %w", err)
	}
	return sessions, nil
}
