package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

func TestMarkingSessionRepositoryAppend(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMarkingSessionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bulk_marking_sessions")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.BulkMarkingSession{
		ScheduleID:     "sched-1",
		MarkedBy:       "teacher-1",
		TotalStudents:  30,
		StudentsMarked: 28,
		StudentsAbsent: 2,
	}
	require.NoError(t, repo.Append(context.Background(), session))
	require.NotEmpty(t, session.ID)
	require.False(t, session.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkingSessionRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewMarkingSessionRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "schedule_id", "marked_by", "total_students", "students_marked", "students_absent", "created_at"}).
		AddRow("sess-2", "sched-1", "teacher-1", 30, 30, 0, now).
		AddRow("sess-1", "sched-1", "teacher-1", 30, 28, 2, now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM bulk_marking_sessions WHERE schedule_id = $1 ORDER BY created_at DESC")).
		WithArgs("sched-1").
		WillReturnRows(rows)

	sessions, err := repo.ListBySchedule(context.Background(), "sched-1")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, "sess-2", sessions[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
