package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestResultRepositoryUpsertAssignsIDAndTimestamps(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResultRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_results")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	result := &models.ExamResult{
		ScheduleID:    "sched-1",
		StudentID:     "stu-1",
		ObtainedMarks: 72,
		TotalMarks:    100,
		Percentage:    72,
		Grade:         "B+",
		Status:        models.ResultStatusPass,
	}
	require.NoError(t, repo.Upsert(context.Background(), result))
	require.NotEmpty(t, result.ID)
	require.False(t, result.CreatedAt.IsZero())
	require.False(t, result.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryBulkUpsertCommitsOneTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResultRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_results")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_results")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	results := []models.ExamResult{
		{ScheduleID: "sched-1", StudentID: "stu-1", ObtainedMarks: 50, TotalMarks: 100, Status: models.ResultStatusPass},
		{ScheduleID: "sched-1", StudentID: "stu-2", TotalMarks: 100, Status: models.ResultStatusAbsent, Grade: "F"},
	}
	require.NoError(t, repo.BulkUpsert(context.Background(), results))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryBulkUpsertRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResultRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_results")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_results")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	results := []models.ExamResult{
		{ScheduleID: "sched-1", StudentID: "stu-1", ObtainedMarks: 50, TotalMarks: 100},
		{ScheduleID: "sched-1", StudentID: "stu-2", ObtainedMarks: 60, TotalMarks: 100},
	}
	require.Error(t, repo.BulkUpsert(context.Background(), results))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryBulkUpsertEmptyBatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResultRepository(db)
	require.NoError(t, repo.BulkUpsert(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func resultColumns() []string {
	return []string{"id", "schedule_id", "student_id", "obtained_marks", "total_marks", "percentage", "grade", "status", "marked_by", "remarks", "created_at", "updated_at"}
}

func TestResultRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResultRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(resultColumns()).
		AddRow("res-1", "sched-1", "stu-1", 72.0, 100.0, 72.0, "B+", "pass", "teacher-1", "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, schedule_id, student_id")).
		WithArgs("res-1").
		WillReturnRows(rows)

	result, err := repo.FindByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.Equal(t, "res-1", result.ID)
	require.Equal(t, "72.00", result.Percentage.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepositoryListByClassAndExam(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewResultRepository(db)
	now := time.Now()
	columns := append(resultColumns(), "subject_id")
	rows := sqlmock.NewRows(columns).
		AddRow("res-1", "sched-1", "stu-1", 90.0, 100.0, 90.0, "A+", "pass", "teacher-1", "", now, now, "MATH").
		AddRow("res-2", "sched-1", "stu-2", 0.0, 100.0, 0.0, "F", "absent", "teacher-1", "", now, now, "MATH")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN exam_schedules es ON es.id = er.schedule_id")).
		WithArgs(8, "exam-1").
		WillReturnRows(rows)

	results, err := repo.ListByClassAndExam(context.Background(), 8, "exam-1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "MATH", results[0].SubjectID)
	require.Equal(t, models.ResultStatusAbsent, results[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
