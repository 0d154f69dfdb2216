package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

func TestRosterRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRosterRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "class_number", "subjects", "created_at", "updated_at"}).
		AddRow("roster-1", 5, []byte(`{Math,English}`), now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_rosters WHERE class_number = $1")).
		WithArgs(5).
		WillReturnRows(rows)

	roster, err := repo.Get(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, roster.HasSubject("Math"))
	require.False(t, roster.HasSubject("Chemistry"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryGetMissingRowsPassThrough(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRosterRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_rosters WHERE class_number = $1")).
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 9)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRosterRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO class_rosters")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	roster := &models.ClassRoster{ClassNumber: 5, Subjects: pq.StringArray{"Math", "English"}}
	require.NoError(t, repo.Upsert(context.Background(), roster))
	require.NotEmpty(t, roster.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
