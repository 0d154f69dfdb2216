package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classhub-id/academic-eval-api/internal/models"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
)

type mockRosterReader struct {
	rosters map[int]models.ClassRoster
}

func (m *mockRosterReader) Get(ctx context.Context, classNumber int) (*models.ClassRoster, error) {
	roster, ok := m.rosters[classNumber]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &roster, nil
}

type mockYearlyGradeRepo struct {
	rows map[string]models.StudentYearlyGrade
}

func (m *mockYearlyGradeRepo) key(studentID string, classNumber, year int) string {
	return fmt.Sprintf("%s|%d|%d", studentID, classNumber, year)
}

func (m *mockYearlyGradeRepo) Upsert(ctx context.Context, grade *models.StudentYearlyGrade) error {
	if m.rows == nil {
		m.rows = make(map[string]models.StudentYearlyGrade)
	}
	m.rows[m.key(grade.StudentID, grade.ClassNumber, grade.Year)] = *grade
	return nil
}

func (m *mockYearlyGradeRepo) ListByStudent(ctx context.Context, filter models.YearlyGradeFilter) ([]models.StudentYearlyGrade, error) {
	var rows []models.StudentYearlyGrade
	for _, row := range m.rows {
		if row.StudentID != filter.StudentID {
			continue
		}
		if filter.ClassNumber != 0 && row.ClassNumber != filter.ClassNumber {
			continue
		}
		if filter.Year != 0 && row.Year != filter.Year {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func newYearlyGradeFixture() (*YearlyGradeService, *mockYearlyGradeRepo) {
	rosters := &mockRosterReader{rosters: map[int]models.ClassRoster{
		5: {ClassNumber: 5, Subjects: pq.StringArray{"Math", "English"}},
	}}
	repo := &mockYearlyGradeRepo{}
	svc := NewYearlyGradeService(rosters, repo, nil, nil, nil)
	svc.WithClock(func() time.Time { return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC) })
	return svc, repo
}

func TestSubmitYearlyGradeRollup(t *testing.T) {
	svc, repo := newYearlyGradeFixture()

	rollup, err := svc.Submit(context.Background(), SubmitYearlyGradeRequest{
		StudentID:   "stu-1",
		ClassNumber: 5,
		Year:        2024,
		Subjects: []SubjectMarkInput{
			{SubjectID: "Math", ObtainedMarks: 95, TotalMarks: 100},
			{SubjectID: "English", ObtainedMarks: 88, TotalMarks: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 183.0, rollup.TotalObtained)
	assert.Equal(t, 200.0, rollup.TotalMarks)
	assert.Equal(t, "91.50", rollup.Percentage.String())
	assert.Equal(t, "A+", rollup.Grade)
	require.Len(t, repo.rows, 1)
}

func TestSubmitYearlyGradeDefaultsYearFromClock(t *testing.T) {
	svc, repo := newYearlyGradeFixture()

	_, err := svc.Submit(context.Background(), SubmitYearlyGradeRequest{
		StudentID:   "stu-1",
		ClassNumber: 5,
		Subjects:    []SubjectMarkInput{{SubjectID: "Math", ObtainedMarks: 50, TotalMarks: 100}},
	})
	require.NoError(t, err)
	for _, row := range repo.rows {
		assert.Equal(t, 2025, row.Year)
	}
}

func TestSubmitYearlyGradeReplacesExistingRow(t *testing.T) {
	svc, repo := newYearlyGradeFixture()

	submit := func(obtained float64) {
		_, err := svc.Submit(context.Background(), SubmitYearlyGradeRequest{
			StudentID:   "stu-1",
			ClassNumber: 5,
			Year:        2024,
			Subjects:    []SubjectMarkInput{{SubjectID: "Math", ObtainedMarks: obtained, TotalMarks: 100}},
		})
		require.NoError(t, err)
	}
	submit(40)
	submit(90)

	require.Len(t, repo.rows, 1)
	for _, row := range repo.rows {
		assert.Equal(t, 90.0, row.TotalObtained)
		assert.Equal(t, "A+", row.Grade)
	}
}

func TestSubmitYearlyGradeRejectsSubjectsOutsideRoster(t *testing.T) {
	svc, repo := newYearlyGradeFixture()

	_, err := svc.Submit(context.Background(), SubmitYearlyGradeRequest{
		StudentID:   "stu-1",
		ClassNumber: 5,
		Subjects: []SubjectMarkInput{
			{SubjectID: "Math", ObtainedMarks: 90, TotalMarks: 100},
			{SubjectID: "Chemistry", ObtainedMarks: 80, TotalMarks: 100},
		},
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Chemistry")
	assert.Empty(t, repo.rows)
}

func TestSubmitYearlyGradeNoRosterForClass(t *testing.T) {
	svc, _ := newYearlyGradeFixture()

	_, err := svc.Submit(context.Background(), SubmitYearlyGradeRequest{
		StudentID:   "stu-1",
		ClassNumber: 12,
		Subjects:    []SubjectMarkInput{{SubjectID: "Math", ObtainedMarks: 90, TotalMarks: 100}},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubmitYearlyGradeRejectsDuplicateSubjects(t *testing.T) {
	svc, _ := newYearlyGradeFixture()

	_, err := svc.Submit(context.Background(), SubmitYearlyGradeRequest{
		StudentID:   "stu-1",
		ClassNumber: 5,
		Subjects: []SubjectMarkInput{
			{SubjectID: "Math", ObtainedMarks: 90, TotalMarks: 100},
			{SubjectID: "Math", ObtainedMarks: 80, TotalMarks: 100},
		},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGradesRecomputeFromRawMarks(t *testing.T) {
	svc, repo := newYearlyGradeFixture()

	raw, err := models.EncodeMarks([]models.SubjectMark{
		{SubjectID: "Math", ObtainedMarks: 95, TotalMarks: 100},
		{SubjectID: "English", ObtainedMarks: 88, TotalMarks: 100},
	})
	require.NoError(t, err)
	repo.rows = map[string]models.StudentYearlyGrade{
		"row": {
			StudentID:   "stu-1",
			ClassNumber: 5,
			Year:        2024,
			RawMarks:    raw,
			// Stored summary columns are deliberately wrong; reads must
			// recompute from the raw marks instead of trusting them.
			TotalObtained: 1,
			TotalMarks:    1,
			Percentage:    100,
			Grade:         "A+",
		},
	}

	views, err := svc.Grades(context.Background(), models.YearlyGradeFilter{StudentID: "stu-1"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 183.0, views[0].TotalObtained)
	assert.Equal(t, 200.0, views[0].TotalMarks)
	assert.Equal(t, "91.50", views[0].Percentage.String())
	assert.Equal(t, "A+", views[0].Grade)
}

func TestGradesMalformedRawMarks(t *testing.T) {
	svc, repo := newYearlyGradeFixture()
	repo.rows = map[string]models.StudentYearlyGrade{
		"row": {StudentID: "stu-1", ClassNumber: 5, Year: 2024, RawMarks: []byte("{not json")},
	}

	_, err := svc.Grades(context.Background(), models.YearlyGradeFilter{StudentID: "stu-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestGradesRequireStudentID(t *testing.T) {
	svc, _ := newYearlyGradeFixture()

	_, err := svc.Grades(context.Background(), models.YearlyGradeFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGradesEmptyListIsNotAnError(t *testing.T) {
	svc, _ := newYearlyGradeFixture()

	views, err := svc.Grades(context.Background(), models.YearlyGradeFilter{StudentID: "stu-9"})
	require.NoError(t, err)
	assert.Empty(t, views)
}
