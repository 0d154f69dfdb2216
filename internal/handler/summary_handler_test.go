package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	internalmiddleware "github.com/classhub-id/academic-eval-api/internal/middleware"
	"github.com/classhub-id/academic-eval-api/internal/models"
	"github.com/classhub-id/academic-eval-api/internal/service"
)

type fakeYearlyGradeRepo struct {
	rows []models.StudentYearlyGrade
}

func (f *fakeYearlyGradeRepo) Upsert(ctx context.Context, grade *models.StudentYearlyGrade) error {
	f.rows = append(f.rows, *grade)
	return nil
}

func (f *fakeYearlyGradeRepo) ListByStudent(ctx context.Context, filter models.YearlyGradeFilter) ([]models.StudentYearlyGrade, error) {
	var rows []models.StudentYearlyGrade
	for _, row := range f.rows {
		if row.StudentID == filter.StudentID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

type fakeClassResultReader struct {
	rows []models.ClassExamResultRow
}

func (f *fakeClassResultReader) ListByClassAndExam(ctx context.Context, classNumber int, examinationID string) ([]models.ClassExamResultRow, error) {
	return f.rows, nil
}

func buildSummaryRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := models.EncodeMarks([]models.SubjectMark{
		{SubjectID: "Math", ObtainedMarks: 95, TotalMarks: 100},
		{SubjectID: "English", ObtainedMarks: 88, TotalMarks: 100},
	})
	require.NoError(t, err)
	grades := &fakeYearlyGradeRepo{rows: []models.StudentYearlyGrade{
		{StudentID: "stu-1", ClassNumber: 5, Year: 2024, RawMarks: raw},
	}}
	results := &fakeClassResultReader{rows: []models.ClassExamResultRow{
		{ExamResult: models.ExamResult{StudentID: "stu-1", ObtainedMarks: 90, TotalMarks: 100, Status: models.ResultStatusPass}, SubjectID: "MATH"},
		{ExamResult: models.ExamResult{StudentID: "stu-2", ObtainedMarks: 30, TotalMarks: 100, Status: models.ResultStatusFail}, SubjectID: "MATH"},
	}}

	summaries := service.NewSummaryService(grades, results, nil, nil)
	exports := service.NewExportService(summaries)
	h := NewSummaryHandler(summaries, exports)

	router := gin.New()
	router.Use(internalmiddleware.WithResponseMeta())
	router.GET("/students/:id/summary", h.StudentLifetime)
	router.GET("/classes/:classNumber/examinations/:examId/summary", h.ClassExam)
	router.GET("/classes/:classNumber/examinations/:examId/summary/export", h.Export)
	return router
}

func TestSummaryRoutes(t *testing.T) {
	router := buildSummaryRouter(t)

	t.Run("student lifetime", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/students/stu-1/summary", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"percentage":"91.50"`)
		require.Contains(t, resp.Body.String(), `"grade":"A+"`)
		require.Contains(t, resp.Body.String(), `"cache_hit":false`)
	})

	t.Run("student lifetime not found", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/students/stu-9/summary", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("class exam summary", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/classes/8/examinations/exam-1/summary", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Contains(t, resp.Body.String(), `"subject_id":"MATH"`)
		require.Contains(t, resp.Body.String(), `"average_percentage":"60.00"`)
	})

	t.Run("class exam bad class number", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/classes/eight/examinations/exam-1/summary", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("export csv", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/classes/8/examinations/exam-1/summary/export?format=csv", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
		require.Equal(t, "text/csv", resp.Header().Get("Content-Type"))
		require.Contains(t, resp.Header().Get("Content-Disposition"), "class-8-exam-exam-1-summary.csv")
		require.Contains(t, resp.Body.String(), "MATH")
	})

	t.Run("export unknown format", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/classes/8/examinations/exam-1/summary/export?format=xlsx", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
