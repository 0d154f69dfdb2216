package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/classhub-id/academic-eval-api/internal/grading"
	"github.com/classhub-id/academic-eval-api/internal/models"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
)

type classResultReader interface {
	ListByClassAndExam(ctx context.Context, classNumber int, examinationID string) ([]models.ClassExamResultRow, error)
}

// ClassYearResult is one recomputed yearly rollup inside a lifetime summary.
type ClassYearResult struct {
	ClassNumber   int               `json:"class_number"`
	Year          int               `json:"year"`
	TotalObtained float64           `json:"total_obtained"`
	TotalMarks    float64           `json:"total_marks"`
	Percentage    models.Percentage `json:"percentage"`
	Grade         string            `json:"grade"`
}

// LifetimeSummary folds every yearly grade of a student into one figure.
// The lifetime percentage is summed obtained over summed total across all
// rows; a year with more possible marks weighs proportionally more.
type LifetimeSummary struct {
	StudentID    string             `json:"student_id"`
	ClassResults []ClassYearResult  `json:"class_results"`
	Lifetime     models.GradeRollup `json:"lifetime"`
}

// SubjectExamSummary aggregates one subject's results within an examination.
// AveragePercentage pools marks (sum/sum), it is not a mean of per-student
// percentages.
type SubjectExamSummary struct {
	SubjectID         string            `json:"subject_id"`
	TotalStudents     int               `json:"total_students"`
	Passed            int               `json:"passed"`
	Failed            int               `json:"failed"`
	Absent            int               `json:"absent"`
	TotalObtained     float64           `json:"total_obtained"`
	TotalMarks        float64           `json:"total_marks"`
	AveragePercentage models.Percentage `json:"average_percentage"`
}

// ClassExamOverall totals a class exam summary.
type ClassExamOverall struct {
	TotalStudents int `json:"total_students"`
	TotalSubjects int `json:"total_subjects"`
}

// ClassExamSummary is the per-class examination view grouped by subject.
type ClassExamSummary struct {
	ClassNumber   int                  `json:"class_number"`
	ExaminationID string               `json:"examination_id"`
	Subjects      []SubjectExamSummary `json:"subjects"`
	Overall       ClassExamOverall     `json:"overall"`
}

// SummaryService builds the two read-only report views. Both recompute from
// raw stored data on every call; redis only memoises the recomputed payloads
// and is purged on every write.
type SummaryService struct {
	grades  yearlyGradeRepo
	results classResultReader
	cache   *CacheService
	logger  *zap.Logger
}

// NewSummaryService constructs SummaryService.
func NewSummaryService(grades yearlyGradeRepo, results classResultReader, cache *CacheService, logger *zap.Logger) *SummaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryService{grades: grades, results: results, cache: cache, logger: logger}
}

// StudentLifetime returns a student's lifetime summary. It fails with
// NotFound when the student has no yearly grades, so callers can tell "no
// data yet" apart from a valid zero.
func (s *SummaryService) StudentLifetime(ctx context.Context, studentID string) (*LifetimeSummary, bool, error) {
	if studentID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	cacheKey := fmt.Sprintf("summary:student:%s", studentID)
	if s.cache.Enabled() {
		var cached LifetimeSummary
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, true, nil
		}
	}

	rows, err := s.grades.ListByStudent(ctx, models.YearlyGradeFilter{StudentID: studentID})
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to list yearly grades")
	}
	if len(rows) == 0 {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no yearly grades recorded for student %s", studentID))
	}

	summary := &LifetimeSummary{StudentID: studentID}
	var obtained, total float64
	for i := range rows {
		marks, err := rows[i].DecodeMarks()
		if err != nil {
			return nil, false, appErrors.Internal(err, "stored subject marks are malformed")
		}
		rollup := ComputeRollup(marks)
		summary.ClassResults = append(summary.ClassResults, ClassYearResult{
			ClassNumber:   rows[i].ClassNumber,
			Year:          rows[i].Year,
			TotalObtained: rollup.TotalObtained,
			TotalMarks:    rollup.TotalMarks,
			Percentage:    rollup.Percentage,
			Grade:         rollup.Grade,
		})
		obtained += rollup.TotalObtained
		total += rollup.TotalMarks
	}
	pct := grading.Percentage(obtained, total)
	summary.Lifetime = models.GradeRollup{
		TotalObtained: obtained,
		TotalMarks:    total,
		Percentage:    models.Percentage(pct),
		Grade:         grading.Letter(pct),
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, summary, 0)
	}
	return summary, false, nil
}

// ClassExam returns the per-subject summary for a class/examination pair.
// Fails with NotFound when no results exist for the pair.
func (s *SummaryService) ClassExam(ctx context.Context, classNumber int, examinationID string) (*ClassExamSummary, bool, error) {
	if classNumber <= 0 || examinationID == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "class number and examination id required")
	}
	cacheKey := fmt.Sprintf("summary:class:%d:exam:%s", classNumber, examinationID)
	if s.cache.Enabled() {
		var cached ClassExamSummary
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, true, nil
		}
	}

	rows, err := s.results.ListByClassAndExam(ctx, classNumber, examinationID)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to list exam results")
	}
	if len(rows) == 0 {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound,
			fmt.Sprintf("no results recorded for class %d in examination %s", classNumber, examinationID))
	}

	subjects := SummarizeSubjects(rows)
	students := make(map[string]bool, len(rows))
	for i := range rows {
		students[rows[i].StudentID] = true
	}
	summary := &ClassExamSummary{
		ClassNumber:   classNumber,
		ExaminationID: examinationID,
		Subjects:      subjects,
		Overall:       ClassExamOverall{TotalStudents: len(students), TotalSubjects: len(subjects)},
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, summary, 0)
	}
	return summary, false, nil
}

// SummarizeSubjects groups result rows by subject and pools their marks.
// The average is sum(obtained)/sum(total), never a mean of percentages.
func SummarizeSubjects(rows []models.ClassExamResultRow) []SubjectExamSummary {
	bySubject := make(map[string]*SubjectExamSummary)
	for i := range rows {
		row := &rows[i]
		entry, ok := bySubject[row.SubjectID]
		if !ok {
			entry = &SubjectExamSummary{SubjectID: row.SubjectID}
			bySubject[row.SubjectID] = entry
		}
		entry.TotalStudents++
		switch row.Status {
		case models.ResultStatusPass:
			entry.Passed++
		case models.ResultStatusAbsent:
			entry.Absent++
		default:
			entry.Failed++
		}
		entry.TotalObtained += row.ObtainedMarks
		entry.TotalMarks += row.TotalMarks
	}
	summaries := make([]SubjectExamSummary, 0, len(bySubject))
	for _, entry := range bySubject {
		entry.AveragePercentage = models.Percentage(grading.Percentage(entry.TotalObtained, entry.TotalMarks))
		summaries = append(summaries, *entry)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].SubjectID < summaries[j].SubjectID })
	return summaries
}
