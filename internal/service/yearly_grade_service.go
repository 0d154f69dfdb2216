package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classhub-id/academic-eval-api/internal/grading"
	"github.com/classhub-id/academic-eval-api/internal/models"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
)

type rosterReader interface {
	Get(ctx context.Context, classNumber int) (*models.ClassRoster, error)
}

type yearlyGradeRepo interface {
	Upsert(ctx context.Context, grade *models.StudentYearlyGrade) error
	ListByStudent(ctx context.Context, filter models.YearlyGradeFilter) ([]models.StudentYearlyGrade, error)
}

// SubjectMarkInput is one submitted subject score.
type SubjectMarkInput struct {
	SubjectID     string  `json:"subject_id" validate:"required"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"gte=0,ltefield=TotalMarks"`
	TotalMarks    float64 `json:"total_marks" validate:"gt=0"`
}

// SubmitYearlyGradeRequest submits a student's subject marks for one class
// year. Year zero defaults to the current year.
type SubmitYearlyGradeRequest struct {
	StudentID   string             `json:"student_id" validate:"required"`
	ClassNumber int                `json:"class_number" validate:"required,gt=0"`
	Year        int                `json:"year" validate:"omitempty,gte=1900"`
	Subjects    []SubjectMarkInput `json:"subjects" validate:"required,min=1,dive"`
}

// YearlyGradeView is a yearly grade with its rollup recomputed from the raw
// marks at read time.
type YearlyGradeView struct {
	StudentID     string               `json:"student_id"`
	ClassNumber   int                  `json:"class_number"`
	Year          int                  `json:"year"`
	Subjects      []models.SubjectMark `json:"subjects"`
	TotalObtained float64              `json:"total_obtained"`
	TotalMarks    float64              `json:"total_marks"`
	Percentage    models.Percentage    `json:"percentage"`
	Grade         string               `json:"grade"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// YearlyGradeService owns the yearly grade entry path (roster validation,
// rollup, full-row replacement) and the read path that recomputes every
// rollup from raw marks before returning it.
type YearlyGradeService struct {
	rosters   rosterReader
	grades    yearlyGradeRepo
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewYearlyGradeService constructs YearlyGradeService.
func NewYearlyGradeService(rosters rosterReader, grades yearlyGradeRepo, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *YearlyGradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YearlyGradeService{
		rosters:   rosters,
		grades:    grades,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the service clock, used by tests to pin the default year.
func (s *YearlyGradeService) WithClock(now func() time.Time) *YearlyGradeService {
	s.now = now
	return s
}

// ComputeRollup derives the summary for a set of subject marks. Percentage
// is computed from the summed obtained over summed total, not from averaged
// per-subject percentages.
func ComputeRollup(marks []models.SubjectMark) models.GradeRollup {
	var obtained, total float64
	for _, mark := range marks {
		obtained += mark.ObtainedMarks
		total += mark.TotalMarks
	}
	pct := grading.Percentage(obtained, total)
	return models.GradeRollup{
		TotalObtained: obtained,
		TotalMarks:    total,
		Percentage:    models.Percentage(pct),
		Grade:         grading.Letter(pct),
	}
}

// Submit validates marks against the class roster, computes the rollup and
// replaces the (student, class, year) row in full.
func (s *YearlyGradeService) Submit(ctx context.Context, req SubmitYearlyGradeRequest) (*models.GradeRollup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid yearly grade payload")
	}
	seen := make(map[string]bool, len(req.Subjects))
	for _, subject := range req.Subjects {
		if seen[subject.SubjectID] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate subject %s in submission", subject.SubjectID))
		}
		seen[subject.SubjectID] = true
	}

	marks, err := s.validateAgainstRoster(ctx, req.ClassNumber, req.Subjects)
	if err != nil {
		return nil, err
	}

	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}

	rollup := ComputeRollup(marks)
	raw, err := models.EncodeMarks(marks)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to encode subject marks")
	}
	row := &models.StudentYearlyGrade{
		StudentID:     req.StudentID,
		ClassNumber:   req.ClassNumber,
		Year:          year,
		RawMarks:      raw,
		TotalObtained: rollup.TotalObtained,
		TotalMarks:    rollup.TotalMarks,
		Percentage:    rollup.Percentage,
		Grade:         rollup.Grade,
	}
	if err := s.grades.Upsert(ctx, row); err != nil {
		return nil, appErrors.Internal(err, "failed to store yearly grade")
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, fmt.Sprintf("summary:student:%s*", req.StudentID))
	}
	s.logger.Info("yearly grade stored",
		zap.String("student_id", req.StudentID),
		zap.Int("class_number", req.ClassNumber),
		zap.Int("year", year),
	)
	return &rollup, nil
}

// Grades returns a student's yearly grades, each recomputed from its raw
// marks. The stored summary columns are never returned as-is.
func (s *YearlyGradeService) Grades(ctx context.Context, filter models.YearlyGradeFilter) ([]YearlyGradeView, error) {
	if filter.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id required")
	}
	rows, err := s.grades.ListByStudent(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list yearly grades")
	}
	views := make([]YearlyGradeView, 0, len(rows))
	for i := range rows {
		view, err := recomputeView(&rows[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *YearlyGradeService) validateAgainstRoster(ctx context.Context, classNumber int, subjects []SubjectMarkInput) ([]models.SubjectMark, error) {
	roster, err := s.rosters.Get(ctx, classNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no subject roster configured for class %d", classNumber))
		}
		return nil, appErrors.Internal(err, "failed to load class roster")
	}
	var unknown []string
	marks := make([]models.SubjectMark, 0, len(subjects))
	for _, subject := range subjects {
		if !roster.HasSubject(subject.SubjectID) {
			unknown = append(unknown, subject.SubjectID)
			continue
		}
		marks = append(marks, models.SubjectMark{
			SubjectID:     subject.SubjectID,
			ObtainedMarks: subject.ObtainedMarks,
			TotalMarks:    subject.TotalMarks,
		})
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("subjects not in class %d roster: %s", classNumber, strings.Join(unknown, ", ")))
	}
	return marks, nil
}

// recomputeView decodes the stored raw marks and rebuilds the rollup.
// Malformed stored data is an internal error, never masked by the stored
// summary columns.
func recomputeView(row *models.StudentYearlyGrade) (*YearlyGradeView, error) {
	marks, err := row.DecodeMarks()
	if err != nil {
		return nil, appErrors.Internal(err, "stored subject marks are malformed")
	}
	rollup := ComputeRollup(marks)
	return &YearlyGradeView{
		StudentID:     row.StudentID,
		ClassNumber:   row.ClassNumber,
		Year:          row.Year,
		Subjects:      marks,
		TotalObtained: rollup.TotalObtained,
		TotalMarks:    rollup.TotalMarks,
		Percentage:    rollup.Percentage,
		Grade:         rollup.Grade,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
