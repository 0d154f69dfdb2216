package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/classhub-id/academic-eval-api/internal/grading"
	"github.com/classhub-id/academic-eval-api/internal/models"
	"github.com/classhub-id/academic-eval-api/internal/repository"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
)

type scheduleReader interface {
	FindByID(ctx context.Context, id string) (*models.ExamSchedule, error)
}

type studentReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]models.Student, error)
}

type resultRepo interface {
	FindByID(ctx context.Context, id string) (*models.ExamResult, error)
	Upsert(ctx context.Context, result *models.ExamResult) error
	BulkUpsert(ctx context.Context, results []models.ExamResult) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ExamResult, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.ExamResult, error)
}

type sessionRepo interface {
	Append(ctx context.Context, session *models.BulkMarkingSession) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.BulkMarkingSession, error)
}

// MarkEntry is one student's mark within a bulk submission. Status "absent"
// overrides obtained marks entirely.
type MarkEntry struct {
	StudentID     string  `json:"student_id" validate:"required"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"gte=0"`
	Status        string  `json:"status" validate:"omitempty,oneof=absent"`
	Remarks       string  `json:"remarks"`
}

// BulkMarksRequest submits marks for one exam schedule.
type BulkMarksRequest struct {
	ScheduleID string      `json:"schedule_id" validate:"required"`
	Marks      []MarkEntry `json:"marks" validate:"required,min=1,dive"`
	MarkedBy   string      `json:"-"`
}

// BulkMarksResult summarises one committed batch.
type BulkMarksResult struct {
	TotalMarked int `json:"total_marked"`
	Present     int `json:"present"`
	Absent      int `json:"absent"`
}

// UpdateResultRequest patches a single result. Whatever fields arrive, every
// derived field is recomputed from scratch against the owning schedule.
type UpdateResultRequest struct {
	ObtainedMarks *float64 `json:"obtained_marks" validate:"omitempty,gte=0"`
	Status        *string  `json:"status" validate:"omitempty,oneof=absent present"`
	Remarks       *string  `json:"remarks"`
	MarkedBy      string   `json:"-"`
}

// MarkingService turns submitted marks into exam results: validation against
// the schedule's class, grade derivation via the grading package, idempotent
// upserts keyed on (schedule, student), and an audit session per bulk call.
type MarkingService struct {
	schedules scheduleReader
	students  studentReader
	results   resultRepo
	sessions  sessionRepo
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarkingService constructs MarkingService.
func NewMarkingService(schedules scheduleReader, students studentReader, results resultRepo, sessions sessionRepo, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *MarkingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkingService{
		schedules: schedules,
		students:  students,
		results:   results,
		sessions:  sessions,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// SubmitBulkMarks validates and applies a batch of marks for one schedule.
// The whole batch lands in one transaction or fails as a unit; the audit
// session is appended only after the batch is durable.
func (s *MarkingService) SubmitBulkMarks(ctx context.Context, req BulkMarksRequest) (*BulkMarksResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk marks payload")
	}

	seen := make(map[string]bool, len(req.Marks))
	for _, entry := range req.Marks {
		if seen[entry.StudentID] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate mark entry for student %s", entry.StudentID))
		}
		seen[entry.StudentID] = true
	}

	schedule, err := s.schedules.FindByID(ctx, req.ScheduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam schedule not found")
		}
		return nil, appErrors.Internal(err, "failed to load exam schedule")
	}

	ids := make([]string, 0, len(req.Marks))
	for _, entry := range req.Marks {
		ids = append(ids, entry.StudentID)
	}
	students, err := s.students.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load students")
	}
	if len(students) != len(ids) {
		missing := missingIDs(ids, students)
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("unknown students: %s", strings.Join(missing, ", ")))
	}
	var mismatched []string
	for _, student := range students {
		if student.ClassNumber != schedule.ClassNumber {
			mismatched = append(mismatched, student.ID)
		}
	}
	if len(mismatched) > 0 {
		sort.Strings(mismatched)
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("students not in class %d: %s", schedule.ClassNumber, strings.Join(mismatched, ", ")))
	}

	results := make([]models.ExamResult, 0, len(req.Marks))
	absent := 0
	for _, entry := range req.Marks {
		result, err := deriveResult(schedule, entry, req.MarkedBy)
		if err != nil {
			return nil, err
		}
		if result.Status == models.ResultStatusAbsent {
			absent++
		}
		results = append(results, result)
	}

	if err := s.results.BulkUpsert(ctx, results); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "concurrent marking conflict")
		}
		return nil, appErrors.Internal(err, "failed to write result batch")
	}

	session := &models.BulkMarkingSession{
		ScheduleID:     schedule.ID,
		MarkedBy:       req.MarkedBy,
		TotalStudents:  len(req.Marks),
		StudentsMarked: len(req.Marks) - absent,
		StudentsAbsent: absent,
	}
	if err := s.sessions.Append(ctx, session); err != nil {
		return nil, appErrors.Internal(err, "result batch committed but audit session failed")
	}

	if s.metrics != nil {
		s.metrics.ObserveMarkingBatch(len(req.Marks)-absent, absent)
	}
	s.invalidateSummaries(ctx, schedule)
	s.logger.Info("bulk marks committed",
		zap.String("schedule_id", schedule.ID),
		zap.Int("total", len(req.Marks)),
		zap.Int("absent", absent),
	)

	return &BulkMarksResult{TotalMarked: len(req.Marks), Present: len(req.Marks) - absent, Absent: absent}, nil
}

// UpdateResult re-marks a single stored result. Derived fields are always
// recomputed in full from the owning schedule; there is no partial merge.
func (s *MarkingService) UpdateResult(ctx context.Context, resultID string, req UpdateResultRequest) (*models.ExamResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result payload")
	}
	existing, err := s.results.FindByID(ctx, resultID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam result not found")
		}
		return nil, appErrors.Internal(err, "failed to load exam result")
	}
	schedule, err := s.schedules.FindByID(ctx, existing.ScheduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam schedule not found")
		}
		return nil, appErrors.Internal(err, "failed to load exam schedule")
	}

	entry := MarkEntry{StudentID: existing.StudentID, ObtainedMarks: existing.ObtainedMarks, Remarks: existing.Remarks}
	if existing.Status == models.ResultStatusAbsent {
		entry.Status = "absent"
	}
	if req.Status != nil {
		if *req.Status == "absent" {
			entry.Status = "absent"
		} else {
			entry.Status = ""
		}
	}
	if req.ObtainedMarks != nil {
		entry.ObtainedMarks = *req.ObtainedMarks
	}
	if req.Remarks != nil {
		entry.Remarks = *req.Remarks
	}

	updated, err := deriveResult(schedule, entry, req.MarkedBy)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.results.Upsert(ctx, &updated); err != nil {
		return nil, appErrors.Internal(err, "failed to update result")
	}
	s.invalidateSummaries(ctx, schedule)
	return &updated, nil
}

// ResultsBySchedule lists stored results for one schedule.
func (s *MarkingService) ResultsBySchedule(ctx context.Context, scheduleID string) ([]models.ExamResult, error) {
	if _, err := s.schedules.FindByID(ctx, scheduleID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam schedule not found")
		}
		return nil, appErrors.Internal(err, "failed to load exam schedule")
	}
	results, err := s.results.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list results")
	}
	return results, nil
}

// ResultsByStudent lists stored results for one student.
func (s *MarkingService) ResultsByStudent(ctx context.Context, studentID string) ([]models.ExamResult, error) {
	results, err := s.results.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list results")
	}
	return results, nil
}

// MarkingSessions returns the audit trail for one schedule.
func (s *MarkingService) MarkingSessions(ctx context.Context, scheduleID string) ([]models.BulkMarkingSession, error) {
	sessions, err := s.sessions.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list marking sessions")
	}
	return sessions, nil
}

func (s *MarkingService) invalidateSummaries(ctx context.Context, schedule *models.ExamSchedule) {
	if s.cache == nil {
		return
	}
	pattern := fmt.Sprintf("summary:class:%d:exam:%s*", schedule.ClassNumber, schedule.ExaminationID)
	_ = s.cache.Invalidate(ctx, pattern)
}

// deriveResult computes every stored field of one result from a mark entry
// and its schedule. Absent entries are forced to zero marks and grade F.
func deriveResult(schedule *models.ExamSchedule, entry MarkEntry, markedBy string) (models.ExamResult, error) {
	result := models.ExamResult{
		ScheduleID: schedule.ID,
		StudentID:  entry.StudentID,
		TotalMarks: schedule.TotalMarks,
		MarkedBy:   markedBy,
		Remarks:    entry.Remarks,
	}
	if entry.Status == "absent" {
		result.ObtainedMarks = 0
		result.Percentage = 0
		result.Grade = grading.GradeF
		result.Status = models.ResultStatusAbsent
		return result, nil
	}
	if entry.ObtainedMarks < 0 || entry.ObtainedMarks > schedule.TotalMarks {
		return models.ExamResult{}, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("obtained marks %.2f out of range for student %s (total %.2f)", entry.ObtainedMarks, entry.StudentID, schedule.TotalMarks))
	}
	pct := grading.Percentage(entry.ObtainedMarks, schedule.TotalMarks)
	result.ObtainedMarks = entry.ObtainedMarks
	result.Percentage = models.Percentage(pct)
	result.Grade = grading.Letter(pct)
	if entry.ObtainedMarks >= schedule.PassingMarks {
		result.Status = models.ResultStatusPass
	} else {
		result.Status = models.ResultStatusFail
	}
	return result, nil
}

func missingIDs(requested []string, found []models.Student) []string {
	present := make(map[string]bool, len(found))
	for _, student := range found {
		present[student.ID] = true
	}
	var missing []string
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}
