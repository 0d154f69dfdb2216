package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/classhub-id/academic-eval-api/internal/models"
	appErrors "github.com/classhub-id/academic-eval-api/pkg/errors"
)

type rosterRepo interface {
	Get(ctx context.Context, classNumber int) (*models.ClassRoster, error)
	List(ctx context.Context) ([]models.ClassRoster, error)
	Upsert(ctx context.Context, roster *models.ClassRoster) error
}

// UpdateRosterRequest replaces the subject set for one class.
type UpdateRosterRequest struct {
	Subjects []string `json:"subjects" validate:"required,min=1,dive,required"`
}

// RosterService exposes the administrative roster operations. Rosters are
// only ever changed here; grade submission reads them and never writes.
type RosterService struct {
	rosters   rosterRepo
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs RosterService.
func NewRosterService(rosters rosterRepo, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{rosters: rosters, validator: validate, logger: logger}
}

// Get returns one class roster.
func (s *RosterService) Get(ctx context.Context, classNumber int) (*models.ClassRoster, error) {
	roster, err := s.rosters.Get(ctx, classNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no subject roster configured for class %d", classNumber))
		}
		return nil, appErrors.Internal(err, "failed to load class roster")
	}
	return roster, nil
}

// List returns all rosters.
func (s *RosterService) List(ctx context.Context) ([]models.ClassRoster, error) {
	rosters, err := s.rosters.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list rosters")
	}
	return rosters, nil
}

// Update replaces the roster for one class. Subject identifiers must be
// unique within a roster.
func (s *RosterService) Update(ctx context.Context, classNumber int, req UpdateRosterRequest) (*models.ClassRoster, error) {
	if classNumber <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class number must be positive")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid roster payload")
	}
	seen := make(map[string]bool, len(req.Subjects))
	for _, subject := range req.Subjects {
		if seen[subject] {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate subject %s in roster", subject))
		}
		seen[subject] = true
	}
	roster := &models.ClassRoster{ClassNumber: classNumber, Subjects: pq.StringArray(req.Subjects)}
	if err := s.rosters.Upsert(ctx, roster); err != nil {
		return nil, appErrors.Internal(err, "failed to store roster")
	}
	s.logger.Info("class roster updated", zap.Int("class_number", classNumber), zap.Int("subjects", len(req.Subjects)))
	return roster, nil
}
