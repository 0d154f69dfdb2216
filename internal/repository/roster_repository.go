package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/classhub-id/academic-eval-api/internal/models"
)

// RosterRepository manages class subject rosters.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository creates a new roster repository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Get returns the roster configured for a class number. Missing rosters
// surface as sql.ErrNoRows.
func (r *RosterRepository) Get(ctx context.Context, classNumber int) (*models.ClassRoster, error) {
	const query = `SELECT id, class_number, subjects, created_at, updated_at
        FROM class_rosters WHERE class_number = $1`
	var roster models.ClassRoster
	if err := r.db.GetContext(ctx, &roster, query, classNumber); err != nil {
		return nil, err
	}
	return &roster, nil
}

// List returns all configured rosters ordered by class number.
func (r *RosterRepository) List(ctx context.Context) ([]models.ClassRoster, error) {
	const query = `SELECT id, class_number, subjects, created_at, updated_at
        FROM class_rosters ORDER BY class_number ASC`
	var rosters []models.ClassRoster
	if err := r.db.SelectContext(ctx, &rosters, query); err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}
	return rosters, nil
}

// Upsert inserts or replaces the roster for a class number.
func (r *RosterRepository) Upsert(ctx context.Context, roster *models.ClassRoster) error {
	if roster.ID == "" {
		roster.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if roster.CreatedAt.IsZero() {
		roster.CreatedAt = now
	}
	roster.UpdatedAt = now
	const query = `INSERT INTO class_rosters (id, class_number, subjects, created_at, updated_at)
        VALUES (:id, :class_number, :subjects, :created_at, :updated_at)
        ON CONFLICT (class_number)
        DO UPDATE SET subjects = EXCLUDED.subjects, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, roster); err != nil {
		return fmt.Errorf("upsert roster: %w", err)
	}
	return nil
}
