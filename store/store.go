// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickly-group/models"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrNameTaken           = errors.New("name already taken in cohort")
	ErrTooManyPreferences  = errors.New("too many preferences")
	ErrDuplicatePreference = errors.New("duplicate preference")
	ErrUnknownResource     = errors.New("unknown resource")
	ErrInvalidCapacity     = errors.New("capacity must be positive")
)

// Store persists cohorts, their snapshots, and allocation results
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// CreateCohort inserts a cohort. ID, ShareSlug and MaxPreferences must be set.
func (s *Store) CreateCohort(ctx context.Context, c models.Cohort) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cohort (id, title, description, status, share_slug, max_preferences, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.Title, c.Description, c.Status, c.ShareSlug, c.MaxPreferences, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert cohort: %w", err)
	}
	return nil
}

const cohortColumns = `id, title, description, status, share_slug, max_preferences, created_at`

func scanCohort(row *sql.Row) (models.Cohort, error) {
	var c models.Cohort
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Status, &c.ShareSlug, &c.MaxPreferences, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Cohort{}, ErrNotFound
	}
	if err != nil {
		return models.Cohort{}, fmt.Errorf("failed to scan cohort: %w", err)
	}
	return c, nil
}

func (s *Store) CohortByID(ctx context.Context, id string) (models.Cohort, error) {
	return scanCohort(s.db.QueryRowContext(ctx, `SELECT `+cohortColumns+` FROM cohort WHERE id = $1`, id))
}

func (s *Store) CohortBySlug(ctx context.Context, slug string) (models.Cohort, error) {
	return scanCohort(s.db.QueryRowContext(ctx, `SELECT `+cohortColumns+` FROM cohort WHERE share_slug = $1`, slug))
}

// AddResource appends a resource to the cohort's catalog. Capacity 0 becomes
// the default; negative capacity is rejected.
func (s *Store) AddResource(ctx context.Context, cohortID, title string, capacity int) (models.Resource, error) {
	if capacity < 0 {
		return models.Resource{}, ErrInvalidCapacity
	}
	r := models.Resource{ID: uuid.NewString(), Title: title, Capacity: capacity}
	r.Capacity = r.EffectiveCapacity()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM resource WHERE cohort_id = $1`, cohortID).Scan(&position)
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to count resources: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO resource (id, cohort_id, title, capacity, position)
		VALUES ($1, $2, $3, $4, $5)
	`, r.ID, cohortID, r.Title, r.Capacity, position)
	if err != nil {
		return models.Resource{}, fmt.Errorf("failed to insert resource: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Resource{}, fmt.Errorf("failed to commit resource: %w", err)
	}
	return r, nil
}

// Resources lists the cohort's resources in catalog order
func (s *Store) Resources(ctx context.Context, cohortID string) ([]models.Resource, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, capacity FROM resource
		WHERE cohort_id = $1
		ORDER BY position, id
	`, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var r models.Resource
		if err := rows.Scan(&r.ID, &r.Title, &r.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, r)
	}
	return resources, rows.Err()
}

// AddParticipant registers a named participant with an access token
func (s *Store) AddParticipant(ctx context.Context, cohortID, name, token string) (models.Participant, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var taken bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM participant WHERE cohort_id = $1 AND name = $2)
	`, cohortID, name).Scan(&taken)
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to check participant name: %w", err)
	}
	if taken {
		return models.Participant{}, ErrNameTaken
	}

	var position int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM participant WHERE cohort_id = $1`, cohortID).Scan(&position)
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to count participants: %w", err)
	}

	p := models.Participant{ID: uuid.NewString(), Name: name, Preferences: []string{}}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO participant (id, cohort_id, name, token, position, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, cohortID, name, token, position, time.Now().UTC())
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to insert participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Participant{}, fmt.Errorf("failed to commit participant: %w", err)
	}
	return p, nil
}

// ParticipantByToken resolves an access token within a cohort
func (s *Store) ParticipantByToken(ctx context.Context, cohortID, token string) (models.Participant, error) {
	var p models.Participant
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name FROM participant WHERE cohort_id = $1 AND token = $2
	`, cohortID, token).Scan(&p.ID, &p.Name)
	if err == sql.ErrNoRows {
		return models.Participant{}, ErrNotFound
	}
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to query participant: %w", err)
	}
	return p, nil
}
