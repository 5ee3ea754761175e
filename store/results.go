// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-group/models"
)

var ErrUnsuccessfulResult = errors.New("cannot persist an unsuccessful allocation")

// SaveAllocation records run and replaces the cohort's memberships with the
// result's groups. All or nothing.
func (s *Store) SaveAllocation(ctx context.Context, run models.AllocationRun, result models.AlgorithmResult) error {
	if !result.Success {
		return ErrUnsuccessfulResult
	}

	stats, err := json.Marshal(result.Stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO allocation_run (id, cohort_id, seed, stats, computed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.CohortID, run.Seed, string(stats), run.ComputedAt)
	if err != nil {
		return fmt.Errorf("failed to insert allocation run: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_member WHERE cohort_id = $1`, run.CohortID); err != nil {
		return fmt.Errorf("failed to clear previous groups: %w", err)
	}

	for _, g := range result.Groups {
		for i, m := range g.Members {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO group_member (cohort_id, run_id, resource_id, participant_id, pref_rank, position)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, run.CohortID, run.ID, g.ResourceID, m.ParticipantID, m.Rank, i)
			if err != nil {
				return fmt.Errorf("failed to insert group member: %w", err)
			}
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE cohort SET status = $1, latest_run_id = $2 WHERE id = $3
	`, models.StatusAllocated, run.ID, run.CohortID)
	if err != nil {
		return fmt.Errorf("failed to update cohort: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit allocation: %w", err)
	}
	return nil
}

// LatestAllocation returns the cohort's latest run and its non-empty groups
// in catalog order. ErrNotFound if no allocation has been saved.
func (s *Store) LatestAllocation(ctx context.Context, cohortID string) (models.AllocationRun, []models.Group, error) {
	var runID sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT latest_run_id FROM cohort WHERE id = $1`, cohortID).Scan(&runID)
	if err == sql.ErrNoRows || (err == nil && !runID.Valid) {
		return models.AllocationRun{}, nil, ErrNotFound
	}
	if err != nil {
		return models.AllocationRun{}, nil, fmt.Errorf("failed to query cohort: %w", err)
	}

	run := models.AllocationRun{ID: runID.String, CohortID: cohortID}
	var stats string
	err = s.db.QueryRowContext(ctx, `
		SELECT seed, stats, computed_at FROM allocation_run WHERE id = $1
	`, run.ID).Scan(&run.Seed, &stats, &run.ComputedAt)
	if err != nil {
		return models.AllocationRun{}, nil, fmt.Errorf("failed to query allocation run: %w", err)
	}
	if err := json.Unmarshal([]byte(stats), &run.Stats); err != nil {
		return models.AllocationRun{}, nil, fmt.Errorf("failed to parse run stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.title, p.id, p.name, gm.pref_rank
		FROM group_member gm
		JOIN resource r ON r.id = gm.resource_id
		JOIN participant p ON p.id = gm.participant_id
		WHERE gm.run_id = $1
		ORDER BY r.position, r.id, gm.position
	`, run.ID)
	if err != nil {
		return models.AllocationRun{}, nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var resourceID, resourceTitle string
		var m models.GroupMember
		if err := rows.Scan(&resourceID, &resourceTitle, &m.ParticipantID, &m.ParticipantName, &m.Rank); err != nil {
			return models.AllocationRun{}, nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		if n := len(groups); n == 0 || groups[n-1].ResourceID != resourceID {
			groups = append(groups, models.Group{ResourceID: resourceID, ResourceTitle: resourceTitle})
		}
		last := &groups[len(groups)-1]
		last.Members = append(last.Members, m)
	}
	if err := rows.Err(); err != nil {
		return models.AllocationRun{}, nil, err
	}

	return run, groups, nil
}
