// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickly-group/models"
)

// ReplacePreferences swaps a participant's active list for prefs. The list is
// capped at maxPreferences, may not repeat a resource, and may only name
// resources of the cohort. An empty list withdraws the participant.
func (s *Store) ReplacePreferences(ctx context.Context, cohortID, participantID string, prefs []string, maxPreferences int) error {
	if len(prefs) > maxPreferences {
		return fmt.Errorf("%w: %d listed, at most %d allowed", ErrTooManyPreferences, len(prefs), maxPreferences)
	}
	seen := make(map[string]bool, len(prefs))
	for _, id := range prefs {
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicatePreference, id)
		}
		seen[id] = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, id := range prefs {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM resource WHERE id = $1 AND cohort_id = $2)
		`, id, cohortID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check resource: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", ErrUnknownResource, id)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM preference WHERE participant_id = $1`, participantID); err != nil {
		return fmt.Errorf("failed to delete old preferences: %w", err)
	}

	for i, id := range prefs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO preference (participant_id, resource_id, pref_rank)
			VALUES ($1, $2, $3)
		`, participantID, id, i+1)
		if err != nil {
			return fmt.Errorf("failed to insert preference: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}

// Snapshot loads the cohort's participants (join order, preferences by rank)
// and resources (catalog order) for one allocation run
func (s *Store) Snapshot(ctx context.Context, cohortID string) ([]models.Participant, []models.Resource, error) {
	resources, err := s.Resources(ctx, cohortID)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, pr.resource_id
		FROM participant p
		LEFT JOIN preference pr ON pr.participant_id = p.id
		WHERE p.cohort_id = $1
		ORDER BY p.position, p.id, pr.pref_rank
	`, cohortID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var id, name string
		var resourceID sql.NullString
		if err := rows.Scan(&id, &name, &resourceID); err != nil {
			return nil, nil, fmt.Errorf("failed to scan participant: %w", err)
		}

		if n := len(participants); n == 0 || participants[n-1].ID != id {
			participants = append(participants, models.Participant{ID: id, Name: name, Preferences: []string{}})
		}
		if resourceID.Valid {
			last := &participants[len(participants)-1]
			last.Preferences = append(last.Preferences, resourceID.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return participants, resources, nil
}
