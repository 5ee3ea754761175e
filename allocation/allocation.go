// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import "github.com/danielhkuo/quickly-group/models"

// Options configures a single Allocate call
type Options struct {
	// TieBreaker orders candidates of equal rank. Nil draws a fresh random seed.
	TieBreaker TieBreaker
}

// Allocate assigns participants to resources from their preference lists.
//
// It returns Success=false only when no participant listed any preference.
// Running out of capacity is not a failure: affected participants are
// counted as unassigned. Inputs are never modified.
func Allocate(participants []models.Participant, resources []models.Resource, opts Options) models.AlgorithmResult {
	listed := listedParticipants(participants)
	if len(listed) == 0 {
		return models.AlgorithmResult{
			Success:     false,
			Error:       MsgNoPreferences,
			Assignments: []models.Assignment{},
			Groups:      []models.Group{},
		}
	}

	tb := opts.TieBreaker
	if tb == nil {
		tb = NewSeededTieBreaker(NewSeed())
	}

	tracker := newCapacityTracker(resources)
	tuples := generateTuples(participants, listed, tracker, tb)
	assignments := assign(tuples, participants, tracker)

	return models.AlgorithmResult{
		Success:     true,
		Assignments: assignments,
		Groups:      buildGroups(tracker),
		Stats:       computeStatistics(len(participants), len(listed), assignments),
	}
}
