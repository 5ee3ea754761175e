// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"cmp"
	"slices"

	"github.com/danielhkuo/quickly-group/models"
)

// assign sorts candidates by tie-break key and commits each one whose
// participant is still free and whose resource still has room. Single
// forward pass: nothing committed is revisited, and a participant who loses
// every listed resource stays unassigned.
func assign(tuples []models.PreferenceTuple, participants []models.Participant, tracker *capacityTracker) []models.Assignment {
	// Stable so equal keys keep generation order
	slices.SortStableFunc(tuples, func(a, b models.PreferenceTuple) int {
		return cmp.Compare(a.TieBreakKey, b.TieBreakKey)
	})

	assigned := make(map[int]bool)
	assignments := []models.Assignment{}

	for _, t := range tuples {
		if assigned[t.ParticipantIndex] {
			continue
		}
		if !tracker.hasRoom(t.ResourceIndex) {
			continue
		}

		p := participants[t.ParticipantIndex]
		r := tracker.slots[t.ResourceIndex].resource

		assignments = append(assignments, models.Assignment{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			ResourceID:      r.ID,
			ResourceTitle:   r.Title,
			Rank:            t.Rank,
		})
		assigned[t.ParticipantIndex] = true
		tracker.commit(t.ResourceIndex, p, t.Rank)
	}

	return assignments
}
