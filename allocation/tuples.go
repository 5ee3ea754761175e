// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import "github.com/danielhkuo/quickly-group/models"

// generateTuples expands each listed participant's preferences into
// candidates. Unknown resource ids are dropped without error, as are repeats
// of a resource the participant already listed. Rank is the position in the
// original list, so dropped entries still consume a rank.
func generateTuples(participants []models.Participant, listed []int, tracker *capacityTracker, tb TieBreaker) []models.PreferenceTuple {
	var tuples []models.PreferenceTuple

	for _, pi := range listed {
		seen := make(map[int]bool, len(participants[pi].Preferences))

		for i, resourceID := range participants[pi].Preferences {
			ri, ok := tracker.lookup(resourceID)
			if !ok || seen[ri] {
				continue
			}
			seen[ri] = true

			rank := i + 1
			tuples = append(tuples, models.PreferenceTuple{
				ParticipantIndex: pi,
				ResourceIndex:    ri,
				Rank:             rank,
				TieBreakKey:      tieBreakKey(rank, tb.Draw()),
			})
		}
	}

	return tuples
}

// listedParticipants returns the positions of participants with at least one preference
func listedParticipants(participants []models.Participant) []int {
	var listed []int
	for i, p := range participants {
		if len(p.Preferences) > 0 {
			listed = append(listed, i)
		}
	}
	return listed
}
