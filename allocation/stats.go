// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"math"

	"github.com/danielhkuo/quickly-group/models"
)

// Satisfaction weights per rank bucket
const (
	WeightFirst  = 100
	WeightSecond = 66
	WeightThird  = 33
	WeightOther  = 10
)

// computeStatistics aggregates committed assignments
func computeStatistics(totalParticipants, withPreferences int, assignments []models.Assignment) models.Statistics {
	stats := models.Statistics{
		TotalParticipants:           totalParticipants,
		ParticipantsWithPreferences: withPreferences,
		Assigned:                    len(assignments),
		Unassigned:                  withPreferences - len(assignments),
	}

	for _, a := range assignments {
		switch a.Rank {
		case 1:
			stats.FirstChoice++
		case 2:
			stats.SecondChoice++
		case 3:
			stats.ThirdChoice++
		default:
			stats.OtherChoice++
		}
	}

	stats.SatisfactionScore = satisfactionScore(stats.FirstChoice, stats.SecondChoice, stats.ThirdChoice, stats.OtherChoice)
	return stats
}

// satisfactionScore returns the weighted average rounded to one decimal
func satisfactionScore(first, second, third, other int) float64 {
	assigned := first + second + third + other
	if assigned == 0 {
		return 0
	}

	weighted := WeightFirst*first + WeightSecond*second + WeightThird*third + WeightOther*other
	return math.Round(float64(weighted)/float64(assigned)*10) / 10
}

// buildGroups lists resources with at least one member, in input order
func buildGroups(tracker *capacityTracker) []models.Group {
	groups := []models.Group{}
	for _, s := range tracker.slots {
		if len(s.members) == 0 {
			continue
		}
		groups = append(groups, models.Group{
			ResourceID:    s.resource.ID,
			ResourceTitle: s.resource.Title,
			Members:       s.members,
		})
	}
	return groups
}
