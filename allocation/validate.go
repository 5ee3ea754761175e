// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"fmt"

	"github.com/danielhkuo/quickly-group/models"
)

// Validation messages
const (
	MsgNoParticipants = "No participants provided"
	MsgNoResources    = "No resources provided"
	MsgNoPreferences  = "No participants have submitted preferences"
)

// Validate checks a snapshot before allocation. Every violated rule is
// reported. Preferences naming unknown resources are not checked here.
func Validate(participants []models.Participant, resources []models.Resource) models.ValidationResult {
	result := models.ValidationResult{
		Errors:                      []string{},
		ParticipantsWithPreferences: countWithPreferences(participants),
		TotalCapacity:               totalCapacity(resources),
	}

	if len(participants) == 0 {
		result.Errors = append(result.Errors, MsgNoParticipants)
	}
	if len(resources) == 0 {
		result.Errors = append(result.Errors, MsgNoResources)
	}
	if result.ParticipantsWithPreferences == 0 {
		result.Errors = append(result.Errors, MsgNoPreferences)
	}
	if result.TotalCapacity < result.ParticipantsWithPreferences {
		result.Errors = append(result.Errors, insufficientCapacity(result.ParticipantsWithPreferences, result.TotalCapacity))
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func insufficientCapacity(demand, capacity int) string {
	return fmt.Sprintf("Insufficient capacity: %d participants but only %d slots available", demand, capacity)
}

func countWithPreferences(participants []models.Participant) int {
	count := 0
	for _, p := range participants {
		if len(p.Preferences) > 0 {
			count++
		}
	}
	return count
}

func totalCapacity(resources []models.Resource) int {
	total := 0
	for _, r := range resources {
		total += r.EffectiveCapacity()
	}
	return total
}
