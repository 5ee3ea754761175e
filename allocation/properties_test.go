// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-group/models"
)

// randomSnapshot builds a snapshot with some empty lists, unknown ids and
// uneven capacities
func randomSnapshot(rng *rand.Rand) ([]models.Participant, []models.Resource) {
	resources := make([]models.Resource, 1+rng.IntN(6))
	for i := range resources {
		resources[i] = models.Resource{
			ID:       fmt.Sprintf("r%d", i),
			Title:    fmt.Sprintf("Resource %d", i),
			Capacity: rng.IntN(4), // 0 falls back to the default
		}
	}

	participants := make([]models.Participant, 1+rng.IntN(25))
	for i := range participants {
		prefs := make([]string, rng.IntN(5))
		for j := range prefs {
			// roughly one in eight entries points at a missing resource
			prefs[j] = fmt.Sprintf("r%d", rng.IntN(len(resources)+1))
		}
		participants[i] = models.Participant{
			ID:          fmt.Sprintf("p%d", i),
			Name:        fmt.Sprintf("Participant %d", i),
			Preferences: prefs,
		}
	}

	return participants, resources
}

func TestAllocate_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 500; run++ {
		participants, resources := randomSnapshot(rng)
		result := Allocate(participants, resources, Options{TieBreaker: NewSeededTieBreaker(int64(run))})

		if countWithPreferences(participants) == 0 {
			require.False(t, result.Success, "run %d", run)
			assert.Empty(t, result.Groups, "run %d", run)
			continue
		}
		require.True(t, result.Success, "run %d: %s", run, result.Error)

		stats := result.Stats
		assert.Equal(t, stats.ParticipantsWithPreferences, stats.Assigned+stats.Unassigned, "run %d: count consistency", run)
		assert.Equal(t, stats.Assigned, stats.FirstChoice+stats.SecondChoice+stats.ThirdChoice+stats.OtherChoice, "run %d: bucket sum", run)
		assert.Len(t, result.Assignments, stats.Assigned, "run %d", run)

		if stats.Assigned == 0 {
			assert.Zero(t, stats.SatisfactionScore, "run %d", run)
		} else {
			assert.GreaterOrEqual(t, stats.SatisfactionScore, 0.0, "run %d", run)
			assert.LessOrEqual(t, stats.SatisfactionScore, 100.0, "run %d", run)
		}

		capacity := map[string]int{}
		for _, r := range resources {
			capacity[r.ID] = r.EffectiveCapacity()
		}
		prefs := map[string][]string{}
		for _, p := range participants {
			prefs[p.ID] = p.Preferences
		}

		// No participant appears twice across groups, and no group overflows
		seen := map[string]bool{}
		members := 0
		for _, g := range result.Groups {
			assert.NotEmpty(t, g.Members, "run %d: empty group %s", run, g.ResourceID)
			assert.LessOrEqual(t, len(g.Members), capacity[g.ResourceID], "run %d: group %s over capacity", run, g.ResourceID)
			for _, m := range g.Members {
				assert.False(t, seen[m.ParticipantID], "run %d: %s in more than one group", run, m.ParticipantID)
				seen[m.ParticipantID] = true
				members++
			}
		}
		assert.Equal(t, stats.Assigned, members, "run %d", run)

		// Every assignment targets a known resource at its first listed position
		for _, a := range result.Assignments {
			_, known := capacity[a.ResourceID]
			assert.True(t, known, "run %d: unknown resource %s", run, a.ResourceID)
			assert.Equal(t, slices.Index(prefs[a.ParticipantID], a.ResourceID)+1, a.Rank, "run %d: rank of %s", run, a.ParticipantID)
		}
	}
}

func TestAllocate_ConcurrentCalls(t *testing.T) {
	participants, resources := randomSnapshot(rand.New(rand.NewPCG(1, 2)))
	want := Allocate(participants, resources, Options{TieBreaker: NewSeededTieBreaker(99)})

	var wg sync.WaitGroup
	results := make([]models.AlgorithmResult, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Allocate(participants, resources, Options{TieBreaker: NewSeededTieBreaker(99)})
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "call %d", i)
	}
}
