// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import "github.com/danielhkuo/quickly-group/models"

// slot is the per-run bookkeeping for one resource
type slot struct {
	resource models.Resource
	capacity int
	members  []models.GroupMember
}

// capacityTracker maps resource ids to slots stored by input position.
// Built fresh for every run and never shared.
type capacityTracker struct {
	index map[string]int
	slots []slot
}

func newCapacityTracker(resources []models.Resource) *capacityTracker {
	t := &capacityTracker{
		index: make(map[string]int, len(resources)),
		slots: make([]slot, 0, len(resources)),
	}
	for _, r := range resources {
		// first occurrence of a duplicated id wins
		if _, dup := t.index[r.ID]; dup {
			continue
		}
		t.index[r.ID] = len(t.slots)
		t.slots = append(t.slots, slot{resource: r, capacity: r.EffectiveCapacity()})
	}
	return t
}

// lookup returns the slot index for a resource id
func (t *capacityTracker) lookup(resourceID string) (int, bool) {
	i, ok := t.index[resourceID]
	return i, ok
}

func (t *capacityTracker) hasRoom(i int) bool {
	return len(t.slots[i].members) < t.slots[i].capacity
}

// commit appends a member. Callers check hasRoom first.
func (t *capacityTracker) commit(i int, p models.Participant, rank int) {
	t.slots[i].members = append(t.slots[i].members, models.GroupMember{
		ParticipantID:   p.ID,
		ParticipantName: p.Name,
		Rank:            rank,
	})
}
