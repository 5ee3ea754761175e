// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists cohorts and adapts them to the allocation engine.

# Snapshots

Snapshot reads one cohort into the two engine inputs:

	participants, resources, err := st.Snapshot(ctx, cohortID)
	result := allocation.Allocate(participants, resources, opts)

Participants come back in join order with preferences sorted by rank;
resources in catalog order. Participants without a list are included with
an empty Preferences slice.

# Preference Lists

ReplacePreferences enforces what the engine deliberately does not:

  - at most one active list per participant (replace, never append)
  - list length capped by the cohort's max_preferences
  - no resource listed twice
  - only resources of the same cohort

# Write-back

SaveAllocation inserts the run record, clears the previous memberships, and
writes the new ones in a single transaction. Unsuccessful results are
refused with ErrUnsuccessfulResult.

# Errors

Sentinel errors are wrapped with context; match them with errors.Is:

	ErrNotFound, ErrNameTaken, ErrTooManyPreferences,
	ErrDuplicatePreference, ErrUnknownResource, ErrInvalidCapacity
*/
package store
