// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Group API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - CohortHandler: Cohort admin (create, resources, preflight, allocate)
  - ParticipantHandler: Joining and preference submission
  - GroupsHandler: Public cohort info and allocated groups

Handlers are created via constructor functions that accept *sql.DB and Config:

	cohortHandler := handlers.NewCohortHandler(db, cfg, m)

# Cohort Admin

	POST /cohorts                   → CreateCohort (returns admin_key, share_slug)
	GET  /cohorts/{id}/admin        → GetCohortAdmin
	POST /cohorts/{id}/resources    → AddResource (capacity 0 → default)
	GET  /cohorts/{id}/preflight    → Preflight (validation report)
	POST /cohorts/{id}/allocate     → Allocate (?seed=N, ?force=true)

Admin operations require the X-Admin-Key header.

# Allocation

Allocate loads a snapshot, validates it, and runs the engine with a seeded
tie-breaker. The seed is logged, returned, and stored with the run so any
result can be reproduced. Only successful runs are written; the previous
groups are replaced in the same transaction.

# Participant Flow

Participants interact via the share slug:

	POST /cohorts/{slug}/participants → JoinCohort (returns participant_token)
	PUT  /cohorts/{slug}/preferences  → SubmitPreferences (replace whole list)
	GET  /cohorts/{slug}              → GetCohort
	GET  /cohorts/{slug}/groups       → GetGroups (after an allocation)

Preference submission requires the X-Participant-Token header.
*/
package handlers
