// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines engine, request, response, and domain types.

# Engine Types

Inputs and outputs of the allocation engine (package allocation):

  - Participant: id, name, ordered preferences (resource ids)
  - Resource: id, title, capacity (0 means DefaultCapacity)
  - PreferenceTuple: one candidate claim, indexes into the input slices
  - Assignment: participant placed on a resource at a rank
  - Group: resource with its assigned members
  - Statistics: counts per rank bucket and the satisfaction score
  - AlgorithmResult: success, error, assignments, groups, stats
  - ValidationResult: pre-flight outcome (errors, demand, capacity)

# Request Types

  - CreateCohortRequest: title, description, max_preferences
  - AddResourceRequest: title, capacity
  - JoinCohortRequest: name
  - SubmitPreferencesRequest: preferences ([]string)

Request structs carry validate tags checked by middleware.ValidateRequest.

# Response Types

  - CreateCohortResponse: cohort_id, admin_key, share_slug
  - AddResourceResponse: resource_id, capacity
  - JoinCohortResponse: participant_id, participant_token
  - SubmitPreferencesResponse: participant_id, preferences, message
  - PreflightResponse: validation outcome plus snapshot sizes
  - AllocateResponse: run_id, seed, result
  - GroupsResponse: latest run and its groups
  - ErrorResponse: error, message, details

# Constants

Status values:

	StatusOpen      = "open"
	StatusAllocated = "allocated"

Defaults:

	DefaultCapacity       = 4
	DefaultMaxPreferences = 3
*/
package models
