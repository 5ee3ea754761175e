// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package allocation assigns participants to capacity-limited resources from
their ranked preference lists.

# Pipeline

One call to Allocate runs four stages over an immutable snapshot:

	Validate → generateTuples → assign → computeStatistics / buildGroups

  - Validate: pre-flight check, exposed separately for callers
  - generateTuples: one (participant, resource, rank) candidate per known preference
  - assign: greedy single pass in tie-break key order under capacity
  - computeStatistics: rank buckets and satisfaction score

# Tie-break Key

Every candidate is ordered by

	key = rank*1000 + draw, draw in [0, 100)

so a lower rank always sorts first and the draw only reorders candidates of
the same rank. Equal keys keep generation order.

The draw comes from a TieBreaker passed in Options:

	// reproducible
	result := allocation.Allocate(participants, resources, allocation.Options{
		TieBreaker: allocation.NewSeededTieBreaker(seed),
	})

	// ties resolved by input order
	result := allocation.Allocate(participants, resources, allocation.Options{
		TieBreaker: allocation.OrderedTieBreaker{},
	})

A nil TieBreaker draws a fresh seed per call. Callers that persist results
should choose the seed themselves (see NewSeed) and record it.

# Satisfaction Score

	score = (100*first + 66*second + 33*third + 10*other) / assigned

rounded to one decimal, 0 when nobody was assigned.

# Concurrency

Allocate holds no state between calls. The capacity tracker and candidate
list are allocated per call, and inputs are only read, so concurrent calls
are safe as long as each one gets its own TieBreaker.
*/
package allocation
