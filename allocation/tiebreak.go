// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package allocation

import (
	"math"
	"math/rand/v2"
)

const (
	// rankScale keeps rank dominant over any draw
	rankScale = 1000
	// drawSpan is the exclusive upper bound of a draw
	drawSpan = 100
)

// TieBreaker supplies the secondary sort value for candidates of equal rank.
// Draw returns a value in [0, 100). Implementations need not be safe for
// concurrent use; give each run its own.
type TieBreaker interface {
	Draw() float64
}

type seededTieBreaker struct {
	rng *rand.Rand
}

// NewSeededTieBreaker returns a uniform tie-breaker that yields the same
// sequence for the same seed.
func NewSeededTieBreaker(seed int64) TieBreaker {
	s := uint64(seed)
	return &seededTieBreaker{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (s *seededTieBreaker) Draw() float64 {
	return s.rng.Float64() * drawSpan
}

// OrderedTieBreaker always draws 0, so equal ranks resolve by input order
type OrderedTieBreaker struct{}

func (OrderedTieBreaker) Draw() float64 { return 0 }

// NewSeed returns a random seed for NewSeededTieBreaker
func NewSeed() int64 {
	return rand.Int64()
}

// tieBreakKey combines rank and draw. Out-of-range draws are clamped so a
// misbehaving TieBreaker cannot reorder ranks.
func tieBreakKey(rank int, draw float64) float64 {
	if draw < 0 || math.IsNaN(draw) {
		draw = 0
	}
	if draw >= drawSpan {
		draw = drawSpan - 1
	}
	return float64(rank*rankScale) + draw
}
