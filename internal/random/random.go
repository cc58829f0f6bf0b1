// Package random isolates the randomness behind estimation fallbacks so
// callers can inject deterministic sources in tests.
package random

import (
	"math/rand/v2"
	"time"
)

// Source draws bounded random values.
type Source interface {
	// Uniform returns a value in [lo, hi].
	Uniform(lo, hi float64) float64
	// IntBetween returns an integer in [lo, hi].
	IntBetween(lo, hi int) int
}

// PCG is a Source backed by a PCG generator.
type PCG struct {
	rng *rand.Rand
}

// New returns a PCG source. A zero seed draws one from the wall clock.
func New(seed uint64) *PCG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &PCG{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *PCG) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.Float64()*(hi-lo)
}

func (p *PCG) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + p.rng.IntN(hi-lo+1)
}

// Sequence replays fixed unit fractions in order, wrapping around. A
// fraction f maps to lo + f*(hi-lo), so 0 always yields the lower bound
// and 1 the upper bound.
type Sequence struct {
	fractions []float64
	next      int
}

// NewSequence creates a Sequence. With no fractions it always returns the
// midpoint of the requested range.
func NewSequence(fractions ...float64) *Sequence {
	return &Sequence{fractions: fractions}
}

func (s *Sequence) draw() float64 {
	if len(s.fractions) == 0 {
		return 0.5
	}
	f := s.fractions[s.next%len(s.fractions)]
	s.next++
	return f
}

func (s *Sequence) Uniform(lo, hi float64) float64 {
	return lo + s.draw()*(hi-lo)
}

func (s *Sequence) IntBetween(lo, hi int) int {
	return lo + int(s.draw()*float64(hi-lo)+0.5)
}
