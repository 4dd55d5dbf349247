// Poisson arrival generation: patients reach the ward with exponentially
// distributed inter-arrival times at rate λ.

package sim

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ArrivalSource yields patient arrival timestamps in strictly increasing
// order. Next returns ok=false once the source is exhausted.
type ArrivalSource interface {
	Next() (t float64, ok bool)
}

// PoissonProcess generates n arrival timestamps with exponential
// inter-arrival times (a Poisson process at rate λ). Draws are lazy,
// one per Next call.
type PoissonProcess struct {
	exp   distuv.Exponential
	n     int
	idx   int
	clock float64
}

// NewPoissonProcess creates a source of n arrivals at the given rate
// (arrivals per minute), drawing from src.
func NewPoissonProcess(rate float64, n int, src rand.Source) (*PoissonProcess, error) {
	if !positiveFinite(rate) {
		return nil, fmt.Errorf("%w: arrival rate must be positive and finite, got %v", ErrInvalidParameter, rate)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: arrival count must be > 0, got %d", ErrInvalidParameter, n)
	}
	return &PoissonProcess{
		exp: distuv.Exponential{Rate: rate, Src: src},
		n:   n,
	}, nil
}

// Next returns the next arrival timestamp.
func (p *PoissonProcess) Next() (float64, bool) {
	if p.idx >= p.n {
		return 0, false
	}
	iat := p.exp.Rand()
	if iat <= 0 {
		// keep timestamps strictly increasing
		iat = math.SmallestNonzeroFloat64
	}
	p.clock += iat
	p.idx++
	return p.clock, true
}

// Reset restarts the sequence from time zero with a fresh random source.
func (p *PoissonProcess) Reset(src rand.Source) {
	p.exp.Src = src
	p.idx = 0
	p.clock = 0
}

// FixedArrivals replays a predetermined arrival schedule. Used to inject
// hand-crafted arrival sequences in tests.
type FixedArrivals struct {
	times []float64
	idx   int
}

// NewFixedArrivals creates a source that yields the given timestamps in order.
func NewFixedArrivals(times []float64) *FixedArrivals {
	return &FixedArrivals{times: times}
}

// Next returns the next scheduled timestamp.
func (f *FixedArrivals) Next() (float64, bool) {
	if f.idx >= len(f.times) {
		return 0, false
	}
	t := f.times[f.idx]
	f.idx++
	return t, true
}
