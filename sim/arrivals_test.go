package sim

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func TestPoissonProcess_YieldsNStrictlyIncreasingTimestamps(t *testing.T) {
	// GIVEN a Poisson process of 50 arrivals at rate 0.5/min
	src := rand.NewSource(42)
	p, err := NewPoissonProcess(0.5, 50, src)
	if err != nil {
		t.Fatalf("NewPoissonProcess: %v", err)
	}

	// WHEN the sequence is drained
	var times []float64
	for {
		tm, ok := p.Next()
		if !ok {
			break
		}
		times = append(times, tm)
	}

	// THEN it holds exactly 50 strictly increasing positive timestamps
	if len(times) != 50 {
		t.Fatalf("arrival count: got %d, want 50", len(times))
	}
	prev := 0.0
	for i, tm := range times {
		if tm <= prev {
			t.Errorf("arrival %d: timestamp %v not strictly after %v", i, tm, prev)
		}
		prev = tm
	}
}

func TestPoissonProcess_Reset_ReproducesSequence(t *testing.T) {
	// GIVEN a drained Poisson process
	p, err := NewPoissonProcess(1.0, 10, rand.NewSource(7))
	if err != nil {
		t.Fatalf("NewPoissonProcess: %v", err)
	}
	var first []float64
	for tm, ok := p.Next(); ok; tm, ok = p.Next() {
		first = append(first, tm)
	}

	// WHEN it is reset with an identically seeded source
	p.Reset(rand.NewSource(7))
	var second []float64
	for tm, ok := p.Next(); ok; tm, ok = p.Next() {
		second = append(second, tm)
	}

	// THEN the sequence is bit-for-bit identical
	if len(first) != len(second) {
		t.Fatalf("sequence lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("arrival %d: got %v and %v, want identical", i, first[i], second[i])
		}
	}
}

func TestNewPoissonProcess_InvalidRate_Errors(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		n    int
	}{
		{"zero rate", 0, 10},
		{"negative rate", -1, 10},
		{"zero count", 1, 0},
		{"negative count", 1, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPoissonProcess(tt.rate, tt.n, rand.NewSource(1))
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("NewPoissonProcess(%v, %d): err = %v, want ErrInvalidParameter", tt.rate, tt.n, err)
			}
		})
	}
}

func TestFixedArrivals_ReplaysScheduleInOrder(t *testing.T) {
	// GIVEN a fixed schedule
	want := []float64{1, 2.5, 2.5, 9}
	f := NewFixedArrivals(want)

	// WHEN drained
	for i, w := range want {
		got, ok := f.Next()
		if !ok || got != w {
			t.Errorf("arrival %d: got (%v, %v), want (%v, true)", i, got, ok, w)
		}
	}

	// THEN the source is exhausted afterwards
	if _, ok := f.Next(); ok {
		t.Error("Next after exhaustion: got ok=true, want false")
	}
}
