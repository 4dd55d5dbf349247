package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter reports a configuration value outside its legal range.
// Every validation failure wraps it, so callers can errors.Is against it.
var ErrInvalidParameter = errors.New("invalid parameter")

// Config is the immutable parameter set for one simulation run. It is passed
// explicitly into NewSimulator; nothing in the package holds ambient run
// state, so repeated or side-by-side scenario runs stay independent.
type Config struct {
	Kind ModelKind // staffing scenario: baseline, experience, workload

	ArrivalRate float64 // λ, patient arrivals per minute
	Servers     int     // c, staff members on shift
	Capacity    int     // K, maximum patients in the ward (in service + waiting)
	Patients    int     // N, arrivals to generate
	Seed        int64   // master RNG seed

	// Baseline and workload-dependent base service rate μ (treatments per minute).
	ServiceRate float64

	// Experience-based per-tier rates and staffing split.
	JuniorRate    float64
	SeniorRate    float64
	SeniorServers int            // first SeniorServers ids are senior, the rest junior
	PreferTier    ExperienceTier // optional idle-server tier preference; empty = id order

	// Workload-dependent adjustment. The load counter is incremented at every
	// service start and multiplied by LoadDecay at every release.
	LoadThreshold float64 // load at which the adjustment kicks in
	LoadFactor    float64 // strength of the adjustment per unit of excess load
	LoadSpeedup   bool    // false: overload slows service (default); true: speeds it up
	LoadDecay     float64 // release-time multiplier for the load counter, in (0, 1]
}

// Validate checks every parameter before any simulation step runs.
// All failures wrap ErrInvalidParameter.
func (c Config) Validate() error {
	if !positiveFinite(c.ArrivalRate) {
		return fmt.Errorf("%w: arrival rate must be positive and finite, got %v", ErrInvalidParameter, c.ArrivalRate)
	}
	if c.Servers <= 0 {
		return fmt.Errorf("%w: server count must be > 0, got %d", ErrInvalidParameter, c.Servers)
	}
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: system capacity must be > 0, got %d", ErrInvalidParameter, c.Capacity)
	}
	if c.Servers > c.Capacity {
		return fmt.Errorf("%w: server count %d exceeds system capacity %d", ErrInvalidParameter, c.Servers, c.Capacity)
	}
	if c.Patients <= 0 {
		return fmt.Errorf("%w: patient count must be > 0, got %d", ErrInvalidParameter, c.Patients)
	}

	switch c.Kind {
	case Baseline:
		if !positiveFinite(c.ServiceRate) {
			return fmt.Errorf("%w: service rate must be positive and finite, got %v", ErrInvalidParameter, c.ServiceRate)
		}
	case ExperienceBased:
		if !positiveFinite(c.JuniorRate) {
			return fmt.Errorf("%w: junior service rate must be positive and finite, got %v", ErrInvalidParameter, c.JuniorRate)
		}
		if !positiveFinite(c.SeniorRate) {
			return fmt.Errorf("%w: senior service rate must be positive and finite, got %v", ErrInvalidParameter, c.SeniorRate)
		}
		if c.SeniorServers < 0 || c.SeniorServers > c.Servers {
			return fmt.Errorf("%w: senior server count %d outside [0, %d]", ErrInvalidParameter, c.SeniorServers, c.Servers)
		}
		if c.PreferTier != "" && c.PreferTier != TierJunior && c.PreferTier != TierSenior {
			return fmt.Errorf("%w: unknown tier preference %q", ErrInvalidParameter, c.PreferTier)
		}
	case WorkloadDependent:
		if !positiveFinite(c.ServiceRate) {
			return fmt.Errorf("%w: service rate must be positive and finite, got %v", ErrInvalidParameter, c.ServiceRate)
		}
		if c.LoadThreshold < 0 {
			return fmt.Errorf("%w: load threshold must be >= 0, got %v", ErrInvalidParameter, c.LoadThreshold)
		}
		if c.LoadFactor < 0 {
			return fmt.Errorf("%w: load factor must be >= 0, got %v", ErrInvalidParameter, c.LoadFactor)
		}
		if c.LoadDecay <= 0 || c.LoadDecay > 1 {
			return fmt.Errorf("%w: load decay must be in (0, 1], got %v", ErrInvalidParameter, c.LoadDecay)
		}
	default:
		return fmt.Errorf("%w: unknown model kind %q", ErrInvalidParameter, c.Kind)
	}

	return nil
}

// loadDecay returns the configured decay, defaulting to 1 (cumulative load)
// for scenarios that never read the counter.
func (c Config) loadDecay() float64 {
	if c.Kind != WorkloadDependent {
		return 1
	}
	return c.LoadDecay
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
