// Service-time model: a tagged variant over the three staffing scenarios.
// All variants draw exponentially distributed treatment durations; they differ
// only in how the per-draw rate μ is resolved for the assigned server.

package sim

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ModelKind selects the staffing scenario.
type ModelKind string

const (
	Baseline          ModelKind = "baseline"
	ExperienceBased   ModelKind = "experience"
	WorkloadDependent ModelKind = "workload"
)

// ValidModelKinds lists the accepted scenario names, for CLI help text.
var ValidModelKinds = []ModelKind{Baseline, ExperienceBased, WorkloadDependent}

// ServiceSampler draws a treatment duration for a server at service start.
type ServiceSampler interface {
	Sample(srv *Server) float64
}

// LoadAdjustment maps a server's load counter to an instantaneous service
// rate. Implementations must return a positive rate for a positive base rate.
type LoadAdjustment interface {
	Adjust(baseRate, load float64) float64
}

// LinearLoadAdjustment leaves the rate untouched while load stays at or below
// Threshold, then scales it by 1 + Factor*(load-Threshold). The default
// direction is a slowdown (overloaded staff treat patients more slowly);
// Speedup inverts it.
type LinearLoadAdjustment struct {
	Threshold float64
	Factor    float64
	Speedup   bool
}

// Adjust implements LoadAdjustment.
func (a LinearLoadAdjustment) Adjust(baseRate, load float64) float64 {
	if load <= a.Threshold {
		return baseRate
	}
	scale := 1 + a.Factor*(load-a.Threshold)
	if a.Speedup {
		return baseRate * scale
	}
	return baseRate / scale
}

// ServiceModel is the tagged-variant service-time model. Kind selects how the
// rate is resolved; the exponential draw itself is shared by all variants.
type ServiceModel struct {
	Kind ModelKind

	baseRate   float64
	juniorRate float64
	seniorRate float64
	adjust     LoadAdjustment

	src rand.Source
}

// NewServiceModel builds the service-time model for cfg, drawing randomness
// from src. cfg is assumed validated; rates are re-checked here so the model
// is safe to construct directly in tests.
func NewServiceModel(cfg Config, src rand.Source) (*ServiceModel, error) {
	m := &ServiceModel{Kind: cfg.Kind, src: src}
	switch cfg.Kind {
	case Baseline:
		if !positiveFinite(cfg.ServiceRate) {
			return nil, fmt.Errorf("%w: service rate must be positive and finite, got %v", ErrInvalidParameter, cfg.ServiceRate)
		}
		m.baseRate = cfg.ServiceRate
	case ExperienceBased:
		if !positiveFinite(cfg.JuniorRate) || !positiveFinite(cfg.SeniorRate) {
			return nil, fmt.Errorf("%w: tier service rates must be positive and finite, got junior=%v senior=%v",
				ErrInvalidParameter, cfg.JuniorRate, cfg.SeniorRate)
		}
		m.juniorRate = cfg.JuniorRate
		m.seniorRate = cfg.SeniorRate
	case WorkloadDependent:
		if !positiveFinite(cfg.ServiceRate) {
			return nil, fmt.Errorf("%w: service rate must be positive and finite, got %v", ErrInvalidParameter, cfg.ServiceRate)
		}
		m.baseRate = cfg.ServiceRate
		m.adjust = LinearLoadAdjustment{
			Threshold: cfg.LoadThreshold,
			Factor:    cfg.LoadFactor,
			Speedup:   cfg.LoadSpeedup,
		}
	default:
		return nil, fmt.Errorf("%w: unknown model kind %q", ErrInvalidParameter, cfg.Kind)
	}
	return m, nil
}

// WithAdjustment swaps in a custom load-adjustment policy. Only meaningful
// for the workload-dependent variant.
func (m *ServiceModel) WithAdjustment(adjust LoadAdjustment) *ServiceModel {
	m.adjust = adjust
	return m
}

// Rate resolves the instantaneous service rate for srv without consuming any
// randomness. For the workload-dependent variant this is recomputed from the
// server's load counter at the instant of the call, which makes the rate
// path-dependent.
func (m *ServiceModel) Rate(srv *Server) float64 {
	switch m.Kind {
	case ExperienceBased:
		if srv.Tier == TierSenior {
			return m.seniorRate
		}
		return m.juniorRate
	case WorkloadDependent:
		return m.adjust.Adjust(m.baseRate, srv.Load)
	default:
		return m.baseRate
	}
}

// Sample draws an exponentially distributed treatment duration for srv at the
// rate resolved by Rate. Always returns a positive duration.
func (m *ServiceModel) Sample(srv *Server) float64 {
	d := distuv.Exponential{Rate: m.Rate(srv), Src: m.src}.Rand()
	if d <= 0 {
		d = math.SmallestNonzeroFloat64
	}
	return d
}
