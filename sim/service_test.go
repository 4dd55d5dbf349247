package sim

import (
	"errors"
	"testing"

	"golang.org/x/exp/rand"
)

func baselineConfig() Config {
	return Config{
		Kind:        Baseline,
		ArrivalRate: 0.5,
		Servers:     3,
		Capacity:    10,
		Patients:    30,
		ServiceRate: 0.2,
	}
}

func workloadConfig() Config {
	cfg := baselineConfig()
	cfg.Kind = WorkloadDependent
	cfg.LoadThreshold = 2.0
	cfg.LoadFactor = 0.5
	cfg.LoadDecay = 0.5
	return cfg
}

func TestServiceModel_Baseline_SingleSharedRate(t *testing.T) {
	// GIVEN a baseline model at rate 0.2
	m, err := NewServiceModel(baselineConfig(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("NewServiceModel: %v", err)
	}

	// THEN every server resolves the same rate regardless of tier or load
	junior := &Server{ID: 0, Tier: TierJunior, Load: 9}
	senior := &Server{ID: 1, Tier: TierSenior}
	if m.Rate(junior) != 0.2 || m.Rate(senior) != 0.2 {
		t.Errorf("baseline rates: got %v and %v, want 0.2 for both", m.Rate(junior), m.Rate(senior))
	}
}

func TestServiceModel_ExperienceBased_PerTierRates(t *testing.T) {
	// GIVEN an experience-based model with junior 0.1 and senior 0.25
	cfg := baselineConfig()
	cfg.Kind = ExperienceBased
	cfg.JuniorRate = 0.1
	cfg.SeniorRate = 0.25
	cfg.SeniorServers = 1
	m, err := NewServiceModel(cfg, rand.NewSource(1))
	if err != nil {
		t.Fatalf("NewServiceModel: %v", err)
	}

	// THEN rate resolution follows the assigned server's tier
	if got := m.Rate(&Server{Tier: TierSenior}); got != 0.25 {
		t.Errorf("senior rate: got %v, want 0.25", got)
	}
	if got := m.Rate(&Server{Tier: TierJunior}); got != 0.1 {
		t.Errorf("junior rate: got %v, want 0.1", got)
	}
}

func TestServiceModel_WorkloadDependent_HigherLoadSlowsService(t *testing.T) {
	// GIVEN a workload-dependent model with threshold 2 and factor 0.5
	m, err := NewServiceModel(workloadConfig(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("NewServiceModel: %v", err)
	}
	srv := &Server{ID: 0}

	// WHEN the load counter sits at or below the threshold
	srv.Load = 2
	atThreshold := m.Rate(srv)

	// THEN the base rate applies unchanged
	if atThreshold != 0.2 {
		t.Errorf("rate at threshold: got %v, want 0.2", atThreshold)
	}

	// WHEN the load counter rises past the threshold
	srv.Load = 3
	loaded := m.Rate(srv)
	srv.Load = 4
	moreLoaded := m.Rate(srv)

	// THEN each increase strictly decreases the instantaneous rate
	if !(loaded < atThreshold) || !(moreLoaded < loaded) {
		t.Errorf("rates not strictly decreasing with load: %v, %v, %v", atThreshold, loaded, moreLoaded)
	}
	// 0.2 / (1 + 0.5*(3-2)) = 0.2/1.5
	if want := 0.2 / 1.5; loaded != want {
		t.Errorf("rate at load 3: got %v, want %v", loaded, want)
	}
}

func TestServiceModel_WorkloadDependent_SpeedupDirection(t *testing.T) {
	// GIVEN the adjustment configured in the speedup direction
	cfg := workloadConfig()
	cfg.LoadSpeedup = true
	m, err := NewServiceModel(cfg, rand.NewSource(1))
	if err != nil {
		t.Fatalf("NewServiceModel: %v", err)
	}
	srv := &Server{ID: 0}

	// WHEN load rises past the threshold
	srv.Load = 3
	loaded := m.Rate(srv)
	srv.Load = 4
	moreLoaded := m.Rate(srv)

	// THEN the instantaneous rate strictly increases instead
	if !(loaded > 0.2) || !(moreLoaded > loaded) {
		t.Errorf("speedup rates not strictly increasing: 0.2, %v, %v", loaded, moreLoaded)
	}
}

// stepAdjustment halves the rate once load crosses its cutoff, regardless of
// how far past it the load goes.
type stepAdjustment struct {
	cutoff float64
}

func (a stepAdjustment) Adjust(baseRate, load float64) float64 {
	if load > a.cutoff {
		return baseRate / 2
	}
	return baseRate
}

func TestServiceModel_WithAdjustment_SwapsPolicy(t *testing.T) {
	// GIVEN a workload model with a custom step adjustment policy
	m, err := NewServiceModel(workloadConfig(), rand.NewSource(1))
	if err != nil {
		t.Fatalf("NewServiceModel: %v", err)
	}
	m.WithAdjustment(stepAdjustment{cutoff: 1})
	srv := &Server{ID: 0}

	// THEN rate resolution dispatches through the swapped-in policy
	srv.Load = 1
	if got := m.Rate(srv); got != 0.2 {
		t.Errorf("rate at cutoff: got %v, want 0.2", got)
	}
	srv.Load = 5
	if got := m.Rate(srv); got != 0.1 {
		t.Errorf("rate past cutoff: got %v, want 0.1", got)
	}
}

func TestServiceModel_Sample_AlwaysPositive(t *testing.T) {
	m, err := NewServiceModel(baselineConfig(), rand.NewSource(99))
	if err != nil {
		t.Fatalf("NewServiceModel: %v", err)
	}
	srv := &Server{ID: 0}
	for i := 0; i < 1000; i++ {
		if d := m.Sample(srv); d <= 0 {
			t.Fatalf("draw %d: duration %v, want > 0", i, d)
		}
	}
}

func TestNewServiceModel_InvalidRates_Error(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero baseline rate", func(c *Config) { c.ServiceRate = 0 }},
		{"negative baseline rate", func(c *Config) { c.ServiceRate = -0.5 }},
		{"unknown kind", func(c *Config) { c.Kind = "overtime" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baselineConfig()
			tt.mutate(&cfg)
			_, err := NewServiceModel(cfg, rand.NewSource(1))
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("err = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestNewServiceModel_ExperienceBased_ZeroTierRate_Error(t *testing.T) {
	cfg := baselineConfig()
	cfg.Kind = ExperienceBased
	cfg.JuniorRate = 0
	cfg.SeniorRate = 0.25
	_, err := NewServiceModel(cfg, rand.NewSource(1))
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("err = %v, want ErrInvalidParameter", err)
	}
}
