package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/ward-sim/ward-sim/sim"
)

// Define struct for YAML
type ScenarioFile struct {
	Scenarios map[string]ScenarioPreset `yaml:"scenarios"`
}

type ScenarioPreset struct {
	Model         string  `yaml:"model"`
	ArrivalRate   float64 `yaml:"arrival_rate"`
	Servers       int     `yaml:"servers"`
	Capacity      int     `yaml:"capacity"`
	Patients      int     `yaml:"patients"`
	ServiceRate   float64 `yaml:"service_rate"`
	JuniorRate    float64 `yaml:"junior_rate"`
	SeniorRate    float64 `yaml:"senior_rate"`
	SeniorServers int     `yaml:"senior_servers"`
	PreferTier    string  `yaml:"prefer_tier"`
	LoadThreshold float64 `yaml:"load_threshold"`
	LoadFactor    float64 `yaml:"load_factor"`
	LoadSpeedup   bool    `yaml:"load_speedup"`
	LoadDecay     float64 `yaml:"load_decay"`
}

// LoadScenario reads a YAML preset file and returns the named scenario as a
// simulation configuration. The seed is left zero for the caller to fill in.
func LoadScenario(path string, name string) (*sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	var cfg ScenarioFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}

	preset, ok := cfg.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("scenario %q not found in %s", name, path)
	}

	return &sim.Config{
		Kind:          sim.ModelKind(preset.Model),
		ArrivalRate:   preset.ArrivalRate,
		Servers:       preset.Servers,
		Capacity:      preset.Capacity,
		Patients:      preset.Patients,
		ServiceRate:   preset.ServiceRate,
		JuniorRate:    preset.JuniorRate,
		SeniorRate:    preset.SeniorRate,
		SeniorServers: preset.SeniorServers,
		PreferTier:    sim.ExperienceTier(preset.PreferTier),
		LoadThreshold: preset.LoadThreshold,
		LoadFactor:    preset.LoadFactor,
		LoadSpeedup:   preset.LoadSpeedup,
		LoadDecay:     preset.LoadDecay,
	}, nil
}
