package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/ward-sim/ward-sim/sim"
)

const testScenarios = `
scenarios:
  reference:
    model: baseline
    arrival_rate: 0.5
    servers: 3
    capacity: 10
    patients: 30
    service_rate: 0.2
  mixed-staff:
    model: experience
    arrival_rate: 0.5
    servers: 3
    capacity: 10
    patients: 200
    junior_rate: 0.1
    senior_rate: 0.25
    senior_servers: 1
    prefer_tier: senior
`

func writeScenarioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testScenarios), 0o644))
	return path
}

func TestLoadScenario_Baseline(t *testing.T) {
	// GIVEN a preset file with a baseline reference scenario
	path := writeScenarioFile(t)

	// WHEN the reference preset is loaded
	cfg, err := LoadScenario(path, "reference")
	require.NoError(t, err)

	// THEN the configuration matches and validates
	assert.Equal(t, sim.Baseline, cfg.Kind)
	assert.Equal(t, 0.5, cfg.ArrivalRate)
	assert.Equal(t, 3, cfg.Servers)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, 30, cfg.Patients)
	assert.Equal(t, 0.2, cfg.ServiceRate)
	require.NoError(t, cfg.Validate())
}

func TestLoadScenario_ExperiencePreset(t *testing.T) {
	path := writeScenarioFile(t)

	cfg, err := LoadScenario(path, "mixed-staff")
	require.NoError(t, err)

	assert.Equal(t, sim.ExperienceBased, cfg.Kind)
	assert.Equal(t, 0.25, cfg.SeniorRate)
	assert.Equal(t, 1, cfg.SeniorServers)
	assert.Equal(t, sim.TierSenior, cfg.PreferTier)
	require.NoError(t, cfg.Validate())
}

func TestLoadScenario_UnknownPreset_Errors(t *testing.T) {
	path := writeScenarioFile(t)

	_, err := LoadScenario(path, "night-shift")
	assert.Error(t, err)
}

func TestLoadScenario_MissingFile_Errors(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"), "reference")
	assert.Error(t, err)
}
