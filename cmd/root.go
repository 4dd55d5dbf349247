package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/ward-sim/ward-sim/sim"
)

var (
	// CLI flags shared by the run and compare subcommands
	scenario      string  // staffing scenario (run only)
	seed          int64   // Master seed for random arrival and service draws
	logLevel      string  // Log verbosity level
	arrivalRate   float64 // λ, patient arrivals per minute
	servers       int     // c, staff members on shift
	capacityK     int     // K, maximum patients in the ward
	patients      int     // N, arrivals to generate
	serviceRate   float64 // μ, treatments per minute (baseline and workload base rate)
	juniorRate    float64 // per-tier μ for junior staff
	seniorRate    float64 // per-tier μ for senior staff
	seniorServers int     // how many servers are senior
	preferTier    string  // idle-server tier preference ("", "junior", "senior")
	loadThreshold float64 // load counter value where the workload adjustment kicks in
	loadFactor    float64 // strength of the workload adjustment
	loadSpeedup   bool    // invert the adjustment direction (overload speeds service up)
	loadDecay     float64 // load counter multiplier applied at each release
	outputPath    string  // optional JSON metrics output path
	presetFile    string  // YAML scenario preset file
	presetName    string  // preset to load from the file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ward-sim",
	Short: "Discrete-event M/M/c/K simulator for hospital ward patient flow",
}

// buildConfig assembles a sim.Config for the given scenario from CLI flags.
func buildConfig(kind sim.ModelKind) sim.Config {
	return sim.Config{
		Kind:          kind,
		ArrivalRate:   arrivalRate,
		Servers:       servers,
		Capacity:      capacityK,
		Patients:      patients,
		Seed:          seed,
		ServiceRate:   serviceRate,
		JuniorRate:    juniorRate,
		SeniorRate:    seniorRate,
		SeniorServers: seniorServers,
		PreferTier:    sim.ExperienceTier(preferTier),
		LoadThreshold: loadThreshold,
		LoadFactor:    loadFactor,
		LoadSpeedup:   loadSpeedup,
		LoadDecay:     loadDecay,
	}
}

// resolveRunConfig picks the run configuration: a named YAML preset when
// --preset-file is set, otherwise the scenario assembled from flags.
func resolveRunConfig() (sim.Config, error) {
	if presetFile == "" {
		return buildConfig(sim.ModelKind(scenario)), nil
	}
	cfg, err := LoadScenario(presetFile, presetName)
	if err != nil {
		return sim.Config{}, err
	}
	cfg.Seed = seed
	return *cfg, nil
}

// runCmd executes one simulation scenario using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one ward simulation scenario",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveRunConfig()
		if err != nil {
			logrus.Fatalf("Could not build configuration: %v", err)
		}

		logrus.Infof("Starting %s simulation: lambda=%.3f/min, c=%d, K=%d, N=%d, seed=%d",
			cfg.Kind, cfg.ArrivalRate, cfg.Servers, cfg.Capacity, cfg.Patients, cfg.Seed)

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		result := s.Run()
		result.Metrics.Print()

		if outputPath != "" {
			if err := result.Metrics.SaveResults(outputPath); err != nil {
				logrus.Fatalf("Could not save results: %v", err)
			}
			logrus.Infof("Metrics written to %s", outputPath)
		}

		logrus.Info("Simulation complete.")
	},
}

// compareCmd runs all three staffing scenarios side by side. Each run owns an
// independent RNG and system state, so the scenarios never share mutable state.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all three staffing scenarios and print a comparison table",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		fmt.Printf("%-12s %10s %12s %12s %12s %14s\n",
			"scenario", "served", "blocked %", "util %", "mean wait", "mean LOS")
		for _, kind := range sim.ValidModelKinds {
			cfg := buildConfig(kind)
			s, err := sim.NewSimulator(cfg)
			if err != nil {
				logrus.Fatalf("Invalid %s configuration: %v", kind, err)
			}
			m := s.Run().Metrics
			fmt.Printf("%-12s %10d %11.2f%% %11.2f%% %9.2f min %11.2f min\n",
				kind, m.Served, m.BlockingProbability*100, m.Utilization*100, m.MeanWait, m.MeanTimeInSystem)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addSharedFlags registers the parameter flags common to run and compare.
func addSharedFlags(c *cobra.Command) {
	c.Flags().Int64Var(&seed, "seed", 42, "Seed for random arrival and service generation")
	c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// M/M/c/K parameters
	c.Flags().Float64Var(&arrivalRate, "arrival-rate", 0.5, "Patient arrivals per minute (lambda)")
	c.Flags().IntVar(&servers, "servers", 3, "Number of staff members on shift (c)")
	c.Flags().IntVar(&capacityK, "capacity", 10, "Maximum patients in the ward, in service + waiting (K)")
	c.Flags().IntVar(&patients, "patients", 100, "Number of patient arrivals to generate (N)")

	// service-rate parameters
	c.Flags().Float64Var(&serviceRate, "service-rate", 0.2, "Treatments per minute (mu) for baseline and workload scenarios")
	c.Flags().Float64Var(&juniorRate, "junior-rate", 0.1, "Treatments per minute for junior staff")
	c.Flags().Float64Var(&seniorRate, "senior-rate", 0.25, "Treatments per minute for senior staff")
	c.Flags().IntVar(&seniorServers, "senior-servers", 1, "How many servers are senior tier")
	c.Flags().StringVar(&preferTier, "prefer-tier", "", "Idle-server tier preference (junior or senior; empty = id order)")

	// workload-dependent adjustment parameters
	c.Flags().Float64Var(&loadThreshold, "load-threshold", 2.0, "Load counter value where the rate adjustment kicks in")
	c.Flags().Float64Var(&loadFactor, "load-factor", 0.5, "Adjustment strength per unit of excess load")
	c.Flags().BoolVar(&loadSpeedup, "load-speedup", false, "Overload speeds service up instead of slowing it down")
	c.Flags().Float64Var(&loadDecay, "load-decay", 0.5, "Load counter multiplier applied at each release (0, 1]")
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenario, "scenario", "baseline", "Staffing scenario (baseline, experience, workload)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write metrics JSON to this path")
	runCmd.Flags().StringVar(&presetFile, "preset-file", "", "YAML scenario preset file")
	runCmd.Flags().StringVar(&presetName, "preset", "", "Preset name to load from --preset-file")
	addSharedFlags(runCmd)
	addSharedFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
