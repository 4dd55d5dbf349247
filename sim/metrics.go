// Metrics aggregation: ward performance indicators computed from the
// finalized patient records of a single run.

package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about the simulation for final reporting.
// All fields are pure functions of the finalized patient records plus the run
// dimensions (c, K, horizon): recomputing them from the same records always
// yields identical values. Empty populations yield zeros, never errors.
type Metrics struct {
	TotalArrivals int `json:"total_arrivals"`
	Served        int `json:"served"`  // discharged patients
	Blocked       int `json:"blocked"` // turned away at capacity
	QueuedCount   int `json:"queued"`  // served patients that waited before treatment

	BlockingProbability float64 `json:"blocking_probability"` // blocked / total arrivals
	Utilization         float64 `json:"utilization"`          // time-weighted busy servers / c
	AvgOccupancy        float64 `json:"avg_occupancy"`        // time-weighted patients in system / K

	MeanWait   float64 `json:"mean_wait_min"`
	MedianWait float64 `json:"median_wait_min"`
	MinWait    float64 `json:"min_wait_min"`
	MaxWait    float64 `json:"max_wait_min"`

	MeanTimeInSystem float64 `json:"mean_time_in_system_min"` // mean length of stay
	Throughput       float64 `json:"throughput_per_min"`      // discharges / horizon

	Horizon float64 `json:"horizon_min"` // observed simulation span in minutes
}

// ComputeMetrics aggregates the finalized patient records of a run with c
// servers, system capacity k, over the observed horizon (clock at the last
// processed event).
func ComputeMetrics(patients []*Patient, c, k int, horizon float64) *Metrics {
	m := &Metrics{
		TotalArrivals: len(patients),
		Horizon:       horizon,
	}

	var waits []float64
	var busyTime, systemTime float64
	for _, p := range patients {
		switch p.Status {
		case StatusBlocked:
			m.Blocked++
		case StatusDischarged:
			m.Served++
			if p.WaitTime() > 0 {
				m.QueuedCount++
			}
			waits = append(waits, p.WaitTime())
			busyTime += p.ServiceTime()
			systemTime += p.TimeInSystem()
		}
	}

	if m.TotalArrivals > 0 {
		m.BlockingProbability = float64(m.Blocked) / float64(m.TotalArrivals)
	}
	if horizon > 0 {
		if c > 0 {
			m.Utilization = busyTime / (float64(c) * horizon)
		}
		if k > 0 {
			m.AvgOccupancy = systemTime / (float64(k) * horizon)
		}
		m.Throughput = float64(m.Served) / horizon
	}
	if m.Served > 0 {
		m.MeanTimeInSystem = systemTime / float64(m.Served)
	}

	if len(waits) > 0 {
		sort.Float64s(waits)
		m.MeanWait = stat.Mean(waits, nil)
		m.MedianWait = stat.Quantile(0.5, stat.Empirical, waits, nil)
		m.MinWait = waits[0]
		m.MaxWait = waits[len(waits)-1]
	}

	return m
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Total Arrivals        : %d\n", m.TotalArrivals)
	fmt.Printf("Patients Served       : %d\n", m.Served)
	fmt.Printf("Patients Blocked      : %d\n", m.Blocked)
	fmt.Printf("Blocking Probability  : %.2f%%\n", m.BlockingProbability*100)
	fmt.Printf("Staff Utilization     : %.2f%%\n", m.Utilization*100)
	fmt.Printf("Average Occupancy     : %.2f%%\n", m.AvgOccupancy*100)
	if m.Served > 0 {
		fmt.Printf("Mean Wait             : %.2f min\n", m.MeanWait)
		fmt.Printf("Median Wait           : %.2f min\n", m.MedianWait)
		fmt.Printf("Max Wait              : %.2f min\n", m.MaxWait)
		fmt.Printf("Mean Length of Stay   : %.2f min\n", m.MeanTimeInSystem)
	}
	fmt.Printf("Throughput            : %.4f patients/min\n", m.Throughput)
	fmt.Printf("Observed Horizon      : %.2f min\n", m.Horizon)
}

// SaveResults writes the metrics as JSON for the external visualization layer.
func (m *Metrics) SaveResults(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
