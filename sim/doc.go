// Package sim provides the discrete-event simulation engine for a hospital
// ward modeled as an M/M/c/K queue.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - patient.go: Patient lifecycle (waiting → in-service → discharged, or blocked)
//   - event.go: Event types that drive the simulation (Arrival, Departure)
//   - simulator.go: The event loop, admission handling, and service scheduling
//
// # Architecture
//
// A run is driven by a timestamp-ordered event heap. Arrival events come from
// an ArrivalSource (Poisson by default) and are chained: executing one arrival
// schedules the next, so the heap stays small. Admission decisions follow the
// M/M/c/K rule in admission.go, service durations come from the tagged-variant
// ServiceModel in service.go, and staff state lives in the ServerPool.
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - ArrivalSource: next arrival timestamp (Poisson process, or a fixed schedule)
//   - ServiceSampler: service duration for a server at service start
//   - LoadAdjustment: load counter → instantaneous service rate mapping
//
// Metrics are a pure function of the finalized patient records; recomputing
// them from the same records always yields identical results.
package sim
