package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in simulated minutes) and an Execute
// method that advances simulation state when invoked.
type Event interface {
	Timestamp() float64
	Execute(*Simulator)
}

// ArrivalEvent represents a new patient reaching the ward.
type ArrivalEvent struct {
	time    float64  // Simulation time of arrival (in minutes)
	Patient *Patient // The arriving patient associated with this event
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() float64 {
	return e.time
}

// Execute runs the admission decision for the arriving patient, then chains
// the next arrival from the source so the event heap stays small.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	logrus.Infof("<< Arrival: %s at %.3f min", e.Patient.ID, e.time)
	sim.handleArrival(e.Patient)
	sim.scheduleNextArrival()
}

// DepartureEvent represents a treated patient leaving the ward.
type DepartureEvent struct {
	time    float64  // Scheduled discharge time (in minutes)
	Patient *Patient // The departing patient
	Server  *Server  // The server that treated the patient
}

// Timestamp returns the scheduled time of the DepartureEvent.
func (e *DepartureEvent) Timestamp() float64 {
	return e.time
}

// Execute releases the server, finalizes the patient record, and starts
// treatment for the head of the wait queue if anyone is waiting.
func (e *DepartureEvent) Execute(sim *Simulator) {
	logrus.Infof(">> Departure: %s at %.3f min (server %d)", e.Patient.ID, e.time, e.Server.ID)
	sim.handleDeparture(e.Patient, e.Server)
}
