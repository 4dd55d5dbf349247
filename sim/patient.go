// Defines the Patient struct that models an individual patient in the simulation.
// Tracks arrival, service-start and departure timestamps plus the admission outcome.

package sim

import (
	"fmt"
)

// PatientStatus represents the lifecycle state of a patient.
type PatientStatus string

const (
	StatusWaiting    PatientStatus = "waiting"
	StatusInService  PatientStatus = "in-service"
	StatusDischarged PatientStatus = "discharged"
	StatusBlocked    PatientStatus = "blocked"
)

// Patient models a single patient's passage through the ward.
// Each patient has:
// - an arrival timestamp (minutes of simulated time)
// - a service-start and departure timestamp once treated
// - the id of the treating server
// - an admission outcome: exactly one of discharged or blocked, permanent
//
// A record is created at the arrival event, mutated at service start and
// departure, and never touched again after its departure event is processed.
type Patient struct {
	ID string // Unique identifier for the patient

	ArrivalTime   float64 // Timestamp when the patient arrives at the ward
	ServiceStart  float64 // Timestamp when treatment begins (valid once in-service)
	DepartureTime float64 // Timestamp when the patient leaves (discharge or blocked turn-away)

	ServerID int           // id of the treating server, -1 when never assigned
	Status   PatientStatus // waiting, in-service, discharged, blocked
}

// WaitTime returns how long the patient waited for a free staff member.
// Zero for immediately admitted and for blocked patients.
func (p *Patient) WaitTime() float64 {
	if p.Status == StatusBlocked {
		return 0
	}
	return p.ServiceStart - p.ArrivalTime
}

// ServiceTime returns the treatment duration. Zero for blocked patients.
func (p *Patient) ServiceTime() float64 {
	if p.Status != StatusDischarged {
		return 0
	}
	return p.DepartureTime - p.ServiceStart
}

// TimeInSystem returns the total length of stay (departure - arrival).
// Zero for blocked patients, who leave immediately.
func (p *Patient) TimeInSystem() float64 {
	if p.Status == StatusBlocked {
		return 0
	}
	return p.DepartureTime - p.ArrivalTime
}

// This method returns a human-readable string representation of a Patient.
func (p Patient) String() string {
	return fmt.Sprintf("Patient: (ID: %s, Status: %s, ArrivalTime: %.3f, ServerID: %d)",
		p.ID, p.Status, p.ArrivalTime, p.ServerID)
}
