// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// queuedEvent pairs an event with the sequence number it was scheduled under,
// so events sharing a timestamp pop in scheduling order. Arrivals with
// identical timestamps therefore break ties by arrival-generation order.
type queuedEvent struct {
	ev  Event
	seq uint64
}

// EventQueue implements heap.Interface and orders events by timestamp, then
// by scheduling sequence.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []queuedEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	ti, tj := eq[i].ev.Timestamp(), eq[j].ev.Timestamp()
	if ti != tj {
		return ti < tj
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(queuedEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	*eq = old[0 : n-1]
	return item
}

// OccupancySample is one point of the ward occupancy trace, recorded at every
// state change. External collaborators use it for plotting; tests use it to
// check the capacity invariants at every simulated instant.
type OccupancySample struct {
	Time      float64 `json:"time"`
	InService int     `json:"in_service"`
	Waiting   int     `json:"waiting"`
}

// SimulationResult is the immutable output of one run: the finalized patient
// records in arrival order, the occupancy trace, and the computed metrics.
type SimulationResult struct {
	Patients  []*Patient
	Occupancy []OccupancySample
	Metrics   *Metrics
}

// Simulator is the core object that holds simulation time, system state, and the event loop.
type Simulator struct {
	Clock float64
	// EventQueue has all the simulator events, arrivals and departures
	EventQueue EventQueue
	// WaitQ aka patient waiting queue before a staff member frees up
	WaitQ *WaitQueue
	// Pool owns the c servers and their tier/load state
	Pool       *ServerPool
	Controller *CapacityController
	Service    ServiceSampler
	Arrivals   ArrivalSource

	// Patients holds every generated patient record in arrival order,
	// finalized as their departure (or blocked arrival) is processed.
	Patients []*Patient
	// Occupancy is the (time, in-service, waiting) trace of the run.
	Occupancy []OccupancySample

	nextSeq   uint64
	arrivalID int
	inService int
}

// NewSimulator validates cfg and wires up a full simulator: partitioned RNG,
// Poisson arrival source, service-time model, server pool, and capacity
// controller.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	arrivals, err := NewPoissonProcess(cfg.ArrivalRate, cfg.Patients, rng.ForSubsystem(SubsystemArrivals))
	if err != nil {
		return nil, err
	}
	model, err := NewServiceModel(cfg, rng.ForSubsystem(SubsystemService))
	if err != nil {
		return nil, err
	}

	return newSimulator(cfg, arrivals, model), nil
}

// NewSimulatorWith wires a simulator around externally supplied arrival and
// service sources. Used by tests to inject fixed schedules and deterministic
// durations; cfg still drives pool sizing and capacity.
func NewSimulatorWith(cfg Config, arrivals ArrivalSource, service ServiceSampler) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSimulator(cfg, arrivals, service), nil
}

func newSimulator(cfg Config, arrivals ArrivalSource, service ServiceSampler) *Simulator {
	return &Simulator{
		Clock:      0,
		EventQueue: make(EventQueue, 0),
		WaitQ:      &WaitQueue{},
		Pool:       NewServerPool(cfg.Servers, cfg.SeniorServers, cfg.loadDecay(), cfg.PreferTier),
		Controller: NewCapacityController(cfg.Capacity),
		Service:    service,
		Arrivals:   arrivals,
	}
}

// Schedule pushes an event into the simulator's EventQueue.
func (s *Simulator) Schedule(ev Event) {
	heap.Push(&s.EventQueue, queuedEvent{ev: ev, seq: s.nextSeq})
	s.nextSeq++
}

// Run drains the event queue to completion and returns the finalized result.
// The engine halts when the queue is empty: every arrival has been processed
// and every admitted patient has departed.
func (s *Simulator) Run() *SimulationResult {
	s.scheduleNextArrival()
	for len(s.EventQueue) > 0 {
		// get the next event to be simulated
		qe := heap.Pop(&s.EventQueue).(queuedEvent)
		// advance the clock
		s.Clock = qe.ev.Timestamp()
		logrus.Debugf("[t=%010.3f] Executing %T", s.Clock, qe.ev)
		// process the event
		qe.ev.Execute(s)
	}
	logrus.Infof("[t=%010.3f] Simulation ended", s.Clock)
	return s.Result()
}

// Result assembles the immutable run output. The metrics are recomputed from
// the finalized records, so calling Result repeatedly yields equal values.
func (s *Simulator) Result() *SimulationResult {
	return &SimulationResult{
		Patients:  s.Patients,
		Occupancy: s.Occupancy,
		Metrics:   ComputeMetrics(s.Patients, s.Pool.Size(), s.Controller.Capacity(), s.Clock),
	}
}

// scheduleNextArrival pulls the next timestamp from the arrival source,
// creates the patient record, and schedules its ArrivalEvent. No-op once the
// source is exhausted.
func (s *Simulator) scheduleNextArrival() {
	t, ok := s.Arrivals.Next()
	if !ok {
		return
	}
	s.arrivalID++
	p := &Patient{
		ID:          fmt.Sprintf("P%04d", s.arrivalID),
		ArrivalTime: t,
		ServerID:    -1,
		Status:      StatusWaiting,
	}
	s.Patients = append(s.Patients, p)
	s.Schedule(&ArrivalEvent{time: t, Patient: p})
}

// handleArrival applies the capacity controller's decision to one arrival.
func (s *Simulator) handleArrival(p *Patient) {
	srv := s.Pool.FindIdle()
	switch decision := s.Controller.Admit(s.inService, s.WaitQ.Len(), srv != nil); decision {
	case Admitted:
		s.startService(p, srv)
	case Queued:
		s.WaitQ.Enqueue(p)
		logrus.Debugf("   %s queued (%d waiting)", p.ID, s.WaitQ.Len())
	case Blocked:
		// the patient leaves immediately and permanently, with no service
		p.Status = StatusBlocked
		p.DepartureTime = p.ArrivalTime
		logrus.Infof("   %s blocked: ward at capacity", p.ID)
	}
	s.recordOccupancy()
}

// handleDeparture finalizes the departing patient, frees the server, and
// starts treatment for the head of the wait queue if anyone is waiting.
func (s *Simulator) handleDeparture(p *Patient, srv *Server) {
	s.Pool.Release(srv)
	s.inService--
	p.Status = StatusDischarged
	p.DepartureTime = s.Clock

	if next := s.WaitQ.Dequeue(); next != nil {
		// same admit-and-schedule path as an immediately admitted arrival;
		// tier preference may pick a different idle server than the one
		// just released
		s.startService(next, s.Pool.FindIdle())
	}
	s.recordOccupancy()
}

// startService assigns p to srv, samples a treatment duration, and schedules
// the departure. The load counter is bumped by Assign before the duration is
// sampled, so the workload-dependent rate sees the load including p.
func (s *Simulator) startService(p *Patient, srv *Server) {
	s.Pool.Assign(p, srv)
	s.inService++
	p.Status = StatusInService
	p.ServiceStart = s.Clock
	p.ServerID = srv.ID

	d := s.Service.Sample(srv)
	s.Schedule(&DepartureEvent{time: s.Clock + d, Patient: p, Server: srv})
	logrus.Debugf("   %s starts treatment on server %d for %.3f min", p.ID, srv.ID, d)
}

func (s *Simulator) recordOccupancy() {
	s.Occupancy = append(s.Occupancy, OccupancySample{
		Time:      s.Clock,
		InService: s.inService,
		Waiting:   s.WaitQ.Len(),
	})
}
