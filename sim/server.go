// Defines the Server struct and the ServerPool that owns the c staff members.
// The pool tracks busy state, experience tier, and the per-server load counter
// read by the workload-dependent service model.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ExperienceTier classifies a staff member's seniority.
type ExperienceTier string

const (
	TierJunior ExperienceTier = "junior"
	TierSenior ExperienceTier = "senior"
)

// Server models a single staff member.
type Server struct {
	ID   int
	Tier ExperienceTier
	Busy bool

	// Load counts patients handled: incremented at every service start and
	// multiplied by the pool's decay at every release. Only the
	// workload-dependent service model reads it.
	Load float64

	patient *Patient // the patient currently being treated, nil when idle
}

func (s Server) String() string {
	return fmt.Sprintf("Server: (ID: %d, Tier: %s, Busy: %v, Load: %.2f)", s.ID, s.Tier, s.Busy, s.Load)
}

// ServerPool owns the c servers of a single run. Mutated only by the
// simulation engine at service start and departure.
type ServerPool struct {
	servers []*Server
	decay   float64
	prefer  ExperienceTier // optional tier preference for idle lookup; empty = id order only
}

// NewServerPool creates c servers. The first seniors ids get TierSenior, the
// rest TierJunior. decay is the multiplier applied to a server's load counter
// at release (1 = cumulative count). prefer may name a tier to try first when
// looking for an idle server.
func NewServerPool(c int, seniors int, decay float64, prefer ExperienceTier) *ServerPool {
	pool := &ServerPool{
		servers: make([]*Server, c),
		decay:   decay,
		prefer:  prefer,
	}
	for i := 0; i < c; i++ {
		tier := TierJunior
		if i < seniors {
			tier = TierSenior
		}
		pool.servers[i] = &Server{ID: i, Tier: tier}
	}
	return pool
}

// FindIdle returns an idle server, or nil when every server is busy.
// Selection is lowest id first; when a tier preference is configured, idle
// servers of that tier win over lower-id servers of the other tier.
func (sp *ServerPool) FindIdle() *Server {
	var fallback *Server
	for _, srv := range sp.servers {
		if srv.Busy {
			continue
		}
		if sp.prefer == "" || srv.Tier == sp.prefer {
			return srv
		}
		if fallback == nil {
			fallback = srv
		}
	}
	return fallback
}

// Assign marks srv busy treating p and bumps its load counter.
// The engine only calls Assign on a server confirmed idle.
func (sp *ServerPool) Assign(p *Patient, srv *Server) {
	if srv.Busy {
		panic(fmt.Sprintf("Assign: server %d is already treating %s", srv.ID, srv.patient.ID))
	}
	srv.Busy = true
	srv.patient = p
	srv.Load++
}

// Release marks srv idle and decays its load counter.
func (sp *ServerPool) Release(srv *Server) {
	if !srv.Busy {
		logrus.Warnf("Release: server %d was already idle", srv.ID)
		return
	}
	srv.Busy = false
	srv.patient = nil
	srv.Load *= sp.decay
}

// BusyCount returns how many servers are currently treating a patient.
func (sp *ServerPool) BusyCount() int {
	n := 0
	for _, srv := range sp.servers {
		if srv.Busy {
			n++
		}
	}
	return n
}

// Size returns the number of servers c.
func (sp *ServerPool) Size() int {
	return len(sp.servers)
}

// Servers returns the pool contents for inspection. Callers must not mutate
// server state; that is the engine's job.
func (sp *ServerPool) Servers() []*Server {
	return sp.servers
}
