// Capacity control: the M/M/c/K admission rule applied to every arrival.

package sim

// Decision is the outcome of the capacity controller for one arriving patient.
type Decision int

const (
	// Admitted: an idle server exists, treatment starts immediately.
	Admitted Decision = iota
	// Queued: all servers busy but the ward has a free bed; the patient waits.
	Queued
	// Blocked: the ward is at capacity K; the patient is turned away for good.
	Blocked
)

func (d Decision) String() string {
	switch d {
	case Admitted:
		return "admitted"
	case Queued:
		return "queued"
	case Blocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// CapacityController enforces the system capacity K over patients in service
// plus patients waiting. The engine applies its decision atomically within
// each arrival event, so no departure can interleave with the check.
type CapacityController struct {
	capacity int // K
}

// NewCapacityController creates a controller for system capacity k.
func NewCapacityController(k int) *CapacityController {
	return &CapacityController{capacity: k}
}

// Admit applies the M/M/c/K decision rule: an idle server admits immediately,
// a free bed queues the patient, a full ward blocks them.
func (cc *CapacityController) Admit(inService, waiting int, idleAvailable bool) Decision {
	if idleAvailable {
		return Admitted
	}
	if inService+waiting < cc.capacity {
		return Queued
	}
	return Blocked
}

// Capacity returns K.
func (cc *CapacityController) Capacity() int {
	return cc.capacity
}
