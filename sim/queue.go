// Implements the WaitQueue, which holds all patients waiting for a free staff
// member. Patients are enqueued when they arrive to a full service pool but an
// open bed, and dequeued first-come-first-served at the next departure.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of patients waiting for treatment.
type WaitQueue struct {
	queue []*Patient // FIFO queue of patients
}

// Enqueue adds a patient to the back of the wait queue.
func (wq *WaitQueue) Enqueue(p *Patient) {
	wq.queue = append(wq.queue, p)
}

// Dequeue removes and returns the patient at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Patient {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue = wq.queue[1:]
	return head
}

// Peek returns the patient at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Patient {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Len returns the number of patients in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
