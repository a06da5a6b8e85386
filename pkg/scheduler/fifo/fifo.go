// Package fifo provides a queue-backed TaskScheduler that assigns pending
// tasks to workers strictly in submission order. It carries no placement
// policy; it exists so the adapter can be run against something real.
package fifo

import (
	"sync"

	"github.com/pborman/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tarnfeld/spark/pkg/scheduler"
)

// Scheduler is a FIFO implementation of scheduler.TaskScheduler.
type Scheduler struct {
	sync.Mutex

	cpusPerTask int
	pending     []*scheduler.TaskDescription
}

// New creates a FIFO scheduler accounting cpusPerTask cpus per task. A
// non-positive cpusPerTask is treated as 1.
func New(cpusPerTask int) *Scheduler {
	if cpusPerTask <= 0 {
		cpusPerTask = 1
	}
	return &Scheduler{cpusPerTask: cpusPerTask}
}

// Submit appends tasks to the pending queue. Tasks without an id are
// assigned one.
func (s *Scheduler) Submit(tasks ...*scheduler.TaskDescription) {
	s.Lock()
	defer s.Unlock()
	for _, t := range tasks {
		if t.TaskID == "" {
			t.TaskID = uuid.New()
		}
		s.pending = append(s.pending, t)
	}
	log.WithField("pending", len(s.pending)).Debug("Tasks submitted")
}

// PendingCount returns the number of queued tasks.
func (s *Scheduler) PendingCount() int {
	s.Lock()
	defer s.Unlock()
	return len(s.pending)
}

// ResourceOffers drains the pending queue onto the offered workers in order,
// packing whole cpu shares per worker. Implements
// scheduler.TaskScheduler.ResourceOffers.
func (s *Scheduler) ResourceOffers(
	offers []*scheduler.WorkerOffer) ([][]*scheduler.TaskDescription, error) {

	s.Lock()
	defer s.Unlock()

	assignments := make([][]*scheduler.TaskDescription, len(offers))
	for i, offer := range offers {
		slots := offer.Cores / s.cpusPerTask
		for slots > 0 && len(s.pending) > 0 {
			task := s.pending[0]
			s.pending = s.pending[1:]
			task.WorkerID = offer.WorkerID
			assignments[i] = append(assignments[i], task)
			slots--
		}
	}
	return assignments, nil
}

// CPUsPerTask implements scheduler.TaskScheduler.CPUsPerTask.
func (s *Scheduler) CPUsPerTask() int {
	return s.cpusPerTask
}
