// Package scheduler defines the contract between the Mesos adapter and the
// task scheduler that decides what runs where. The adapter treats the
// scheduler as a black box: it hands over the workers with free capacity and
// receives back per-worker assignment lists.
package scheduler

// WorkerOffer describes free capacity on a single worker node, decoupled from
// the Mesos offer it was derived from. Cores is always a whole multiple of
// the scheduler's per-task cpu cost.
type WorkerOffer struct {
	WorkerID string
	Host     string
	Cores    int
}

// TaskDescription is one runnable task placed on a worker. Payload carries
// the serialized task, opaque to the adapter.
type TaskDescription struct {
	TaskID   string
	WorkerID string
	Name     string
	Payload  []byte
}

// TaskScheduler assigns pending tasks to offered workers.
type TaskScheduler interface {
	// ResourceOffers returns one assignment list per worker offer, positionally
	// parallel to the input. A worker with nothing to run gets an empty list.
	ResourceOffers(offers []*WorkerOffer) ([][]*TaskDescription, error)

	// CPUsPerTask is the fixed cpu cost the scheduler accounts per task.
	CPUsPerTask() int
}
