package dispatcher

import (
	"github.com/uber-go/tally"
)

// Metrics tracks counters for offer dispatch cycles.
type Metrics struct {
	OffersReceived tally.Counter
	OffersAccepted tally.Counter
	OffersDeclined tally.Counter
	OffersRejected tally.Counter

	TasksLaunched   tally.Counter
	ExecutorsBuilt  tally.Counter
	DriverErrors    tally.Counter
	SchedulerErrors tally.Counter

	CycleDuration tally.Timer
}

// NewMetrics returns a new Metrics struct, with all metrics initialized and
// rooted at the given tally.Scope.
func NewMetrics(scope tally.Scope) *Metrics {
	offerScope := scope.SubScope("offers")
	taskScope := scope.SubScope("tasks")
	cycleScope := scope.SubScope("cycle")

	return &Metrics{
		OffersReceived: offerScope.Counter("received"),
		OffersAccepted: offerScope.Counter("accepted"),
		OffersDeclined: offerScope.Counter("declined"),
		OffersRejected: offerScope.Counter("rejected"),

		TasksLaunched:   taskScope.Counter("launched"),
		ExecutorsBuilt:  scope.Counter("executors_built"),
		DriverErrors:    cycleScope.Counter("driver_errors"),
		SchedulerErrors: cycleScope.Counter("scheduler_errors"),

		CycleDuration: cycleScope.Timer("duration"),
	}
}
