package mesos

import (
	"github.com/uber-go/tally"
)

// Metrics tracks scheduler callback events delivered by the driver.
type Metrics struct {
	Registered   tally.Counter
	Reregistered tally.Counter
	Disconnected tally.Counter

	OfferBatches    tally.Counter
	OffersRescinded tally.Counter
	StatusUpdates   tally.Counter
	SlavesLost      tally.Counter
	ExecutorsLost   tally.Counter
	DriverErrors    tally.Counter
	CycleFailures   tally.Counter
}

// NewMetrics returns a new Metrics struct, with all metrics initialized and
// rooted at the given tally.Scope.
func NewMetrics(scope tally.Scope) *Metrics {
	s := scope.SubScope("callbacks")
	return &Metrics{
		Registered:   s.Counter("registered"),
		Reregistered: s.Counter("reregistered"),
		Disconnected: s.Counter("disconnected"),

		OfferBatches:    s.Counter("offer_batches"),
		OffersRescinded: s.Counter("offers_rescinded"),
		StatusUpdates:   s.Counter("status_updates"),
		SlavesLost:      s.Counter("slaves_lost"),
		ExecutorsLost:   s.Counter("executors_lost"),
		DriverErrors:    s.Counter("driver_errors"),
		CycleFailures:   s.Counter("cycle_failures"),
	}
}
