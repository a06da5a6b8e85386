package dispatcher

import (
	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
)

// Driver is the slice of the mesos scheduler driver the dispatcher needs to
// answer offers. Both calls are fire-and-forget: retry and backoff are the
// driver's business, offer expiry on the master side is the recovery path.
// The real mesos-go SchedulerDriver satisfies this interface.
type Driver interface {
	LaunchTasks(
		offerIDs []*mesos.OfferID,
		tasks []*mesos.TaskInfo,
		filters *mesos.Filters) (mesos.Status, error)

	DeclineOffer(
		offerID *mesos.OfferID,
		filters *mesos.Filters) (mesos.Status, error)
}
