package dispatcher

import (
	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	log "github.com/sirupsen/logrus"

	"github.com/tarnfeld/spark/pkg/common/util"
	"github.com/tarnfeld/spark/pkg/scheduler"
)

// matchResult partitions one offer batch into offers worth showing to the
// task scheduler and offers that cannot fit even a single task. workers is
// positionally parallel to usable.
type matchResult struct {
	workers  []*scheduler.WorkerOffer
	usable   []*mesos.Offer
	rejected []*mesos.Offer
}

// matchOffers translates mesos offers into worker offers for the task
// scheduler. An offer is usable iff it holds at least minMemMB of memory and
// at least one task's worth of cpus; usable offers advertise only whole
// task-shares of cpu, any fractional remainder is withheld.
func matchOffers(
	offers []*mesos.Offer,
	minMemMB float64,
	cpusPerTask int) *matchResult {

	result := &matchResult{}
	for _, offer := range offers {
		mem := util.GetOfferScalar(offer, "mem")
		cpus := util.GetOfferScalar(offer, "cpus")
		if mem < minMemMB || cpus < float64(cpusPerTask) {
			log.WithFields(log.Fields{
				"offer_id": offer.GetId().GetValue(),
				"hostname": offer.GetHostname(),
				"mem":      mem,
				"cpus":     cpus,
			}).Debug("Declining offer below per-task resource minimum")
			result.rejected = append(result.rejected, offer)
			continue
		}

		cores := (int(cpus) / cpusPerTask) * cpusPerTask
		result.usable = append(result.usable, offer)
		result.workers = append(result.workers, &scheduler.WorkerOffer{
			WorkerID: offer.GetSlaveId().GetValue(),
			Host:     offer.GetHostname(),
			Cores:    cores,
		})
	}
	return result
}
