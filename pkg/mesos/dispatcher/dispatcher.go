// Package dispatcher turns batches of mesos resource offers into launch and
// decline calls. Each batch is one cycle: offers are filtered against
// per-task minimums, surviving capacity is handed to the task scheduler, and
// every offer in the batch is answered exactly once with either a launch of
// the assigned tasks or a decline.
package dispatcher

import (
	"sync"

	"github.com/gogo/protobuf/proto"
	"github.com/hashicorp/go-multierror"
	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	"go.uber.org/atomic"

	"github.com/tarnfeld/spark/pkg/common/util"
	"github.com/tarnfeld/spark/pkg/scheduler"
)

const _defaultRefuseSeconds = 5.0

// ExecutorInfoBuilder builds the launch descriptor for an executor on a
// worker. Build must be idempotent per worker; the dispatcher caches the
// result for the lifetime of the framework registration.
type ExecutorInfoBuilder interface {
	Build(workerID string) *mesos.ExecutorInfo
}

// Config holds dispatch tunables.
type Config struct {
	// MinMemMB is the smallest memory offer considered usable. Offers below
	// it are declined without consulting the task scheduler.
	MinMemMB float64 `yaml:"min_mem_mb"`

	// RefuseSeconds is attached as a filter to every launch and decline so
	// the master does not immediately re-offer declined resources.
	RefuseSeconds float64 `yaml:"refuse_seconds"`
}

// CycleResult reports how one offer batch was answered. Accepted and
// Declined together cover the whole batch with no overlap.
type CycleResult struct {
	CycleID  string
	Accepted []string
	Declined []string

	TasksLaunched int
}

// Dispatcher is the offer dispatch engine. The executor descriptor cache is
// the only state carried across cycles; one mutex spans a whole cycle so
// concurrent callback delivery observes it consistently.
type Dispatcher struct {
	sync.Mutex

	cfg           Config
	taskScheduler scheduler.TaskScheduler
	builder       ExecutorInfoBuilder
	filters       *mesos.Filters

	// executors caches the launch descriptor per worker that has an
	// executor running. Presence in the map doubles as the launched mark.
	executors map[string]*mesos.ExecutorInfo

	launchedTotal *atomic.Int64
	metrics       *Metrics
}

// New creates a Dispatcher.
func New(
	cfg Config,
	taskScheduler scheduler.TaskScheduler,
	builder ExecutorInfoBuilder,
	parent tally.Scope) *Dispatcher {

	if cfg.RefuseSeconds <= 0 {
		cfg.RefuseSeconds = _defaultRefuseSeconds
	}
	return &Dispatcher{
		cfg:           cfg,
		taskScheduler: taskScheduler,
		builder:       builder,
		filters:       &mesos.Filters{RefuseSeconds: proto.Float64(cfg.RefuseSeconds)},
		executors:     make(map[string]*mesos.ExecutorInfo),
		launchedTotal: atomic.NewInt64(0),
		metrics:       NewMetrics(parent.SubScope("dispatch")),
	}
}

// ProcessOfferBatch runs one dispatch cycle over the given offers. On a task
// scheduler failure the cycle aborts before any driver call, leaving every
// offer unanswered for the master to reclaim. Driver call failures are
// reported per offer and do not stop the rest of the batch; the aggregate
// error is returned alongside the result.
func (d *Dispatcher) ProcessOfferBatch(
	driver Driver,
	offers []*mesos.Offer) (*CycleResult, error) {

	d.Lock()
	defer d.Unlock()

	sw := d.metrics.CycleDuration.Start()
	defer sw.Stop()

	result := &CycleResult{CycleID: uuid.New()}
	d.metrics.OffersReceived.Inc(int64(len(offers)))

	cpusPerTask := d.taskScheduler.CPUsPerTask()
	match := matchOffers(offers, d.cfg.MinMemMB, cpusPerTask)
	d.metrics.OffersRejected.Inc(int64(len(match.rejected)))

	var assignments [][]*scheduler.TaskDescription
	if len(match.usable) > 0 {
		var err error
		assignments, err = d.taskScheduler.ResourceOffers(match.workers)
		if err != nil {
			d.metrics.SchedulerErrors.Inc(1)
			return nil, errors.Wrap(err, "task scheduler rejected offer batch")
		}
		if len(assignments) != len(match.usable) {
			d.metrics.SchedulerErrors.Inc(1)
			return nil, errors.Errorf(
				"task scheduler returned %d assignment lists for %d offers",
				len(assignments), len(match.usable))
		}
	}

	var callErrs *multierror.Error
	for i, offer := range match.usable {
		if len(assignments[i]) == 0 {
			d.decline(driver, offer, result, &callErrs)
			continue
		}
		d.launch(driver, offer, assignments[i], cpusPerTask, result, &callErrs)
	}
	for _, offer := range match.rejected {
		d.decline(driver, offer, result, &callErrs)
	}

	log.WithFields(log.Fields{
		"cycle_id": result.CycleID,
		"offers":   len(offers),
		"accepted": len(result.Accepted),
		"declined": len(result.Declined),
		"tasks":    result.TasksLaunched,
	}).Debug("Offer dispatch cycle complete")

	return result, callErrs.ErrorOrNil()
}

// ForgetWorker drops the cached executor descriptor for a worker, so the
// next accepted offer from it bootstraps a fresh executor. Called when the
// worker or its executor is lost.
func (d *Dispatcher) ForgetWorker(workerID string) {
	d.Lock()
	defer d.Unlock()
	if _, ok := d.executors[workerID]; ok {
		delete(d.executors, workerID)
		log.WithField("worker_id", workerID).
			Info("Dropped cached executor descriptor")
	}
}

// ExecutorCount returns the number of workers with a launched executor.
func (d *Dispatcher) ExecutorCount() int {
	d.Lock()
	defer d.Unlock()
	return len(d.executors)
}

func (d *Dispatcher) launch(
	driver Driver,
	offer *mesos.Offer,
	tasks []*scheduler.TaskDescription,
	cpusPerTask int,
	result *CycleResult,
	callErrs **multierror.Error) {

	offerID := offer.GetId().GetValue()
	infos := make([]*mesos.TaskInfo, 0, len(tasks))
	for _, task := range tasks {
		infos = append(infos, d.buildTaskInfo(offer, task, cpusPerTask))
	}

	_, err := driver.LaunchTasks([]*mesos.OfferID{offer.GetId()}, infos, d.filters)
	if err != nil {
		d.metrics.DriverErrors.Inc(1)
		*callErrs = multierror.Append(*callErrs,
			errors.Wrapf(err, "launching %d tasks on offer %s", len(infos), offerID))
	}
	result.Accepted = append(result.Accepted, offerID)
	result.TasksLaunched += len(infos)
	d.metrics.OffersAccepted.Inc(1)
	d.metrics.TasksLaunched.Inc(int64(len(infos)))

	log.WithFields(log.Fields{
		"cycle_id": result.CycleID,
		"offer_id": offerID,
		"hostname": offer.GetHostname(),
		"tasks":    len(infos),
	}).Info("Launching tasks")
}

func (d *Dispatcher) decline(
	driver Driver,
	offer *mesos.Offer,
	result *CycleResult,
	callErrs **multierror.Error) {

	offerID := offer.GetId().GetValue()
	_, err := driver.DeclineOffer(offer.GetId(), d.filters)
	if err != nil {
		d.metrics.DriverErrors.Inc(1)
		*callErrs = multierror.Append(*callErrs,
			errors.Wrapf(err, "declining offer %s", offerID))
	}
	result.Declined = append(result.Declined, offerID)
	d.metrics.OffersDeclined.Inc(1)
}

// buildTaskInfo converts one task assignment into the mesos launch record.
// The task reserves its cpu shares only; memory is reserved once by the
// executor descriptor.
func (d *Dispatcher) buildTaskInfo(
	offer *mesos.Offer,
	task *scheduler.TaskDescription,
	cpusPerTask int) *mesos.TaskInfo {

	name := task.Name
	if name == "" {
		name = "task " + task.TaskID
	}
	return &mesos.TaskInfo{
		Name:     proto.String(name),
		TaskId:   &mesos.TaskID{Value: proto.String(task.TaskID)},
		SlaveId:  offer.GetSlaveId(),
		Executor: d.executorInfo(offer.GetSlaveId().GetValue()),
		Data:     task.Payload,
		Resources: []*mesos.Resource{
			util.NewResourceBuilder().
				WithName("cpus").
				WithValue(float64(cpusPerTask)).
				Build(),
		},
	}
}

// executorInfo returns the cached descriptor for the worker, building and
// caching it on first use.
func (d *Dispatcher) executorInfo(workerID string) *mesos.ExecutorInfo {
	if info, ok := d.executors[workerID]; ok {
		return info
	}
	info := d.builder.Build(workerID)
	d.executors[workerID] = info
	d.launchedTotal.Inc()
	d.metrics.ExecutorsBuilt.Inc(1)
	log.WithFields(log.Fields{
		"worker_id": workerID,
		"total":     d.launchedTotal.Load(),
	}).Info("Built executor descriptor for new worker")
	return info
}
