// Package mesos hosts the framework side of the Mesos scheduler API: it owns
// the callback handler registered with the driver and the framework's
// registration identity.
package mesos

import (
	"context"

	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	sched "github.com/mesos/mesos-go/api/v0/scheduler"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/tarnfeld/spark/pkg/mesos/dispatcher"
	"github.com/tarnfeld/spark/pkg/storage"
)

// Handler adapts driver callbacks onto the offer dispatcher. It implements
// the mesos-go Scheduler interface; the driver delivers callbacks serially,
// and the dispatcher additionally guards its own state, so the handler keeps
// no locking of its own.
type Handler struct {
	dispatcher    *dispatcher.Dispatcher
	store         storage.FrameworkInfoStore
	frameworkName string
	metrics       *Metrics
}

// NewHandler creates a Handler dispatching offers to the given dispatcher.
func NewHandler(
	d *dispatcher.Dispatcher,
	store storage.FrameworkInfoStore,
	frameworkName string,
	parent tally.Scope) *Handler {

	return &Handler{
		dispatcher:    d,
		store:         store,
		frameworkName: frameworkName,
		metrics:       NewMetrics(parent.SubScope("mesos")),
	}
}

// Registered persists the assigned framework id so a restart re-registers
// as a failover of this framework.
func (h *Handler) Registered(
	_ sched.SchedulerDriver,
	frameworkID *mesos.FrameworkID,
	masterInfo *mesos.MasterInfo) {

	h.metrics.Registered.Inc(1)
	log.WithFields(log.Fields{
		"framework_id": frameworkID.GetValue(),
		"master":       masterInfo.GetHostname(),
	}).Info("Framework registered")

	err := h.store.SetMesosFrameworkID(
		context.Background(), h.frameworkName, frameworkID.GetValue())
	if err != nil {
		log.WithError(err).Error("Failed to persist framework id")
	}
}

// Reregistered is called on master failover.
func (h *Handler) Reregistered(
	_ sched.SchedulerDriver, masterInfo *mesos.MasterInfo) {

	h.metrics.Reregistered.Inc(1)
	log.WithField("master", masterInfo.GetHostname()).
		Info("Framework re-registered")
}

// Disconnected is called when the driver loses the master connection.
func (h *Handler) Disconnected(_ sched.SchedulerDriver) {
	h.metrics.Disconnected.Inc(1)
	log.Warn("Disconnected from master")
}

// ResourceOffers runs one dispatch cycle over the delivered batch. Cycle
// failures are logged, not fatal: unanswered offers expire on the master and
// come back, and per-offer driver errors have already been handled inside
// the cycle.
func (h *Handler) ResourceOffers(
	driver sched.SchedulerDriver, offers []*mesos.Offer) {

	h.metrics.OfferBatches.Inc(1)
	result, err := h.dispatcher.ProcessOfferBatch(driver, offers)
	if err != nil {
		h.metrics.CycleFailures.Inc(1)
		log.WithError(err).WithField("offers", len(offers)).
			Error("Offer dispatch cycle failed")
	}
	if result != nil {
		log.WithFields(log.Fields{
			"cycle_id": result.CycleID,
			"accepted": len(result.Accepted),
			"declined": len(result.Declined),
			"tasks":    result.TasksLaunched,
		}).Info("Processed offer batch")
	}
}

// OfferRescinded is informational: the dispatcher never holds offers across
// cycles, so a rescind needs no cleanup here.
func (h *Handler) OfferRescinded(
	_ sched.SchedulerDriver, offerID *mesos.OfferID) {

	h.metrics.OffersRescinded.Inc(1)
	log.WithField("offer_id", offerID.GetValue()).Debug("Offer rescinded")
}

// StatusUpdate logs task state transitions.
func (h *Handler) StatusUpdate(
	_ sched.SchedulerDriver, status *mesos.TaskStatus) {

	h.metrics.StatusUpdates.Inc(1)
	log.WithFields(log.Fields{
		"task_id": status.GetTaskId().GetValue(),
		"state":   status.GetState().String(),
		"message": status.GetMessage(),
	}).Info("Task status update")
}

// FrameworkMessage handles messages sent by executors.
func (h *Handler) FrameworkMessage(
	_ sched.SchedulerDriver,
	executorID *mesos.ExecutorID,
	slaveID *mesos.SlaveID,
	message string) {

	log.WithFields(log.Fields{
		"executor_id": executorID.GetValue(),
		"slave_id":    slaveID.GetValue(),
	}).Debug("Framework message received")
}

// SlaveLost drops the worker's cached executor descriptor so a replacement
// executor is bootstrapped if the worker comes back.
func (h *Handler) SlaveLost(_ sched.SchedulerDriver, slaveID *mesos.SlaveID) {
	h.metrics.SlavesLost.Inc(1)
	log.WithField("slave_id", slaveID.GetValue()).Warn("Slave lost")
	h.dispatcher.ForgetWorker(slaveID.GetValue())
}

// ExecutorLost drops the worker's cached executor descriptor; the next
// accepted offer from the worker relaunches the executor.
func (h *Handler) ExecutorLost(
	_ sched.SchedulerDriver,
	executorID *mesos.ExecutorID,
	slaveID *mesos.SlaveID,
	status int) {

	h.metrics.ExecutorsLost.Inc(1)
	log.WithFields(log.Fields{
		"executor_id": executorID.GetValue(),
		"slave_id":    slaveID.GetValue(),
		"status":      status,
	}).Warn("Executor lost")
	h.dispatcher.ForgetWorker(slaveID.GetValue())
}

// Error is called on unrecoverable driver errors.
func (h *Handler) Error(_ sched.SchedulerDriver, message string) {
	h.metrics.DriverErrors.Inc(1)
	log.WithField("message", message).Error("Driver error")
}
