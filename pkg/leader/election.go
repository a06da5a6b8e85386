// Package leader provides zookeeper based leader election so that only one
// framework instance at a time registers with the Mesos master; standbys
// take over registration on failover.
package leader

import (
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/docker/leadership"
	"github.com/docker/libkv/store"
	"github.com/docker/libkv/store/zookeeper"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
)

const (
	// ttl is the election ttl for docker/leadership
	ttl = 15 * time.Second
	// zkConnErrRetry is how long to wait before campaigning again after a
	// connection error
	zkConnErrRetry = 1 * time.Second
	// _metricsUpdateTick is the period between emissions of election metrics
	_metricsUpdateTick = 10 * time.Second
)

// ElectionConfig is the zookeeper configuration for leader election.
type ElectionConfig struct {
	// ZKServers is the list of ZK servers to use for leader election
	ZKServers []string `yaml:"zk_servers"`
	// Root is the base ZK path elections happen under
	Root string `yaml:"root"`
}

// election holds the state of one zk election
type election struct {
	sync.Mutex
	metrics    electionMetrics
	running    bool
	role       string
	candidate  *leadership.Candidate
	nomination Nomination
	stopChan   chan struct{}
}

// NewCandidate creates a new election object to control participation in
// leader election for the given role.
func NewCandidate(
	cfg ElectionConfig,
	parent tally.Scope,
	role string,
	nomination Nomination) (Candidate, error) {

	if role == "" {
		return nil, errors.New("role to campaign for must not be empty")
	}

	client, err := zookeeper.New(
		cfg.ZKServers,
		&store.Config{ConnectionTimeout: zkConnErrRetry},
	)
	if err != nil {
		return nil, err
	}
	candidate := leadership.NewCandidate(
		client,
		electionZkPath(cfg.Root, role),
		nomination.GetID(),
		ttl,
	)
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}
	el := election{
		metrics:    newElectionMetrics(parent.SubScope("election"), hostname),
		role:       role,
		candidate:  candidate,
		nomination: nomination,
		stopChan:   make(chan struct{}, 1),
	}
	return &el, nil
}

// Start begins campaigning for leadership and invokes the nomination
// callbacks on gain or loss. Connection errors are retried until Stop is
// called.
func (el *election) Start() error {
	el.Lock()
	defer el.Unlock()
	if el.running {
		return errors.New("election already running")
	}
	el.running = true
	el.metrics.Start.Inc(1)
	el.metrics.Running.Update(1)

	log.WithField("role", el.role).Info("Joining election")
	go func() {
		for el.isRunning() {
			if err := el.waitForEvent(); err != nil {
				log.WithField("role", el.role).
					Errorf("Failure running election; retrying: %v", err)
			}
			time.Sleep(zkConnErrRetry)
		}
		log.Info("Stopped running election")
	}()

	go el.updateElectionMetrics(_metricsUpdateTick)

	return nil
}

func (el *election) isRunning() bool {
	el.Lock()
	defer el.Unlock()
	return el.running
}

func (el *election) updateElectionMetrics(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-el.stopChan:
			return
		case <-ticker.C:
			if el.IsLeader() {
				el.metrics.IsLeader.Update(1)
			} else {
				el.metrics.IsLeader.Update(0)
			}
		}
	}
}

// waitForEvent blocks until an election or error event is handled. It is
// called in a retry loop by Start.
func (el *election) waitForEvent() error {
	electionCh, errCh := el.candidate.RunForElection()

	for {
		select {
		case isElected := <-electionCh:
			if isElected {
				log.WithFields(log.Fields{
					"id":   el.nomination.GetID(),
					"role": el.role,
				}).Info("Leadership gained")
				el.metrics.GainedLeadership.Inc(1)
				el.metrics.IsLeader.Update(1)
				if err := el.nomination.GainedLeadershipCallback(); err != nil {
					log.WithError(err).Error("GainedLeadershipCallback failed")
					return err
				}
			} else {
				log.WithFields(log.Fields{
					"id":   el.nomination.GetID(),
					"role": el.role,
				}).Info("Leadership lost")
				el.metrics.LostLeadership.Inc(1)
				el.metrics.IsLeader.Update(0)
				if err := el.nomination.LostLeadershipCallback(); err != nil {
					log.WithError(err).Error("LostLeadershipCallback failed")
					return err
				}
			}
		case err := <-errCh:
			if err != nil {
				log.WithError(err).WithField("role", el.role).
					Error("Error participating in election")
				el.metrics.Error.Inc(1)
				return err
			}
			// shutdown signal from docker/leadership; the retry loop
			// decides whether to keep campaigning
			return nil
		}
	}
}

// Stop ends campaigning for leadership and calls the shutdown callback.
func (el *election) Stop() error {
	el.Lock()
	if el.running {
		el.running = false
		close(el.stopChan)
		el.metrics.Stop.Inc(1)
		el.metrics.Running.Update(0)
		el.candidate.Stop()
		go el.Resign()
	}
	el.Unlock()
	return el.nomination.ShutDownCallback()
}

// Resign gives up leadership without leaving the election.
func (el *election) Resign() {
	el.metrics.Resigned.Inc(1)
	el.candidate.Resign()
}

// IsLeader returns whether this candidate currently holds leadership. A
// stopped candidate reports false even if the underlying candidate still
// claims the leader slot.
func (el *election) IsLeader() bool {
	el.Lock()
	defer el.Unlock()
	return el.running && el.candidate.IsLeader()
}

// electionZkPath returns the ZK path leaders campaign on for a role. libkv
// paths must not carry a leading slash.
func electionZkPath(rootPath string, role string) string {
	return strings.TrimPrefix(path.Join(rootPath, role, "leader"), "/")
}
