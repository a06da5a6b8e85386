package main

import (
	"fmt"
	"os"
	"sync"

	sched "github.com/mesos/mesos-go/api/v0/scheduler"
	log "github.com/sirupsen/logrus"
)

// server ties the scheduler driver lifecycle to leadership: only the leader
// registers with the Mesos master, and losing leadership aborts the driver
// so a standby can take over the registration.
type server struct {
	sync.Mutex

	driver  *sched.MesosSchedulerDriver
	running bool
}

// GainedLeadershipCallback starts the driver. Implements leader.Nomination.
func (s *server) GainedLeadershipCallback() error {
	s.Lock()
	defer s.Unlock()
	if s.running {
		return nil
	}
	s.running = true
	go func() {
		status, err := s.driver.Run()
		log.WithFields(log.Fields{
			"status": status.String(),
			"error":  err,
		}).Warn("Driver stopped")
	}()
	return nil
}

// LostLeadershipCallback stops the driver in failover mode, keeping the
// framework registration and its tasks alive for the new leader to pick up.
// Implements leader.Nomination.
func (s *server) LostLeadershipCallback() error {
	s.Lock()
	defer s.Unlock()
	if !s.running {
		return nil
	}
	s.running = false
	_, err := s.driver.Stop(true)
	return err
}

// ShutDownCallback stops the driver. Implements leader.Nomination.
func (s *server) ShutDownCallback() error {
	return s.LostLeadershipCallback()
}

// GetID returns the id this instance campaigns under. Implements
// leader.Nomination.
func (s *server) GetID() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return fmt.Sprintf("%s:%d", hostname, os.Getpid())
}
