// Package storage persists the framework's registration identity so a
// restarted or failed-over instance re-registers with Mesos under the same
// framework id instead of being treated as a brand new framework.
package storage

import (
	"context"
	"fmt"
	"sync"
)

// FrameworkInfoStore reads and writes registration state per framework name.
type FrameworkInfoStore interface {
	SetMesosFrameworkID(ctx context.Context, frameworkName string, frameworkID string) error
	GetFrameworkID(ctx context.Context, frameworkName string) (string, error)
}

// ErrFrameworkNotFound is returned when no registration state exists for a
// framework name.
type ErrFrameworkNotFound struct {
	FrameworkName string
}

func (e *ErrFrameworkNotFound) Error() string {
	return fmt.Sprintf("framework info not found for framework %v", e.FrameworkName)
}

// InMemoryStore is a FrameworkInfoStore for tests and single-instance
// deployments without a database.
type InMemoryStore struct {
	sync.Mutex
	frameworkIDs map[string]string
}

// NewInMemoryStore creates an empty InMemoryStore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{frameworkIDs: make(map[string]string)}
}

// SetMesosFrameworkID stores the framework id for a framework name.
func (s *InMemoryStore) SetMesosFrameworkID(
	_ context.Context, frameworkName string, frameworkID string) error {
	s.Lock()
	defer s.Unlock()
	s.frameworkIDs[frameworkName] = frameworkID
	return nil
}

// GetFrameworkID reads the framework id for a framework name.
func (s *InMemoryStore) GetFrameworkID(
	_ context.Context, frameworkName string) (string, error) {
	s.Lock()
	defer s.Unlock()
	id, ok := s.frameworkIDs[frameworkName]
	if !ok {
		return "", &ErrFrameworkNotFound{FrameworkName: frameworkName}
	}
	return id, nil
}
