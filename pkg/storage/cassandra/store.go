// Package cassandra persists framework registration state in Cassandra so
// any scheduler instance that wins leadership can recover the framework id.
//
// Expected schema:
//
//	CREATE TABLE frameworks (
//	  framework_name text PRIMARY KEY,
//	  framework_id   text,
//	  update_host    text,
//	  update_time    timestamp
//	);
package cassandra

import (
	"context"
	"os"
	"time"

	"github.com/gocql/gocql"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/tarnfeld/spark/pkg/storage"
)

const (
	_defaultTimeout = 10 * time.Second

	_setFrameworkIDStmt = `INSERT INTO frameworks ` +
		`(framework_name, framework_id, update_host, update_time) VALUES (?, ?, ?, ?)`
	_getFrameworkIDStmt = `SELECT framework_id FROM frameworks WHERE framework_name = ?`
)

// Config is the connection configuration for the Cassandra backed store.
type Config struct {
	ContactPoints []string      `yaml:"contact_points" validate:"nonzero"`
	Port          int           `yaml:"port"`
	Keyspace      string        `yaml:"keyspace" validate:"nonzero"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"`
	Timeout       time.Duration `yaml:"timeout"`
	Consistency   string        `yaml:"consistency"`
}

// Store implements storage.FrameworkInfoStore on top of a Cassandra session.
type Store struct {
	session *gocql.Session
	metrics storeMetrics
}

type storeMetrics struct {
	readSuccess  tally.Counter
	readFail     tally.Counter
	writeSuccess tally.Counter
	writeFail    tally.Counter
}

// NewStore connects to the configured cluster and returns a Store. The
// session is kept for the lifetime of the process.
func NewStore(cfg *Config, parent tally.Scope) (*Store, error) {
	cluster := gocql.NewCluster(cfg.ContactPoints...)
	cluster.Keyspace = cfg.Keyspace
	if cfg.Port != 0 {
		cluster.Port = cfg.Port
	}
	cluster.Timeout = cfg.Timeout
	if cluster.Timeout == 0 {
		cluster.Timeout = _defaultTimeout
	}
	if cfg.Consistency != "" {
		cluster.Consistency = gocql.ParseConsistency(cfg.Consistency)
	}
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to cassandra")
	}

	scope := parent.SubScope("framework_store")
	return &Store{
		session: session,
		metrics: storeMetrics{
			readSuccess:  scope.Counter("read"),
			readFail:     scope.Counter("read_fail"),
			writeSuccess: scope.Counter("write"),
			writeFail:    scope.Counter("write_fail"),
		},
	}, nil
}

// SetMesosFrameworkID records the framework id the master assigned at
// registration, overwriting any previous id for the framework name.
func (s *Store) SetMesosFrameworkID(
	ctx context.Context, frameworkName string, frameworkID string) error {
	hostname, _ := os.Hostname()
	err := s.session.Query(
		_setFrameworkIDStmt, frameworkName, frameworkID, hostname, time.Now()).
		WithContext(ctx).
		Exec()
	if err != nil {
		s.metrics.writeFail.Inc(1)
		log.WithError(err).WithField("framework_name", frameworkName).
			Error("Failed to persist framework id")
		return err
	}
	s.metrics.writeSuccess.Inc(1)
	return nil
}

// GetFrameworkID reads the persisted framework id. A framework name that was
// never registered yields storage.ErrFrameworkNotFound.
func (s *Store) GetFrameworkID(
	ctx context.Context, frameworkName string) (string, error) {
	var frameworkID string
	err := s.session.Query(_getFrameworkIDStmt, frameworkName).
		WithContext(ctx).
		Scan(&frameworkID)
	if err == gocql.ErrNotFound {
		return "", &storage.ErrFrameworkNotFound{FrameworkName: frameworkName}
	}
	if err != nil {
		s.metrics.readFail.Inc(1)
		return "", err
	}
	s.metrics.readSuccess.Inc(1)
	return frameworkID, nil
}

// Close tears down the underlying session.
func (s *Store) Close() {
	s.session.Close()
}
