package mesos

import (
	"context"

	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	log "github.com/sirupsen/logrus"

	"github.com/tarnfeld/spark/pkg/storage"
)

// Config for Mesos specific configuration
type Config struct {
	// Master is the Mesos master location, host:port or zk:// URL.
	Master string `yaml:"master" validate:"nonzero"`

	Framework *FrameworkConfig `yaml:"framework" validate:"nonzero"`
}

// FrameworkConfig for framework specific configuration
type FrameworkConfig struct {
	User            string  `yaml:"user"`
	Name            string  `yaml:"name"`
	Role            string  `yaml:"role"`
	Principal       string  `yaml:"principal"`
	Checkpoint      bool    `yaml:"checkpoint"`
	FailoverTimeout float64 `yaml:"failover_timeout"`
}

// NewFrameworkInfo builds the registration record for this framework. When a
// framework id from a previous registration is found in the store it is
// carried over so the master treats this instance as a failover rather than
// a new framework.
func NewFrameworkInfo(
	ctx context.Context,
	cfg *FrameworkConfig,
	store storage.FrameworkInfoStore) *mesos.FrameworkInfo {

	info := &mesos.FrameworkInfo{
		User:            proto.String(cfg.User),
		Name:            proto.String(cfg.Name),
		Checkpoint:      proto.Bool(cfg.Checkpoint),
		FailoverTimeout: proto.Float64(cfg.FailoverTimeout),
	}
	if cfg.Role != "" {
		info.Role = proto.String(cfg.Role)
	}
	if cfg.Principal != "" {
		info.Principal = proto.String(cfg.Principal)
	}

	frameworkID, err := store.GetFrameworkID(ctx, cfg.Name)
	if err != nil {
		if _, ok := err.(*storage.ErrFrameworkNotFound); !ok {
			log.WithError(err).
				WithField("framework_name", cfg.Name).
				Error("Failed to read stored framework id, registering as new")
		}
		return info
	}
	if frameworkID != "" {
		log.WithFields(log.Fields{
			"framework_name": cfg.Name,
			"framework_id":   frameworkID,
		}).Info("Reusing stored framework id")
		info.Id = &mesos.FrameworkID{Value: proto.String(frameworkID)}
	}
	return info
}
