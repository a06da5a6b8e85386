package main

import (
	"github.com/tarnfeld/spark/pkg/common/metrics"
	"github.com/tarnfeld/spark/pkg/leader"
	"github.com/tarnfeld/spark/pkg/mesos"
	"github.com/tarnfeld/spark/pkg/mesos/dispatcher"
	"github.com/tarnfeld/spark/pkg/mesos/executorinfo"
	"github.com/tarnfeld/spark/pkg/storage/cassandra"
)

// Config holds the complete scheduler daemon configuration.
type Config struct {
	Mesos     mesos.Config          `yaml:"mesos"`
	Executor  executorinfo.Config   `yaml:"executor"`
	Dispatch  dispatcher.Config     `yaml:"dispatch"`
	Scheduler SchedulerConfig       `yaml:"scheduler"`
	Election  leader.ElectionConfig `yaml:"election"`
	Metrics   metrics.Config        `yaml:"metrics"`
	Storage   StorageConfig         `yaml:"storage"`

	// HTTPPort serves the health and metrics endpoints.
	HTTPPort int `yaml:"http_port"`
}

// SchedulerConfig configures the built-in task scheduler.
type SchedulerConfig struct {
	CPUsPerTask int `yaml:"cpus_per_task"`
}

// StorageConfig selects the framework info store backend. Without a
// cassandra section an in-memory store is used and failover reuses no
// framework id.
type StorageConfig struct {
	Cassandra *cassandra.Config `yaml:"cassandra"`
}
