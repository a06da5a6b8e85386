// Package executorinfo builds the mesos ExecutorInfo used to bootstrap a
// long-lived executor on a worker the framework accepts an offer from.
package executorinfo

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/gogo/protobuf/proto"
	mesos "github.com/mesos/mesos-go/api/v0/mesosproto"
	log "github.com/sirupsen/logrus"

	"github.com/tarnfeld/spark/pkg/common/util"
	"github.com/tarnfeld/spark/pkg/mesos/container"
)

const (
	// Display name of the executor in the Mesos UI.
	_executorName = "spark-executor"

	// Entry point of the executor process, relative to the distribution root.
	_entryPoint = "bin/spark-executor"

	_defaultMemoryMB = 1024
)

// Config holds everything needed to construct an executor launch descriptor.
// All keys are optional; an empty docker image disables containerization.
type Config struct {
	// Home is the install path of the distribution on worker hosts, used
	// when no archive URI is configured.
	Home string `yaml:"home"`

	// URI points at a distribution archive fetched and extracted into the
	// sandbox before the executor is started.
	URI string `yaml:"uri"`

	// MemoryMB is the memory reservation of the executor itself, separate
	// from per-task cpu shares.
	MemoryMB float64 `yaml:"memory_mb"`

	// Env is extra environment passed to the executor process.
	Env map[string]string `yaml:"env"`

	Docker DockerConfig `yaml:"docker"`
}

// DockerConfig describes the optional executor container.
type DockerConfig struct {
	Image        string `yaml:"image"`
	Volumes      string `yaml:"volumes"`
	PortMappings string `yaml:"port_mappings"`
	Network      string `yaml:"network"`
}

// Builder constructs ExecutorInfo records from a fixed configuration.
// Build is idempotent per worker; callers cache the result instead of
// rebuilding per task.
type Builder struct {
	cfg Config
}

// NewBuilder creates a Builder for the given executor configuration.
func NewBuilder(cfg Config) *Builder {
	if cfg.MemoryMB <= 0 {
		cfg.MemoryMB = _defaultMemoryMB
	}
	return &Builder{cfg: cfg}
}

// Build returns the launch descriptor for an executor on the given worker.
// It performs no I/O.
func (b *Builder) Build(workerID string) *mesos.ExecutorInfo {
	info := &mesos.ExecutorInfo{
		ExecutorId: &mesos.ExecutorID{Value: proto.String(workerID)},
		Name:       proto.String(_executorName),
		Command:    b.buildCommand(),
		Resources: []*mesos.Resource{
			util.NewResourceBuilder().
				WithName("mem").
				WithValue(b.cfg.MemoryMB).
				Build(),
		},
	}
	if b.cfg.Docker.Image != "" {
		info.Container = b.buildContainer()
	}
	return info
}

// buildCommand picks between running the executor out of a fetched archive
// and running it from a preinstalled home path. The archive extracts into a
// directory we only know by prefix, hence the shell wildcard.
func (b *Builder) buildCommand() *mesos.CommandInfo {
	cmd := &mesos.CommandInfo{
		Shell:       proto.Bool(true),
		Environment: buildEnvironment(b.cfg.Env),
	}
	if b.cfg.URI != "" {
		cmd.Value = proto.String(
			fmt.Sprintf("cd %s*; ./%s", archivePrefix(b.cfg.URI), _entryPoint))
		cmd.Uris = []*mesos.CommandInfo_URI{
			{Value: proto.String(b.cfg.URI)},
		}
		return cmd
	}
	cmd.Value = proto.String(path.Join(b.cfg.Home, _entryPoint))
	return cmd
}

func (b *Builder) buildContainer() *mesos.ContainerInfo {
	docker := &mesos.ContainerInfo_DockerInfo{
		Image:        proto.String(b.cfg.Docker.Image),
		PortMappings: container.ParsePortMappings(b.cfg.Docker.PortMappings),
	}
	if b.cfg.Docker.Network != "" {
		name := strings.ToUpper(b.cfg.Docker.Network)
		if value, ok := mesos.ContainerInfo_DockerInfo_Network_value[name]; ok {
			docker.Network = mesos.ContainerInfo_DockerInfo_Network(value).Enum()
		} else {
			log.WithField("network", b.cfg.Docker.Network).
				Warn("Unknown docker network mode, leaving unset")
		}
	}
	return &mesos.ContainerInfo{
		Type:    mesos.ContainerInfo_DOCKER.Enum(),
		Docker:  docker,
		Volumes: container.ParseVolumes(b.cfg.Docker.Volumes),
	}
}

// archivePrefix derives a wildcard-friendly prefix of the directory the
// archive extracts into: the last path element up to its first dot.
func archivePrefix(uri string) string {
	base := uri
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.Index(base, "."); idx >= 0 {
		base = base[:idx]
	}
	return base
}

// buildEnvironment maps config env vars into the protobuf form, sorted so
// repeated builds compare equal.
func buildEnvironment(env map[string]string) *mesos.Environment {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	variables := make([]*mesos.Environment_Variable, 0, len(keys))
	for _, k := range keys {
		variables = append(variables, &mesos.Environment_Variable{
			Name:  proto.String(k),
			Value: proto.String(env[k]),
		})
	}
	return &mesos.Environment{Variables: variables}
}
