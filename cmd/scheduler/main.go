package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"

	sched "github.com/mesos/mesos-go/api/v0/scheduler"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	"gopkg.in/alecthomas/kingpin.v2"

	common_config "github.com/tarnfeld/spark/pkg/common/config"
	"github.com/tarnfeld/spark/pkg/common/metrics"
	"github.com/tarnfeld/spark/pkg/leader"
	"github.com/tarnfeld/spark/pkg/mesos"
	"github.com/tarnfeld/spark/pkg/mesos/dispatcher"
	"github.com/tarnfeld/spark/pkg/mesos/executorinfo"
	"github.com/tarnfeld/spark/pkg/scheduler/fifo"
	"github.com/tarnfeld/spark/pkg/storage"
	"github.com/tarnfeld/spark/pkg/storage/cassandra"
)

const _electionRole = "scheduler"

var (
	version string
	app     = kingpin.New("spark-scheduler", "Mesos scheduler adapter")

	debug = app.Flag(
		"debug", "enable debug logging").
		Short('d').
		Default("false").
		Envar("ENABLE_DEBUG_LOGGING").
		Bool()

	cfgFiles = app.Flag(
		"config",
		"YAML config files (can be provided multiple times to merge configs)").
		Short('c').
		Required().
		ExistingFiles()

	mesosMaster = app.Flag(
		"master",
		"Mesos master location (mesos.master override) "+
			"(set $MESOS_MASTER to override)").
		Envar("MESOS_MASTER").
		String()

	electionZkServers = app.Flag(
		"election-zk-server",
		"Election Zookeeper servers. Specify multiple times for multiple "+
			"servers (election.zk_servers override) "+
			"(set $ELECTION_ZK_SERVERS to override)").
		Envar("ELECTION_ZK_SERVERS").
		Strings()

	httpPort = app.Flag(
		"http-port", "Health/metrics HTTP port (http_port override)").
		Envar("HTTP_PORT").
		Int()
)

func main() {
	app.Version(version)
	app.HelpFlag.Short('h')
	kingpin.MustParse(app.Parse(os.Args[1:]))

	log.SetFormatter(&log.JSONFormatter{})
	initialLevel := log.InfoLevel
	if *debug {
		initialLevel = log.DebugLevel
	}
	log.SetLevel(initialLevel)

	log.WithField("files", *cfgFiles).Info("Loading scheduler config")
	var cfg Config
	if err := common_config.Parse(&cfg, *cfgFiles...); err != nil {
		log.WithError(err).Fatal("Cannot parse yaml config")
	}

	if *mesosMaster != "" {
		cfg.Mesos.Master = *mesosMaster
	}
	if len(*electionZkServers) > 0 {
		cfg.Election.ZKServers = *electionZkServers
	}
	if *httpPort != 0 {
		cfg.HTTPPort = *httpPort
	}

	rootScope, scopeCloser, mux := metrics.InitScope(
		&cfg.Metrics, "spark_scheduler", metrics.FlushInterval)
	defer scopeCloser.Close()

	if cfg.HTTPPort != 0 {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.HTTPPort)
			log.WithField("addr", addr).Info("Serving health and metrics")
			if err := nethttp.ListenAndServe(addr, mux); err != nil {
				log.WithError(err).Fatal("HTTP server failed")
			}
		}()
	}

	store := newFrameworkStore(&cfg, rootScope)
	frameworkInfo := mesos.NewFrameworkInfo(
		context.Background(), cfg.Mesos.Framework, store)

	taskScheduler := fifo.New(cfg.Scheduler.CPUsPerTask)
	disp := dispatcher.New(
		cfg.Dispatch,
		taskScheduler,
		executorinfo.NewBuilder(cfg.Executor),
		rootScope,
	)
	handler := mesos.NewHandler(
		disp, store, cfg.Mesos.Framework.Name, rootScope)

	driver, err := sched.NewMesosSchedulerDriver(sched.DriverConfig{
		Scheduler: handler,
		Framework: frameworkInfo,
		Master:    cfg.Mesos.Master,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create scheduler driver")
	}

	if len(cfg.Election.ZKServers) == 0 {
		log.Info("No election configured, registering directly")
		status, err := driver.Run()
		log.WithFields(log.Fields{
			"status": status.String(),
			"error":  err,
		}).Info("Driver stopped")
		return
	}

	srv := &server{driver: driver}
	candidate, err := leader.NewCandidate(
		cfg.Election, rootScope, _electionRole, srv)
	if err != nil {
		log.WithError(err).Fatal("Failed to create leader candidate")
	}
	if err := candidate.Start(); err != nil {
		log.WithError(err).Fatal("Failed to start leader election")
	}

	select {}
}

func newFrameworkStore(cfg *Config, scope tally.Scope) storage.FrameworkInfoStore {
	if cfg.Storage.Cassandra == nil {
		log.Warn("No storage configured, framework id will not survive restarts")
		return storage.NewInMemoryStore()
	}
	store, err := cassandra.NewStore(cfg.Storage.Cassandra, scope)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect framework store")
	}
	return store
}
