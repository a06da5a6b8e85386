package metrics

import (
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/cactus/go-statsd-client/statsd"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"
	tallyprom "github.com/uber-go/tally/prometheus"
	tallystatsd "github.com/uber-go/tally/statsd"
)

// FlushInterval is the default interval at which buffered metrics are
// flushed to the configured reporter.
const FlushInterval = 1 * time.Second

// Config controls which metrics backend the root scope reports to.
type Config struct {
	Prometheus *prometheusConfig `yaml:"prometheus"`
	Statsd     *statsdConfig     `yaml:"statsd"`
}

type prometheusConfig struct {
	Enable bool `yaml:"enable"`
}

type statsdConfig struct {
	Enable   bool   `yaml:"enable"`
	Endpoint string `yaml:"endpoint"`
}

// InitScope initializes a root scope and its closer, plus an http mux serving
// the metrics exposition and health endpoints.
func InitScope(
	cfg *Config,
	rootName string,
	flushInterval time.Duration) (tally.Scope, io.Closer, *nethttp.ServeMux) {

	mux := nethttp.NewServeMux()
	opts := tally.ScopeOptions{
		Prefix:    rootName,
		Tags:      map[string]string{},
		Separator: ".",
	}
	var promHandler nethttp.Handler
	if cfg.Prometheus != nil && cfg.Prometheus.Enable {
		// tally panics on "-" in scope names.
		opts.Prefix = strings.Replace(rootName, "-", "_", -1)
		opts.Separator = "_"
		promReporter := tallyprom.NewReporter(tallyprom.Options{})
		opts.CachedReporter = promReporter
		promHandler = promReporter.HTTPHandler()
	} else if cfg.Statsd != nil && cfg.Statsd.Enable {
		log.Infof("Metrics configured with statsd endpoint %s", cfg.Statsd.Endpoint)
		c, err := statsd.NewClient(cfg.Statsd.Endpoint, "")
		if err != nil {
			log.Fatalf("Unable to setup statsd client: %v", err)
		}
		opts.Reporter = tallystatsd.NewReporter(c, tallystatsd.Options{})
	} else {
		log.Warn("No metrics backend configured, using a noop statsd client")
		c, _ := statsd.NewNoopClient()
		opts.Reporter = tallystatsd.NewReporter(c, tallystatsd.Options{})
	}

	if promHandler != nil {
		mux.Handle("/metrics", promHandler)
	}
	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	scope, closer := tally.NewRootScope(opts, flushInterval)
	return scope, closer, mux
}
