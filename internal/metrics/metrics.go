// Package metrics exposes Prometheus counters and histograms for job
// processing. The core only increments these; scraping an HTTP /metrics
// endpoint is the external host's concern, not the core's.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles the metrics one job instance reports against. Each
// escprender.Job gets its own Registry backed by a private
// prometheus.Registerer so repeated jobs in one process don't collide on
// metric registration.
type Registry struct {
	JobDuration         prometheus.Histogram
	CommandsProcessed   prometheus.Counter
	UnsupportedCommands *prometheus.CounterVec
	BytesProcessed      prometheus.Counter
	TokenizeErrors      prometheus.Counter
}

// NewRegistry registers all job metrics against reg (typically
// prometheus.NewRegistry() for test isolation, or
// prometheus.DefaultRegisterer for a long-running host process).
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		JobDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "escprender",
			Name:      "job_duration_seconds",
			Help:      "Wall-clock time spent converting one ESC/P job to a page document.",
			Buckets:   prometheus.DefBuckets,
		}),
		CommandsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "escprender",
			Name:      "commands_processed_total",
			Help:      "Number of tokenizer commands dispatched to a handler.",
		}),
		UnsupportedCommands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "escprender",
			Name:      "unsupported_commands_total",
			Help:      "Commands recognized by the tokenizer but not handled, by command name.",
		}, []string{"command"}),
		BytesProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "escprender",
			Name:      "bytes_processed_total",
			Help:      "Input bytes consumed across all jobs.",
		}),
		TokenizeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "escprender",
			Name:      "tokenize_errors_total",
			Help:      "Fatal tokenization errors that aborted a job.",
		}),
	}
}
