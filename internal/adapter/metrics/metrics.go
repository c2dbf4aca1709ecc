package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "transit_complaints"

// APIMetrics holds the Prometheus metrics of the complaints API.
type APIMetrics struct {
	SubmissionsTotal    *prometheus.CounterVec
	SubmissionBytes     prometheus.Counter
	ListRequestsTotal   *prometheus.CounterVec
	ComplaintsCacheHit  prometheus.Counter
	ComplaintsCacheMiss prometheus.Counter
}

// NewAPIMetrics registers the API metrics with reg.
func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	f := promauto.With(reg)
	return &APIMetrics{
		SubmissionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total number of complaint submissions by status.",
		}, []string{"status"}), // status: accepted, error_parse, error_size, error_validation, error_sink
		SubmissionBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "bytes_total",
			Help:      "Total number of submission bytes accepted.",
		}),
		ListRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "read",
			Name:      "list_requests_total",
			Help:      "Total number of complaint list requests by status.",
		}, []string{"status"}), // status: ok, error
		ComplaintsCacheHit: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "read",
			Name:      "cache_hits_total",
			Help:      "Total number of complaint list cache hits.",
		}),
		ComplaintsCacheMiss: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "read",
			Name:      "cache_misses_total",
			Help:      "Total number of complaint list cache misses.",
		}),
	}
}

// ConsumerMetrics holds the Prometheus metrics of the submission consumer.
type ConsumerMetrics struct {
	BatchesTotal   *prometheus.CounterVec
	RecordsWritten prometheus.Counter
	RecordsDLQ     prometheus.Counter
	BatchDuration  prometheus.Histogram
}

// NewConsumerMetrics registers the consumer metrics with reg.
func NewConsumerMetrics(reg prometheus.Registerer) *ConsumerMetrics {
	f := promauto.With(reg)
	return &ConsumerMetrics{
		BatchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "batches_total",
			Help:      "Total number of processed batches by outcome.",
		}, []string{"outcome"}), // outcome: written, dead_lettered, failed
		RecordsWritten: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "records_written_total",
			Help:      "Total number of submissions written to Postgres.",
		}),
		RecordsDLQ: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "records_dead_lettered_total",
			Help:      "Total number of submissions moved to the dead-letter stream.",
		}),
		BatchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "consumer",
			Name:      "batch_duration_seconds",
			Help:      "Time spent writing one batch, retries included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// DashboardMetrics holds the Prometheus metrics of the dashboard backend.
type DashboardMetrics struct {
	PollsTotal   *prometheus.CounterVec
	PollDuration prometheus.Histogram
	Records      prometheus.Gauge
	LastSuccess  prometheus.Gauge
	SSEClients   prometheus.Gauge
}

// NewDashboardMetrics registers the dashboard metrics with reg.
func NewDashboardMetrics(reg prometheus.Registerer) *DashboardMetrics {
	f := promauto.With(reg)
	return &DashboardMetrics{
		PollsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "polls_total",
			Help:      "Total number of upstream polls by outcome.",
		}, []string{"outcome"}), // outcome: success, error
		PollDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "poll_duration_seconds",
			Help:      "Duration of one poll, retries included.",
			Buckets:   prometheus.DefBuckets,
		}),
		Records: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "records",
			Help:      "Number of records held from the last successful poll.",
		}),
		LastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful poll.",
		}),
		SSEClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "sse_clients",
			Help:      "Number of connected event stream clients.",
		}),
	}
}
