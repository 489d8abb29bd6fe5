package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "zero"

var durationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 300, 900}

var (
	// Server
	RequestsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "requests_received_total",
		Help:      "Total prove requests received",
	})

	RequestsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "requests_rejected_total",
		Help:      "Total prove requests rejected at intake",
	}, []string{"reason"})

	QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "queue_depth",
		Help:      "Prove requests waiting for the dispatcher",
	})

	// Dispatcher
	RequestsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatcher",
		Name:      "requests_completed_total",
		Help:      "Total prove requests processed, by outcome",
	}, []string{"status"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dispatcher",
		Name:      "fetch_duration_seconds",
		Help:      "Block input fetch duration",
		Buckets:   durationBuckets,
	}, []string{"source"})

	ProveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "dispatcher",
		Name:      "prove_duration_seconds",
		Help:      "Duration of a proving job, from submission to the last proof",
		Buckets:   durationBuckets,
	})

	BlocksProved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dispatcher",
		Name:      "blocks_proved_total",
		Help:      "Total blocks proved",
	})

	// Runtime
	TasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "runtime",
		Name:      "tasks_processed_total",
		Help:      "Total proving tasks processed, by outcome",
	}, []string{"status"})

	TaskDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "runtime",
		Name:      "task_duration_seconds",
		Help:      "Duration of a single block proving task",
		Buckets:   durationBuckets,
	})
)

// Outcome labels
const (
	StatusOK    = "ok"
	StatusError = "error"
)
