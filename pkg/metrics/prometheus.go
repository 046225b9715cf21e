// Package metrics provides Prometheus instrumentation for the leash
// controller. There is no scrape endpoint in this process; collectors
// live on a custom registry that tests and embedding hosts can Gather
// from directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the controller.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	enabled   bool
	registry  prometheus.Registerer

	// Input pipeline
	samplesTotal     *prometheus.CounterVec
	samplesMalformed prometheus.Counter

	// Throttle outcomes
	eventsAdmitted   *prometheus.CounterVec
	eventsSuppressed *prometheus.CounterVec
	stopEvents       *prometheus.CounterVec

	// Log store
	logSize      prometheus.Gauge
	logEvictions prometheus.Counter

	// Live state
	activeDrags prometheus.Gauge

	// Export
	exportsTotal prometheus.Counter
	exportErrors prometheus.Counter

	// Sample feed
	feedDepth       prometheus.Gauge
	feedDropped     prometheus.Counter
	feedPumpLatency prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "leash",
		subsystem: "controller",
		buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50},
		enabled:   true,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.enabled {
		return m
	}
	m.register()
	return m
}

func (m *Manager) register() {
	factory := promauto.With(m.registry)

	m.samplesTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "samples_total",
		Help:      "Raw pointer samples received, by source and kind.",
	}, []string{"source", "kind"})

	m.samplesMalformed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "samples_malformed_total",
		Help:      "Pointer samples ignored for missing coordinates or geometry.",
	})

	m.eventsAdmitted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_admitted_total",
		Help:      "Move events admitted past the throttle into the log.",
	}, []string{"source"})

	m.eventsSuppressed = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_suppressed_total",
		Help:      "Move events dropped inside an open throttle window.",
	}, []string{"source"})

	m.stopEvents = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stop_events_total",
		Help:      "Terminal zero-vector events logged on drag end.",
	}, []string{"source"})

	m.logSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "log_size",
		Help:      "Current number of entries held by the log store.",
	})

	m.logEvictions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "log_evictions_total",
		Help:      "Oldest entries evicted when the log exceeded capacity.",
	})

	m.activeDrags = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_drags",
		Help:      "Number of joysticks currently being dragged (0-2).",
	})

	m.exportsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Successful log exports.",
	})

	m.exportErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_errors_total",
		Help:      "Export attempts that failed or found an empty log.",
	})

	m.feedDepth = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_depth",
		Help:      "Pointer samples waiting in the feed queue.",
	})

	m.feedDropped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_dropped_total",
		Help:      "Pointer samples rejected by a full or closed feed queue.",
	})

	m.feedPumpLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_pump_latency_ms",
		Help:      "Latency of delivering one sample from the feed to the controller.",
		Buckets:   m.buckets,
	})
}

// Registry returns the registry backing the global manager, for tests
// and hosts that want to expose or inspect the collectors.
func Registry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordSample counts one raw pointer sample.
func RecordSample(source, kind string) {
	if globalManager.enabled {
		globalManager.samplesTotal.WithLabelValues(source, kind).Inc()
	}
}

// RecordMalformedSample counts a sample ignored as a no-op.
func RecordMalformedSample() {
	if globalManager.enabled {
		globalManager.samplesMalformed.Inc()
	}
}

// RecordAdmitted counts a move event admitted into the log.
func RecordAdmitted(source string) {
	if globalManager.enabled {
		globalManager.eventsAdmitted.WithLabelValues(source).Inc()
	}
}

// RecordSuppressed counts a move event dropped by the throttle.
func RecordSuppressed(source string) {
	if globalManager.enabled {
		globalManager.eventsSuppressed.WithLabelValues(source).Inc()
	}
}

// RecordStopEvent counts a terminal zero-vector admission.
func RecordStopEvent(source string) {
	if globalManager.enabled {
		globalManager.stopEvents.WithLabelValues(source).Inc()
	}
}

// UpdateLogSize sets the current log store size.
func UpdateLogSize(n int) {
	if globalManager.enabled {
		globalManager.logSize.Set(float64(n))
	}
}

// RecordLogEviction counts one evicted entry.
func RecordLogEviction() {
	if globalManager.enabled {
		globalManager.logEvictions.Inc()
	}
}

// UpdateActiveDrags sets the number of joysticks currently dragged.
func UpdateActiveDrags(n int) {
	if globalManager.enabled {
		globalManager.activeDrags.Set(float64(n))
	}
}

// RecordExport counts a successful export.
func RecordExport() {
	if globalManager.enabled {
		globalManager.exportsTotal.Inc()
	}
}

// RecordExportError counts a failed or empty export attempt.
func RecordExportError() {
	if globalManager.enabled {
		globalManager.exportErrors.Inc()
	}
}

// UpdateFeedDepth sets the number of queued pointer samples.
func UpdateFeedDepth(n int) {
	if globalManager.enabled {
		globalManager.feedDepth.Set(float64(n))
	}
}

// RecordFeedDrop counts a sample the feed could not accept.
func RecordFeedDrop() {
	if globalManager.enabled {
		globalManager.feedDropped.Inc()
	}
}

// RecordPumpLatency observes one feed delivery latency in milliseconds.
func RecordPumpLatency(ms float64) {
	if globalManager.enabled {
		globalManager.feedPumpLatency.Observe(ms)
	}
}
