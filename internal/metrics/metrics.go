// Package metrics counts ingestion outcomes per feed. Counters can be written
// to a node_exporter textfile after a run; nothing listens on the network.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed labels.
const (
	FeedTrades = "trades"
	FeedCharts = "charts"
)

// Metrics holds the ingestion collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	linesRead       *prometheus.CounterVec
	recordsAccepted *prometheus.CounterVec
	linesRejected   *prometheus.CounterVec
	ingestAborts    *prometheus.CounterVec
	ingestDuration  *prometheus.HistogramVec
	daysIngested    prometheus.Counter
}

// New creates the collectors under namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		linesRead: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_read_total",
			Help:      "Data lines read, excluding preamble, header and footer.",
		}, []string{"feed"}),
		recordsAccepted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_accepted_total",
			Help:      "Lines parsed into records.",
		}, []string{"feed"}),
		linesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_rejected_total",
			Help:      "Lines that failed to parse.",
		}, []string{"feed"}),
		ingestAborts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_aborts_total",
			Help:      "Ingestion passes stopped before the end of input.",
		}, []string{"feed"}),
		ingestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Wall time of one ingestion pass.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"feed"}),
		daysIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "days_ingested_total",
			Help:      "Trading days fully ingested.",
		}),
	}
}

func (m *Metrics) LineRead(feed string) {
	if m != nil {
		m.linesRead.WithLabelValues(feed).Inc()
	}
}

func (m *Metrics) RecordAccepted(feed string) {
	if m != nil {
		m.recordsAccepted.WithLabelValues(feed).Inc()
	}
}

func (m *Metrics) LineRejected(feed string) {
	if m != nil {
		m.linesRejected.WithLabelValues(feed).Inc()
	}
}

func (m *Metrics) IngestAborted(feed string) {
	if m != nil {
		m.ingestAborts.WithLabelValues(feed).Inc()
	}
}

func (m *Metrics) DayIngested() {
	if m != nil {
		m.daysIngested.Inc()
	}
}

// ObserveIngest records the duration of a pass that started at start.
func (m *Metrics) ObserveIngest(feed string, start time.Time) {
	if m != nil {
		m.ingestDuration.WithLabelValues(feed).Observe(time.Since(start).Seconds())
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the current values in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
