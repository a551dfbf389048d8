package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("tape")

	m.LineRead(FeedTrades)
	m.LineRead(FeedTrades)
	m.RecordAccepted(FeedTrades)
	m.LineRejected(FeedTrades)
	m.IngestAborted(FeedCharts)
	m.DayIngested()
	m.ObserveIngest(FeedTrades, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.linesRead.WithLabelValues(FeedTrades)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.recordsAccepted.WithLabelValues(FeedTrades)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.linesRejected.WithLabelValues(FeedTrades)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ingestAborts.WithLabelValues(FeedCharts)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.daysIngested))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.LineRead(FeedTrades)
		m.RecordAccepted(FeedTrades)
		m.LineRejected(FeedTrades)
		m.IngestAborted(FeedTrades)
		m.DayIngested()
		m.ObserveIngest(FeedTrades, time.Now())
	})
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New("tape")
	m.LineRejected(FeedCharts)

	path := filepath.Join(t.TempDir(), "tape.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tape_lines_rejected_total{feed="charts"} 1`)
}
