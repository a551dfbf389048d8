package recorder

import (
	"fmt"
	"io"
	"sync"

	"TradeTape/internal/report"
	"TradeTape/internal/tradeday"
)

// WriterRecorder prints formatted reports to an io.Writer.
// With Debug set, each day is followed by its pipe-delimited dump.
type WriterRecorder struct {
	w     io.Writer
	Debug bool
	mu    sync.Mutex
}

// NewWriterRecorder creates a recorder writing to w.
func NewWriterRecorder(w io.Writer, debug bool) *WriterRecorder {
	return &WriterRecorder{w: w, Debug: debug}
}

func (r *WriterRecorder) RecordDay(_ string, day *tradeday.TradingDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.w, report.FormatDay(day)); err != nil {
		return fmt.Errorf("write day report: %w", err)
	}
	if r.Debug {
		if _, err := fmt.Fprintln(r.w, day.DebugString()); err != nil {
			return fmt.Errorf("write day dump: %w", err)
		}
	}
	return nil
}

func (r *WriterRecorder) RecordBatch(symbol string, days []*tradeday.TradingDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintln(r.w, report.FormatBatch(symbol, days)); err != nil {
		return fmt.Errorf("write batch report: %w", err)
	}
	return nil
}

func (r *WriterRecorder) RecordChart(res *ChartResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.w, report.FormatChart(res.Symbol, res.Source, res.Summary)); err != nil {
		return fmt.Errorf("write chart report: %w", err)
	}
	return nil
}

func (r *WriterRecorder) Close() error { return nil }
