package recorder

import (
	"TradeTape/internal/tradeday"
)

// NoopRecorder discards everything.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDay(_ string, _ *tradeday.TradingDay) error      { return nil }
func (n *NoopRecorder) RecordBatch(_ string, _ []*tradeday.TradingDay) error { return nil }
func (n *NoopRecorder) RecordChart(_ *ChartResult) error                     { return nil }
func (n *NoopRecorder) Close() error                                         { return nil }
