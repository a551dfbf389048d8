package recorder

import (
	"TradeTape/internal/calculator"
	"TradeTape/internal/tradeday"
)

// ChartResult holds a summarized chart export.
type ChartResult struct {
	Symbol  string
	Source  string
	Summary *calculator.ChartSummary
}

// Recorder receives the results of a batch run.
type Recorder interface {
	RecordDay(symbol string, day *tradeday.TradingDay) error
	RecordBatch(symbol string, days []*tradeday.TradingDay) error
	RecordChart(res *ChartResult) error
	Close() error
}
