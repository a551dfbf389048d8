package collector

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"TradeTape/internal/metrics"
	"TradeTape/internal/model"
	"TradeTape/internal/parser"
	"TradeTape/internal/tradeday"
)

// DefaultChartDisclaimer starts the legal footer of chart exports.
const DefaultChartDisclaimer = `"The data and information`

// IsTradeFooter reports whether line is the footer of a comma-delimited
// trade export.
func IsTradeFooter(line string) bool {
	return TradeFooter(parser.DefaultDelimiter)(line)
}

// TradeFooter returns a predicate matching the footer of a trade export
// delimited by delim: a row of empty quoted fields.
func TradeFooter(delim rune) func(string) bool {
	sep := string(delim)
	prefix := strings.Repeat(`""`+sep, 10)
	return func(line string) bool {
		if strings.HasPrefix(line, prefix) {
			return true
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		for _, f := range strings.Split(trimmed, sep) {
			if f != `""` {
				return false
			}
		}
		return true
	}
}

// ChartDisclaimer returns a predicate matching lines that start with prefix.
func ChartDisclaimer(prefix string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, prefix) }
}

// TradeParser parses one trade line.
type TradeParser interface {
	ParseTrade(line string) (*model.TradeObservation, error)
}

// ChartParser parses one chart line.
type ChartParser interface {
	ParseChartBar(line string) (*model.ChartBar, error)
}

// IngestStats describes one ingestion pass.
type IngestStats struct {
	Source   string
	Lines    int64 // data lines examined
	Accepted int
	Rejected int
	Footer   bool // stopped at a sentinel line rather than end of input
	Aborted  bool
	Failures []error
}

// Collector drives line sources through the parsers.
type Collector struct {
	Trades      TradeParser
	Charts      ChartParser
	TradeFooter func(string) bool
	ChartFooter func(string) bool
	Metrics     *metrics.Metrics
	log         *zap.Logger
}

// NewCollector creates a Collector with the default footer predicates.
func NewCollector(trades TradeParser, charts ChartParser, m *metrics.Metrics, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{
		Trades:      trades,
		Charts:      charts,
		TradeFooter: IsTradeFooter,
		ChartFooter: ChartDisclaimer(DefaultChartDisclaimer),
		Metrics:     m,
		log:         log,
	}
}

type ingestState int

const (
	awaitHeader ingestState = iota
	streaming
	done
)

type failurePolicy int

const (
	skipAndContinue failurePolicy = iota
	failFast
)

// IngestTrades appends every parseable line of src to day. A bad line is
// logged and skipped. IngestTrades owns src and closes it before returning.
func (c *Collector) IngestTrades(src LineSource, day *tradeday.TradingDay) (*IngestStats, error) {
	stats, err := c.drive(src, metrics.FeedTrades, c.TradeFooter, skipAndContinue, func(line string) error {
		obs, err := c.Trades.ParseTrade(line)
		if err != nil {
			var pe *parser.TradeParseError
			if !errors.As(err, &pe) {
				pe = &parser.TradeParseError{Column: -1, Data: line, Err: err}
			}
			pe.Source, pe.Line = src.Name(), src.LineNumber()
			return pe
		}
		if obs == nil {
			return fmt.Errorf("%w: trade parser returned no record for %s line %d",
				ErrInvariantViolation, src.Name(), src.LineNumber())
		}
		c.log.Debug("adding trade", zap.Stringer("trade", obs))
		day.Append(obs)
		return nil
	})
	if err == nil {
		c.Metrics.DayIngested()
	}
	return stats, err
}

// IngestCharts parses src into bars. The first bad line aborts the pass:
// the bars read so far are returned together with the *parser.ChartParseError.
// IngestCharts owns src and closes it before returning.
func (c *Collector) IngestCharts(src LineSource) ([]model.ChartBar, *IngestStats, error) {
	var bars []model.ChartBar
	stats, err := c.drive(src, metrics.FeedCharts, c.ChartFooter, failFast, func(line string) error {
		bar, err := c.Charts.ParseChartBar(line)
		if err != nil {
			var ce *parser.ChartParseError
			if !errors.As(err, &ce) {
				ce = &parser.ChartParseError{Column: -1, Data: line, Err: err}
			}
			ce.Source, ce.Line = src.Name(), src.LineNumber()
			return ce
		}
		if bar == nil {
			return fmt.Errorf("%w: chart parser returned no record for %s line %d",
				ErrInvariantViolation, src.Name(), src.LineNumber())
		}
		bars = append(bars, *bar)
		return nil
	})
	if err == nil {
		c.log.Info("loaded chart records", zap.String("source", src.Name()), zap.Int("records", len(bars)))
	}
	return bars, stats, err
}

// drive runs the AWAIT_HEADER -> STREAMING -> DONE state machine over src.
// accept returns nil for a stored record, a line-level parse error, or an
// error wrapping ErrInvariantViolation.
func (c *Collector) drive(src LineSource, feed string, isFooter func(string) bool, policy failurePolicy, accept func(string) error) (stats *IngestStats, err error) {
	stats = &IngestStats{Source: src.Name()}
	start := time.Now()
	defer func() {
		if cerr := src.Close(); cerr != nil {
			c.log.Error("closing source failed", zap.String("source", src.Name()), zap.Error(cerr))
			if err == nil {
				err = cerr
			}
		}
		c.Metrics.ObserveIngest(feed, start)
	}()

	state := awaitHeader
	for state != done {
		line, rerr := src.ReadLine()
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				state = done
				continue
			}
			var re *ResourceError
			if !errors.As(rerr, &re) {
				rerr = &ResourceError{Op: "read", Path: src.Name(), Err: rerr}
			}
			c.Metrics.IngestAborted(feed)
			return stats, rerr
		}

		switch state {
		case awaitHeader:
			c.log.Debug("throwing away header", zap.String("source", src.Name()), zap.String("line", line))
			state = streaming

		case streaming:
			if isFooter != nil && isFooter(line) {
				stats.Footer = true
				state = done
				continue
			}
			stats.Lines++
			c.Metrics.LineRead(feed)

			perr := accept(line)
			if perr == nil {
				stats.Accepted++
				c.Metrics.RecordAccepted(feed)
				continue
			}
			if errors.Is(perr, ErrInvariantViolation) {
				c.log.Error("parser contract violated", zap.String("source", src.Name()), zap.Error(perr))
				stats.Aborted = true
				c.Metrics.IngestAborted(feed)
				return stats, perr
			}

			stats.Rejected++
			stats.Failures = append(stats.Failures, perr)
			c.Metrics.LineRejected(feed)
			c.log.Error("error processing line",
				zap.String("source", src.Name()),
				zap.Int64("line", src.LineNumber()),
				zap.String("data", line),
				zap.Error(perr))

			if policy == failFast {
				stats.Aborted = true
				c.Metrics.IngestAborted(feed)
				return stats, perr
			}
		}
	}
	return stats, nil
}
