// Package runner ingests the exports of a ticker one file after another and
// hands the results to a recorder.
package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"TradeTape/internal/calculator"
	"TradeTape/internal/collector"
	"TradeTape/internal/config"
	"TradeTape/internal/metrics"
	"TradeTape/internal/model"
	"TradeTape/internal/parser"
	"TradeTape/internal/recorder"
	"TradeTape/internal/tradeday"
)

// ErrNoTradeFiles is returned when a ticker's glob matches nothing.
var ErrNoTradeFiles = errors.New("no trade files")

// Result is the outcome of one ticker run.
type Result struct {
	RunID         string
	Symbol        string
	Days          []*tradeday.TradingDay
	Trades        []*collector.IngestStats
	Charts        []*recorder.ChartResult
	ChartFailures []error
}

// Runner executes batch runs. Runs are sequential; a Runner must not be
// shared by concurrent callers.
type Runner struct {
	Config   *config.Config
	Recorder recorder.Recorder
	Metrics  *metrics.Metrics
	log      *zap.Logger
}

// New creates a Runner. A nil recorder discards results.
func New(cfg *config.Config, rec recorder.Recorder, m *metrics.Metrics, log *zap.Logger) *Runner {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Config: cfg, Recorder: rec, Metrics: m, log: log}
}

// RunAll runs every configured ticker and stops at the first hard failure.
func (r *Runner) RunAll(ctx context.Context) error {
	for _, t := range r.Config.Tickers {
		if _, err := r.RunTicker(ctx, t); err != nil {
			return fmt.Errorf("ticker %s: %w", t.Symbol, err)
		}
	}
	return nil
}

// RunTicker ingests the files matched by t.Trades in name order, then the
// chart files of t.
func (r *Runner) RunTicker(ctx context.Context, t config.Ticker) (*Result, error) {
	files, err := filepath.Glob(t.Trades)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", t.Trades, err)
	}
	if len(files) == 0 && len(t.Charts) == 0 {
		return nil, fmt.Errorf("%w match %q", ErrNoTradeFiles, t.Trades)
	}
	return r.RunFiles(ctx, t, files)
}

// RunFiles ingests the given trade files instead of t.Trades. Day ordinals
// follow the sorted file names, starting at 1.
func (r *Runner) RunFiles(ctx context.Context, t config.Ticker, tradeFiles []string) (*Result, error) {
	files := append([]string(nil), tradeFiles...)
	sort.Strings(files)

	res := &Result{RunID: uuid.New().String(), Symbol: t.Symbol}
	log := r.log.With(zap.String("run_id", res.RunID), zap.String("ticker", t.Symbol))
	log.Info("batch run started", zap.Int("trade_files", len(files)), zap.Int("chart_files", len(t.Charts)))

	policy := r.Config.Policy(t)
	col := r.newCollector(*policy, log)

	defer func() {
		if path := r.Config.Metrics.Textfile; path != "" {
			if err := r.Metrics.WriteTextfile(path); err != nil {
				log.Error("write metrics textfile failed", zap.String("path", path), zap.Error(err))
			}
		}
	}()

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		src, err := collector.OpenFile(path, collector.Preamble{
			SkipLines: r.Config.Feed.HeaderSkipLines,
			DateLine:  r.Config.Feed.DateLineIndex,
		})
		if err != nil {
			return res, err
		}
		day := tradeday.New(src.Name(), src.DateLabel(), policy)
		stats, err := col.IngestTrades(src, day)
		if stats != nil {
			res.Trades = append(res.Trades, stats)
		}
		if err != nil {
			return res, err
		}
		if err := day.SetDayOrdinal(i + 1); err != nil {
			return res, err
		}
		res.Days = append(res.Days, day)
		log.Info("day ingested",
			zap.String("source", stats.Source),
			zap.Int("day", day.DayOrdinal()),
			zap.Int("accepted", stats.Accepted),
			zap.Int("rejected", stats.Rejected))

		if err := r.Recorder.RecordDay(t.Symbol, day); err != nil {
			return res, fmt.Errorf("record day %s: %w", day.Source(), err)
		}
	}
	if len(res.Days) > 0 {
		if err := r.Recorder.RecordBatch(t.Symbol, res.Days); err != nil {
			return res, fmt.Errorf("record batch: %w", err)
		}
	}

	for _, path := range t.Charts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := r.runChart(col, t.Symbol, path, policy.Scale, res, log); err != nil {
			return res, err
		}
	}

	log.Info("batch run finished",
		zap.Int("days", len(res.Days)),
		zap.Int("charts", len(res.Charts)),
		zap.Int("chart_failures", len(res.ChartFailures)))
	return res, nil
}

// runChart ingests one chart export. A bad chart is reported in res and
// does not fail the run.
func (r *Runner) runChart(col *collector.Collector, symbol, path string, scale int32, res *Result, log *zap.Logger) error {
	src, err := collector.OpenFile(path, collector.Preamble{DateLine: -1})
	if err != nil {
		return err
	}
	bars, _, err := col.IngestCharts(src)
	if err != nil {
		var ce *parser.ChartParseError
		if !errors.As(err, &ce) {
			return err
		}
		log.Warn("chart ingestion aborted", zap.String("source", src.Name()), zap.Int("bars_read", len(bars)), zap.Error(err))
		res.ChartFailures = append(res.ChartFailures, err)
		return nil
	}

	summary, err := calculator.SummarizeChart(bars, scale, r.Config.Chart.SMAPeriod, r.Config.Chart.RSIPeriod)
	if err != nil {
		log.Warn("chart not summarized", zap.String("source", src.Name()), zap.Error(err))
		res.ChartFailures = append(res.ChartFailures, fmt.Errorf("summarize %s: %w", src.Name(), err))
		return nil
	}
	cr := &recorder.ChartResult{Symbol: symbol, Source: src.Name(), Summary: summary}
	res.Charts = append(res.Charts, cr)
	if err := r.Recorder.RecordChart(cr); err != nil {
		return fmt.Errorf("record chart %s: %w", src.Name(), err)
	}
	return nil
}

func (r *Runner) newCollector(policy model.NumericPolicy, log *zap.Logger) *collector.Collector {
	delim := r.Config.Feed.DelimiterRune()

	trades := parser.NewTradeParser(policy, log)
	trades.Delimiter = delim
	trades.SpecialCondition = r.Config.Feed.SpecialCondition

	charts := parser.NewChartParser()
	charts.Delimiter = delim

	col := collector.NewCollector(trades, charts, r.Metrics, log)
	col.TradeFooter = collector.TradeFooter(delim)
	col.ChartFooter = collector.ChartDisclaimer(r.Config.Feed.ChartDisclaimer)
	return col
}
