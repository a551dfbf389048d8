package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"TradeTape/internal/config"
	"TradeTape/internal/logger"
	"TradeTape/internal/metrics"
	"TradeTape/internal/recorder"
	"TradeTape/internal/runner"
	"TradeTape/internal/scheduler"
)

type listFlag []string

func (l *listFlag) String() string     { return strings.Join(*l, ",") }
func (l *listFlag) Set(v string) error { *l = append(*l, v); return nil }

func main() {
	os.Exit(run())
}

func run() int {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	var charts listFlag
	cfgPath := flag.String("config", defaultCfg, "config file path")
	symbol := flag.String("ticker", "", "ticker symbol; defaults to every configured ticker")
	flag.Var(&charts, "chart", "chart export to summarize (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: tape [-config path] [-ticker SYM] [-chart file]... [trade files...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	files := flag.Args()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	tickers, err := selectTickers(cfg, *symbol, charts)
	if err != nil {
		log.Error("select tickers", zap.Error(err))
		return 1
	}

	rec := recorder.NewWriterRecorder(os.Stdout, cfg.Report.Debug)
	defer rec.Close()
	r := runner.New(cfg, rec, metrics.New(cfg.Metrics.Namespace), log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ad-hoc run over explicit files.
	if len(files) > 0 || len(charts) > 0 {
		if len(tickers) != 1 {
			log.Error("explicit files need exactly one ticker, use -ticker", zap.Int("tickers", len(tickers)))
			return 1
		}
		if _, err := r.RunFiles(ctx, tickers[0], files); err != nil {
			log.Error("batch run failed", zap.Error(err))
			return 1
		}
		return 0
	}

	sched := scheduler.New(ctx, r, tickers, log)
	if cfg.Schedule.Cron == "" {
		if err := sched.RunNow(); err != nil {
			log.Error("batch run failed", zap.Error(err))
			return 1
		}
		return 0
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Error("register cron task", zap.Error(err))
		return 1
	}
	sched.Start()
	log.Info("tape is running, press Ctrl+C to stop", zap.String("cron", cfg.Schedule.Cron))

	<-ctx.Done()
	log.Info("shutdown signal received, stopping")
	sched.Stop()
	return 0
}

// selectTickers resolves the -ticker flag against the config. Charts given on
// the command line replace the configured ones.
func selectTickers(cfg *config.Config, symbol string, charts []string) ([]config.Ticker, error) {
	var tickers []config.Ticker
	switch {
	case symbol == "":
		tickers = append([]config.Ticker(nil), cfg.Tickers...)
	default:
		t, ok := cfg.Lookup(symbol)
		if !ok {
			t = config.Ticker{Symbol: symbol}
		}
		tickers = []config.Ticker{t}
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers configured")
	}
	if len(charts) > 0 {
		for i := range tickers {
			tickers[i].Charts = charts
		}
	}
	return tickers, nil
}
