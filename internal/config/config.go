package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"TradeTape/internal/logger"
	"TradeTape/internal/model"
)

// Feed describes the layout of the broker exports.
type Feed struct {
	HeaderSkipLines  int    `yaml:"header_skip_lines"`
	DateLineIndex    int    `yaml:"date_line_index"`
	Delimiter        string `yaml:"delimiter"`
	SpecialCondition string `yaml:"special_condition"`
	ChartDisclaimer  string `yaml:"chart_disclaimer_prefix"`
}

// Ticker lists the exports of one symbol. A non-nil Numeric replaces the
// top-level policy for this symbol.
type Ticker struct {
	Symbol  string               `yaml:"symbol"`
	Trades  string               `yaml:"trades"` // glob of daily trade files
	Charts  []string             `yaml:"charts"`
	Numeric *model.NumericPolicy `yaml:"numeric"`
}

// Config holds all application configuration.
type Config struct {
	Numeric      model.NumericPolicy `yaml:"numeric"`
	RoundingMode string              `yaml:"rounding_mode"`
	Feed         Feed                `yaml:"feed"`
	Tickers      []Ticker            `yaml:"tickers"`
	Chart        struct {
		SMAPeriod int `yaml:"sma_period"`
		RSIPeriod int `yaml:"rsi_period"`
	} `yaml:"chart"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Metrics struct {
		Namespace string `yaml:"namespace"`
		Textfile  string `yaml:"textfile"`
	} `yaml:"metrics"`
	Report struct {
		Debug bool `yaml:"debug"`
	} `yaml:"report"`
	Log logger.Config `yaml:"log"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and finally defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	// Zero is a meaningful value for these, so negative sentinels mark "unset".
	cfg := &Config{}
	cfg.Numeric = model.NumericPolicy{Scale: unset, Precision: unset}
	cfg.Feed.HeaderSkipLines = unset
	cfg.Feed.DateLineIndex = unset

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

const unset = -100

func applyEnv(cfg *Config) error {
	if v := os.Getenv("TAPE_TICKER"); v != "" {
		if len(cfg.Tickers) == 0 {
			cfg.Tickers = append(cfg.Tickers, Ticker{})
		}
		cfg.Tickers[0].Symbol = v
	}
	if v := os.Getenv("TAPE_TRADES"); v != "" {
		if len(cfg.Tickers) == 0 {
			cfg.Tickers = append(cfg.Tickers, Ticker{})
		}
		cfg.Tickers[0].Trades = v
	}
	if v := os.Getenv("TAPE_SCALE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("TAPE_SCALE: %w", err)
		}
		cfg.Numeric.Scale = int32(n)
	}
	if v := os.Getenv("TAPE_HEADER_SKIP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TAPE_HEADER_SKIP: %w", err)
		}
		cfg.Feed.HeaderSkipLines = n
	}
	if v := os.Getenv("TAPE_DATE_LINE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TAPE_DATE_LINE: %w", err)
		}
		cfg.Feed.DateLineIndex = n
	}
	if v := os.Getenv("TAPE_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("TAPE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TAPE_METRICS_FILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Numeric.Scale == unset {
		cfg.Numeric.Scale = 4
	}
	if cfg.Numeric.Precision == unset {
		cfg.Numeric.Precision = 16
	}
	if cfg.RoundingMode == "" {
		cfg.RoundingMode = model.RoundHalfUp
	}
	if cfg.Feed.HeaderSkipLines == unset {
		cfg.Feed.HeaderSkipLines = 4
	}
	if cfg.Feed.DateLineIndex == unset {
		cfg.Feed.DateLineIndex = 1
	}
	if cfg.Feed.Delimiter == "" {
		cfg.Feed.Delimiter = ","
	}
	if cfg.Feed.SpecialCondition == "" {
		cfg.Feed.SpecialCondition = "T"
	}
	if cfg.Feed.ChartDisclaimer == "" {
		cfg.Feed.ChartDisclaimer = `"The data and information`
	}
	if cfg.Chart.SMAPeriod == 0 {
		cfg.Chart.SMAPeriod = 20
	}
	if cfg.Chart.RSIPeriod == 0 {
		cfg.Chart.RSIPeriod = 14
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "tape"
	}
	def := logger.DefaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Format
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validatePolicy("numeric", c.Numeric); err != nil {
		return err
	}
	if c.RoundingMode != model.RoundHalfUp {
		return fmt.Errorf("rounding_mode %q is not supported, only %s", c.RoundingMode, model.RoundHalfUp)
	}
	if c.Feed.HeaderSkipLines < 0 {
		return errors.New("feed.header_skip_lines must be >= 0")
	}
	if c.Feed.DateLineIndex < -1 || c.Feed.DateLineIndex >= c.Feed.HeaderSkipLines {
		return fmt.Errorf("feed.date_line_index must be -1 or within the %d header lines", c.Feed.HeaderSkipLines)
	}
	if utf8.RuneCountInString(c.Feed.Delimiter) != 1 {
		return errors.New("feed.delimiter must be a single character")
	}
	if r := c.Feed.DelimiterRune(); r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("feed.delimiter %q cannot separate csv fields", c.Feed.Delimiter)
	}
	if c.Feed.SpecialCondition == "" {
		return errors.New("feed.special_condition is required")
	}
	if c.Chart.SMAPeriod < 1 {
		return errors.New("chart.sma_period must be positive")
	}
	if c.Chart.RSIPeriod < 1 {
		return errors.New("chart.rsi_period must be positive")
	}
	for i, t := range c.Tickers {
		if t.Symbol == "" {
			return fmt.Errorf("tickers[%d].symbol is required", i)
		}
		if t.Numeric != nil {
			if err := validatePolicy("tickers["+t.Symbol+"].numeric", *t.Numeric); err != nil {
				return err
			}
		}
	}
	return nil
}

func validatePolicy(field string, p model.NumericPolicy) error {
	if p.Scale < 0 {
		return fmt.Errorf("%s.scale must be >= 0", field)
	}
	if p.Precision < 0 {
		return fmt.Errorf("%s.precision must be >= 0", field)
	}
	return nil
}

// DelimiterRune returns the configured delimiter.
func (f Feed) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(f.Delimiter)
	return r
}

// Policy returns the numeric policy of t, falling back to the shared one.
// The returned pointer is shared by every day of the ticker and must not be modified.
func (c *Config) Policy(t Ticker) *model.NumericPolicy {
	if t.Numeric != nil {
		p := *t.Numeric
		return &p
	}
	p := c.Numeric
	return &p
}

// Lookup returns the ticker with the given symbol.
func (c *Config) Lookup(symbol string) (Ticker, bool) {
	for _, t := range c.Tickers {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return Ticker{}, false
}
