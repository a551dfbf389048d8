package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, int32(4), cfg.Numeric.Scale)
	assert.Equal(t, 16, cfg.Numeric.Precision)
	assert.Equal(t, "HALF_UP", cfg.RoundingMode)
	assert.Equal(t, 4, cfg.Feed.HeaderSkipLines)
	assert.Equal(t, 1, cfg.Feed.DateLineIndex)
	assert.Equal(t, ',', cfg.Feed.DelimiterRune())
	assert.Equal(t, "T", cfg.Feed.SpecialCondition)
	assert.Equal(t, `"The data and information`, cfg.Feed.ChartDisclaimer)
	assert.Equal(t, 20, cfg.Chart.SMAPeriod)
	assert.Equal(t, 14, cfg.Chart.RSIPeriod)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAMLKeepsExplicitZeros(t *testing.T) {
	path := writeConfig(t, `
numeric:
  scale: 0
  precision: 0
feed:
  header_skip_lines: 0
  date_line_index: -1
tickers:
  - symbol: DWAC
    trades: data/DWAC/*.csv
    charts: [data/DWAC/chart.csv]
    numeric:
      scale: 2
      precision: 10
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int32(0), cfg.Numeric.Scale)
	assert.Equal(t, 0, cfg.Numeric.Precision)
	assert.Equal(t, 0, cfg.Feed.HeaderSkipLines)
	assert.Equal(t, -1, cfg.Feed.DateLineIndex)

	tk, ok := cfg.Lookup("DWAC")
	require.True(t, ok)
	assert.Equal(t, "data/DWAC/*.csv", tk.Trades)
	assert.Equal(t, []string{"data/DWAC/chart.csv"}, tk.Charts)
	assert.Equal(t, int32(2), cfg.Policy(tk).Scale)
	assert.Equal(t, 10, cfg.Policy(tk).Precision)

	_, ok = cfg.Lookup("GME")
	assert.False(t, ok)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TAPE_TICKER", "GME")
	t.Setenv("TAPE_SCALE", "6")
	t.Setenv("TAPE_HEADER_SKIP", "3")
	t.Setenv("TAPE_DATE_LINE", "0")
	t.Setenv("TAPE_CRON", "0 30 18 * * 1-5")
	t.Setenv("TAPE_METRICS_FILE", "/tmp/tape.prom")

	cfg, err := Load(writeConfig(t, "numeric:\n  scale: 2\n"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, int32(6), cfg.Numeric.Scale)
	assert.Equal(t, 3, cfg.Feed.HeaderSkipLines)
	assert.Equal(t, 0, cfg.Feed.DateLineIndex)
	assert.Equal(t, "0 30 18 * * 1-5", cfg.Schedule.Cron)
	assert.Equal(t, "/tmp/tape.prom", cfg.Metrics.Textfile)
	require.Len(t, cfg.Tickers, 1)
	assert.Equal(t, "GME", cfg.Tickers[0].Symbol)
	assert.Equal(t, int32(6), cfg.Policy(cfg.Tickers[0]).Scale)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("TAPE_SCALE", "four")
	_, err := Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "numeric: [\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative scale", func(c *Config) { c.Numeric.Scale = -1 }},
		{"negative precision", func(c *Config) { c.Numeric.Precision = -1 }},
		{"rounding mode", func(c *Config) { c.RoundingMode = "HALF_EVEN" }},
		{"date line outside header", func(c *Config) { c.Feed.DateLineIndex = 4 }},
		{"date line below -1", func(c *Config) { c.Feed.DateLineIndex = -3 }},
		{"negative header skip", func(c *Config) { c.Feed.HeaderSkipLines = -1; c.Feed.DateLineIndex = -1 }},
		{"long delimiter", func(c *Config) { c.Feed.Delimiter = ";;" }},
		{"quote delimiter", func(c *Config) { c.Feed.Delimiter = `"` }},
		{"carriage return delimiter", func(c *Config) { c.Feed.Delimiter = "\r" }},
		{"newline delimiter", func(c *Config) { c.Feed.Delimiter = "\n" }},
		{"invalid utf-8 delimiter", func(c *Config) { c.Feed.Delimiter = "\xff" }},
		{"empty special condition", func(c *Config) { c.Feed.SpecialCondition = "" }},
		{"sma period", func(c *Config) { c.Chart.SMAPeriod = 0 }},
		{"rsi period", func(c *Config) { c.Chart.RSIPeriod = -1 }},
		{"ticker without symbol", func(c *Config) { c.Tickers = []Ticker{{Trades: "*.csv"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_AcceptsOtherDelimiters(t *testing.T) {
	for _, delim := range []string{";", "\t", "|"} {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		cfg.Feed.Delimiter = delim
		assert.NoError(t, cfg.Validate(), "delimiter %q", delim)
	}
}

func TestPolicy_IsACopy(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	p := cfg.Policy(Ticker{Symbol: "X"})
	p.Scale = 9
	assert.Equal(t, int32(4), cfg.Numeric.Scale)
}
