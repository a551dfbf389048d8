package report

import (
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeTape/internal/calculator"
	"TradeTape/internal/model"
	"TradeTape/internal/tradeday"
)

var policy = &model.NumericPolicy{Scale: 4}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDay(t *testing.T) *tradeday.TradingDay {
	day := tradeday.New("20211108.csv", "11/08/2021", policy)
	day.Append(&model.TradeObservation{
		Price: d("10.01"), Size: d("100"),
		Bid: decimal.NullDecimal{Decimal: d("10.00"), Valid: true},
		Ask: decimal.NullDecimal{Decimal: d("10.01"), Valid: true},
	})
	day.Append(&model.TradeObservation{Price: d("10.00"), Size: d("300"), SpecialCondition: true})
	require.NoError(t, day.SetDayOrdinal(1))
	return day
}

func TestFormatDay(t *testing.T) {
	out := FormatDay(sampleDay(t))

	assert.Contains(t, out, "Day 1 | 11/08/2021 | 20211108.csv")
	assert.Contains(t, out, "Trades: 2 (special condition: 1)")
	// (1001.00 + 3000.00) / 400
	assert.Contains(t, out, "Average price: 10.0025")
	assert.Contains(t, out, "Volume: 400 (buy 100 25.000% | sell 0 0.000% | unknown 300 75.000%)")
}

func TestFormatDay_Empty(t *testing.T) {
	out := FormatDay(tradeday.New("empty.csv", "", policy))
	assert.Contains(t, out, "Average price: n/a")
	assert.Contains(t, out, "Volume: 0 (buy 0 0.000%")
}

func TestFormatBatch(t *testing.T) {
	out := FormatBatch("DWAC", []*tradeday.TradingDay{sampleDay(t), tradeday.New("empty.csv", "", policy)})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "DWAC: 2 trading day(s)", lines[0])
	assert.Contains(t, lines[1], "Avg Price")
	assert.Contains(t, lines[2], "10.0025")
	assert.Contains(t, lines[3], "n/a")
}

func TestFormatChart(t *testing.T) {
	s := &calculator.ChartSummary{
		Bars: 2, From: "11/08/2021 09:35", To: "11/08/2021 09:40",
		Open: d("45.10"), High: d("47.50"), Low: d("44.95"), Close: d("47.25"),
		Volume:   big.NewInt(3000),
		Position: d("0.902"),
	}
	out := FormatChart("DWAC", "chart.csv", s)
	assert.Contains(t, out, "DWAC chart | chart.csv | 2 bars")
	assert.Contains(t, out, "Volume: 3000")
	assert.Contains(t, out, "Close within range: 90.200%")
	assert.NotContains(t, out, "SMA")
	assert.NotContains(t, out, "RSI")

	s.SMA = decimal.NullDecimal{Decimal: d("46.6750"), Valid: true}
	s.RSI = decimal.NullDecimal{Decimal: d("62.5000"), Valid: true}
	out = FormatChart("DWAC", "chart.csv", s)
	assert.Contains(t, out, "Close SMA: 46.6750")
	assert.Contains(t, out, "Close RSI: 62.5000")
}
