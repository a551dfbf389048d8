package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"TradeTape/internal/calculator"
	"TradeTape/internal/model"
	"TradeTape/internal/tradeday"
)

// FormatDay renders the statistics of one day as an indented block.
func FormatDay(day *tradeday.TradingDay) string {
	f := model.FormatDecimal
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Day %d | %s | %s\n", day.DayOrdinal(), day.DateLabel(), day.Source()))
	b.WriteString(fmt.Sprintf("  Trades: %d (special condition: %d)\n", day.Len(), day.SpecialConditionCount()))
	if avg, err := day.AveragePrice(); err == nil {
		b.WriteString(fmt.Sprintf("  Average price: %s\n", f(avg)))
	} else {
		b.WriteString("  Average price: n/a\n")
	}
	b.WriteString(fmt.Sprintf("  Volume: %s (buy %s %s | sell %s %s | unknown %s %s)\n",
		f(day.Volume()),
		f(day.BuyVolume()), pct(day.PctBuyVolume()),
		f(day.SellVolume()), pct(day.PctSellVolume()),
		f(day.UnknownVolume()), pct(day.PctUnknownVolume())))
	b.WriteString(fmt.Sprintf("  Dollar volume: %s (buy %s %s | sell %s %s | unknown %s %s)\n",
		f(day.DollarVolume()),
		f(day.BuyDollarVolume()), pct(day.PctBuyDollarVolume()),
		f(day.SellDollarVolume()), pct(day.PctSellDollarVolume()),
		f(day.UnknownDollarVolume()), pct(day.PctUnknownDollarVolume())))
	return b.String()
}

// FormatBatch renders one row per day in aligned columns.
func FormatBatch(symbol string, days []*tradeday.TradingDay) string {
	f := model.FormatDecimal
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %d trading day(s)\n", symbol, len(days)))

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Day\tDate\tTrades\tAvg Price\tVolume\tBuy%\tSell%\tUnknown%\tDollar Volume\tBuy$%\tSell$%\tUnknown$%\tSpecial\t")
	for _, day := range days {
		avg := "n/a"
		if a, err := day.AveragePrice(); err == nil {
			avg = f(a)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t\n",
			day.DayOrdinal(), day.DateLabel(), day.Len(), avg,
			f(day.Volume()), pct(day.PctBuyVolume()), pct(day.PctSellVolume()), pct(day.PctUnknownVolume()),
			f(day.DollarVolume()), pct(day.PctBuyDollarVolume()), pct(day.PctSellDollarVolume()), pct(day.PctUnknownDollarVolume()),
			day.SpecialConditionCount())
	}
	_ = w.Flush()
	return b.String()
}

// FormatChart renders a chart summary.
func FormatChart(symbol, source string, s *calculator.ChartSummary) string {
	f := model.FormatDecimal
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s chart | %s | %d bars | %s - %s\n", symbol, source, s.Bars, s.From, s.To))
	b.WriteString(fmt.Sprintf("  Open %s  High %s  Low %s  Close %s\n", f(s.Open), f(s.High), f(s.Low), f(s.Close)))
	b.WriteString(fmt.Sprintf("  Volume: %s\n", s.Volume.String()))
	if s.SMA.Valid {
		b.WriteString(fmt.Sprintf("  Close SMA: %s\n", f(s.SMA.Decimal)))
	}
	if s.RSI.Valid {
		b.WriteString(fmt.Sprintf("  Close RSI: %s\n", f(s.RSI.Decimal)))
	}
	b.WriteString(fmt.Sprintf("  Close within range: %s\n", pct(s.Position)))
	return b.String()
}

var hundred = decimal.NewFromInt(100)

// pct shows a 0..1 ratio as a percentage with three decimals.
func pct(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(3) + "%"
}
