package calculator

import (
	"math/big"

	"github.com/shopspring/decimal"

	"TradeTape/internal/model"
)

// ChartSummary condenses a session of chart bars.
type ChartSummary struct {
	Bars     int
	From     string // date and time of the first bar
	To       string // date and time of the last bar
	Open     decimal.Decimal
	Close    decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Volume   *big.Int
	SMA      decimal.NullDecimal // close SMA; invalid when there are fewer bars than the period
	RSI      decimal.NullDecimal // close RSI; invalid with period or fewer bars
	Position decimal.Decimal     // last close within [Low, High]
}

// SummarizeChart computes a ChartSummary. Bars must be in session order.
func SummarizeChart(bars []model.ChartBar, scale int32, smaPeriod, rsiPeriod int) (*ChartSummary, error) {
	high, low, err := SessionRange(bars)
	if err != nil {
		return nil, err
	}
	first, last := bars[0], bars[len(bars)-1]
	s := &ChartSummary{
		Bars:   len(bars),
		From:   first.Date + " " + first.Time,
		To:     last.Date + " " + last.Time,
		Open:   first.Open,
		Close:  last.Close,
		High:   high,
		Low:    low,
		Volume: new(big.Int),
	}
	for _, b := range bars {
		s.Volume.Add(s.Volume, b.Volume)
	}
	if sma, err := CalculateCloseSMA(bars, smaPeriod, scale); err == nil {
		s.SMA = decimal.NullDecimal{Decimal: sma, Valid: true}
	}
	if rsi, err := CalculateCloseRSI(bars, rsiPeriod, scale); err == nil {
		s.RSI = decimal.NullDecimal{Decimal: rsi, Valid: true}
	}
	if s.Position, err = RangePosition(last.Close, high, low, scale); err != nil {
		return nil, err
	}
	return s, nil
}
