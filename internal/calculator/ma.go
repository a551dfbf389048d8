package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"TradeTape/internal/model"
)

// CalculateSMA computes the simple moving average of the last period values,
// rounded half-up to scale digits.
func CalculateSMA(values []decimal.Decimal, period int, scale int32) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, errors.New("period must be positive")
	}
	if len(values) < period {
		return decimal.Zero, errors.New("not enough data for SMA calculation")
	}
	sum := decimal.Zero
	for i := len(values) - period; i < len(values); i++ {
		sum = sum.Add(values[i])
	}
	return sum.DivRound(decimal.NewFromInt(int64(period)), scale), nil
}

// CalculateCloseSMA returns the moving average of bar closes.
func CalculateCloseSMA(bars []model.ChartBar, period int, scale int32) (decimal.Decimal, error) {
	return CalculateSMA(extractCloses(bars), period, scale)
}

func extractCloses(bars []model.ChartBar) []decimal.Decimal {
	closes := make([]decimal.Decimal, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
