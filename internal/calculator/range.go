package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"TradeTape/internal/model"
)

var half = decimal.New(5, -1)

// SessionRange returns the highest high and lowest low across bars.
func SessionRange(bars []model.ChartBar) (high, low decimal.Decimal, err error) {
	if len(bars) == 0 {
		return decimal.Zero, decimal.Zero, errors.New("no chart bars provided")
	}
	high, low = bars[0].High, bars[0].Low
	for _, b := range bars[1:] {
		if b.High.GreaterThan(high) {
			high = b.High
		}
		if b.Low.LessThan(low) {
			low = b.Low
		}
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high], clamped to
// 0..1 and rounded half-up to scale digits. A flat range yields 0.5.
func RangePosition(current, high, low decimal.Decimal, scale int32) (decimal.Decimal, error) {
	if high.LessThan(low) {
		return decimal.Zero, errors.New("high must be >= low")
	}
	if high.Equal(low) {
		return half, nil
	}
	pos := current.Sub(low).DivRound(high.Sub(low), scale)
	if pos.IsNegative() {
		return decimal.Zero, nil
	}
	if pos.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1), nil
	}
	return pos, nil
}
