package calculator

import (
	"errors"

	"github.com/shopspring/decimal"

	"TradeTape/internal/model"
)

// rsiWorkScale is the number of fractional digits kept in the smoothed
// averages before the final rounding.
const rsiWorkScale = 16

var hundred = decimal.NewFromInt(100)

// CalculateRSI computes the Wilder-smoothed RSI of values over period,
// rounded half-up to scale digits. It needs at least period+1 values.
func CalculateRSI(values []decimal.Decimal, period int, scale int32) (decimal.Decimal, error) {
	if period <= 0 {
		return decimal.Zero, errors.New("period must be positive")
	}
	if len(values) < period+1 {
		return decimal.Zero, errors.New("not enough data for RSI calculation")
	}

	n := decimal.NewFromInt(int64(period))
	n1 := decimal.NewFromInt(int64(period - 1))

	// Initial average gain/loss over the first period changes
	avgGain, avgLoss := decimal.Zero, decimal.Zero
	for i := 1; i <= period; i++ {
		change := values[i].Sub(values[i-1])
		if change.IsPositive() {
			avgGain = avgGain.Add(change)
		} else {
			avgLoss = avgLoss.Sub(change)
		}
	}
	avgGain = avgGain.DivRound(n, rsiWorkScale)
	avgLoss = avgLoss.DivRound(n, rsiWorkScale)

	// Wilder smoothing for the remaining values
	for i := period + 1; i < len(values); i++ {
		change := values[i].Sub(values[i-1])
		gain, loss := decimal.Zero, decimal.Zero
		if change.IsPositive() {
			gain = change
		} else {
			loss = change.Neg()
		}
		avgGain = avgGain.Mul(n1).Add(gain).DivRound(n, rsiWorkScale)
		avgLoss = avgLoss.Mul(n1).Add(loss).DivRound(n, rsiWorkScale)
	}

	if avgLoss.IsZero() {
		return hundred, nil
	}
	// 100 - 100/(1+gain/loss) == 100*gain/(gain+loss)
	return hundred.Mul(avgGain).DivRound(avgGain.Add(avgLoss), scale), nil
}

// CalculateCloseRSI returns the RSI of bar closes.
func CalculateCloseRSI(bars []model.ChartBar, period int, scale int32) (decimal.Decimal, error) {
	return CalculateRSI(extractCloses(bars), period, scale)
}
