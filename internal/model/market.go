package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ChartBar represents a single OHLCV sample from a chart export.
// Date and Time are kept as the raw tokens of the export.
type ChartBar struct {
	Date   string
	Time   string
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume *big.Int
}
