package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TimeOfDay is a wall-clock time without a date component.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// String renders the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// SinceMidnight returns the offset of t from the start of the day.
func (t TimeOfDay) SinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second
}

// TradeObservation is one execution print from a trade tape.
// Bid and Ask are invalid when the broker omitted the quote.
type TradeObservation struct {
	Time             TimeOfDay
	Price            decimal.Decimal
	Size             decimal.Decimal
	Bid              decimal.NullDecimal
	Ask              decimal.NullDecimal
	SpecialCondition bool
}

// DollarVolume returns price × size, unrounded.
func (o *TradeObservation) DollarVolume() decimal.Decimal {
	return o.Price.Mul(o.Size)
}

func (o *TradeObservation) String() string {
	return fmt.Sprintf("Trade[Time=%s, Price=%s, Size=%s, Bid=%s, Ask=%s, Special=%t]",
		o.Time, FormatDecimal(o.Price), FormatDecimal(o.Size),
		formatNull(o.Bid), formatNull(o.Ask), o.SpecialCondition)
}

func formatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return "--"
	}
	return FormatDecimal(d.Decimal)
}
