// Package tradeday holds the observations of one trading session and derives
// its statistics. Every statistic is a full scan of the observations at call
// time; nothing is cached, so a day is consistently queryable mid-ingestion.
package tradeday

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"TradeTape/internal/calculator"
	"TradeTape/internal/model"
)

var (
	// ErrDivisionUndefined is returned by AveragePrice for a day without volume.
	ErrDivisionUndefined = errors.New("average price undefined: total volume is zero")
	// ErrOrdinalAssigned is returned when a day ordinal is set twice.
	ErrOrdinalAssigned = errors.New("day ordinal already assigned")
)

// TradingDay is the aggregate root for one session of one ticker.
type TradingDay struct {
	source       string
	dateLabel    string
	ordinal      int
	policy       *model.NumericPolicy
	observations []*model.TradeObservation
}

// New creates an empty day for the named source. The policy is shared with
// other days and only read.
func New(source, dateLabel string, policy *model.NumericPolicy) *TradingDay {
	return &TradingDay{source: source, dateLabel: dateLabel, policy: policy}
}

// Source identifies where the observations came from, usually a file name.
func (d *TradingDay) Source() string { return d.source }

// DateLabel is the date line found in the export preamble, stored verbatim.
func (d *TradingDay) DateLabel() string { return d.dateLabel }

// DayOrdinal is the position of the day in its batch, 0 until assigned.
func (d *TradingDay) DayOrdinal() int { return d.ordinal }

// SetDayOrdinal assigns the batch position. It may be called once.
func (d *TradingDay) SetDayOrdinal(n int) error {
	if d.ordinal != 0 {
		return fmt.Errorf("%w: %s is day %d", ErrOrdinalAssigned, d.source, d.ordinal)
	}
	if n <= 0 {
		return fmt.Errorf("day ordinal must be positive, got %d", n)
	}
	d.ordinal = n
	return nil
}

// Append adds an observation in file order. Only the ingestion driver calls it.
func (d *TradingDay) Append(o *model.TradeObservation) {
	d.observations = append(d.observations, o)
}

// Observations returns the observations in file order.
func (d *TradingDay) Observations() []*model.TradeObservation {
	out := make([]*model.TradeObservation, len(d.observations))
	copy(out, d.observations)
	return out
}

// Len returns the number of observations.
func (d *TradingDay) Len() int { return len(d.observations) }

// IsEmpty reports whether the day holds no observations.
func (d *TradingDay) IsEmpty() bool { return len(d.observations) == 0 }

func (d *TradingDay) sum(side model.Sentiment, value func(*model.TradeObservation) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, o := range d.observations {
		if side == "" || calculator.ClassifyTrade(o) == side {
			total = total.Add(value(o))
		}
	}
	return total
}

func size(o *model.TradeObservation) decimal.Decimal { return o.Size }

func dollars(o *model.TradeObservation) decimal.Decimal { return o.DollarVolume() }

// Volume is the sum of all trade sizes.
func (d *TradingDay) Volume() decimal.Decimal { return d.sum("", size) }

// BuyVolume is the size traded at the ask.
func (d *TradingDay) BuyVolume() decimal.Decimal { return d.sum(model.SentimentBuy, size) }

// SellVolume is the size traded at the bid.
func (d *TradingDay) SellVolume() decimal.Decimal { return d.sum(model.SentimentSell, size) }

// UnknownVolume is the size that could not be attributed to either side.
func (d *TradingDay) UnknownVolume() decimal.Decimal { return d.sum(model.SentimentUnknown, size) }

// DollarVolume is the sum of price × size over all trades.
func (d *TradingDay) DollarVolume() decimal.Decimal { return d.sum("", dollars) }

func (d *TradingDay) BuyDollarVolume() decimal.Decimal { return d.sum(model.SentimentBuy, dollars) }

func (d *TradingDay) SellDollarVolume() decimal.Decimal { return d.sum(model.SentimentSell, dollars) }

func (d *TradingDay) UnknownDollarVolume() decimal.Decimal {
	return d.sum(model.SentimentUnknown, dollars)
}

// AveragePrice is dollar volume over volume, rounded half-up to the policy
// scale. Unlike the percentages it has no zero fallback: callers check
// IsEmpty first or handle ErrDivisionUndefined.
func (d *TradingDay) AveragePrice() (decimal.Decimal, error) {
	volume := d.Volume()
	if volume.IsZero() {
		return decimal.Zero, ErrDivisionUndefined
	}
	return d.DollarVolume().DivRound(volume, d.policy.Scale), nil
}

// ratio divides part by whole at PercentScale, yielding zero when whole is zero.
func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.DivRound(whole, model.PercentScale)
}

func (d *TradingDay) PctBuyVolume() decimal.Decimal { return ratio(d.BuyVolume(), d.Volume()) }

func (d *TradingDay) PctSellVolume() decimal.Decimal { return ratio(d.SellVolume(), d.Volume()) }

func (d *TradingDay) PctUnknownVolume() decimal.Decimal { return ratio(d.UnknownVolume(), d.Volume()) }

func (d *TradingDay) PctBuyDollarVolume() decimal.Decimal {
	return ratio(d.BuyDollarVolume(), d.DollarVolume())
}

func (d *TradingDay) PctSellDollarVolume() decimal.Decimal {
	return ratio(d.SellDollarVolume(), d.DollarVolume())
}

func (d *TradingDay) PctUnknownDollarVolume() decimal.Decimal {
	return ratio(d.UnknownDollarVolume(), d.DollarVolume())
}

// SpecialConditionCount counts trades flagged with the special condition code.
func (d *TradingDay) SpecialConditionCount() int {
	n := 0
	for _, o := range d.observations {
		if o.SpecialCondition {
			n++
		}
	}
	return n
}

// DebugString dumps the day as pipe-delimited volumes followed by a
// bracketed summary.
func (d *TradingDay) DebugString() string {
	f := model.FormatDecimal
	fields := []string{
		fmt.Sprint(d.ordinal),
		d.dateLabel,
		f(d.Volume()),
		f(d.BuyVolume()),
		f(d.SellVolume()),
		f(d.UnknownVolume()),
		f(d.DollarVolume()),
		f(d.BuyDollarVolume()),
		f(d.SellDollarVolume()),
		f(d.UnknownDollarVolume()),
	}
	return strings.Join(fields, "|") + " " + d.String()
}

func (d *TradingDay) String() string {
	f := model.FormatDecimal
	return fmt.Sprintf("TradingDay[Date=%s, Volume=%s, BuyVolume=%s, SellVolume=%s, UnknownVolume=%s, "+
		"DollarVolume=%s, BuyDollarVolume=%s, SellDollarVolume=%s, UnknownDollarVolume=%s, SpecialConditions=%d]",
		d.dateLabel, f(d.Volume()), f(d.BuyVolume()), f(d.SellVolume()), f(d.UnknownVolume()),
		f(d.DollarVolume()), f(d.BuyDollarVolume()), f(d.SellDollarVolume()), f(d.UnknownDollarVolume()),
		d.SpecialConditionCount())
}
