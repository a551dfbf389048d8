package parser

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"TradeTape/internal/model"
)

// Column positions of the trade tape export:
// "Time","Last Price","Last Size","Bid Price","Ask Price","Bid Size","Ask Size",
// "Bid Exchange","Ask Exchange","Last Exchange","Trade Condition"
const (
	ColTime      = 0
	ColPrice     = 1
	ColSize      = 2
	ColBid       = 3
	ColAsk       = 4
	ColCondition = 10

	tradeColumns = ColCondition + 1
)

// DefaultSpecialCondition is the trade-condition code marking a "tee" trade.
const DefaultSpecialCondition = "T"

// TradeParser turns trade tape lines into observations.
type TradeParser struct {
	Policy           model.NumericPolicy
	Delimiter        rune
	SpecialCondition string
	log              *zap.Logger
}

// NewTradeParser creates a TradeParser with the default delimiter and condition flag.
func NewTradeParser(policy model.NumericPolicy, log *zap.Logger) *TradeParser {
	if log == nil {
		log = zap.NewNop()
	}
	return &TradeParser{
		Policy:           policy,
		Delimiter:        DefaultDelimiter,
		SpecialCondition: DefaultSpecialCondition,
		log:              log,
	}
}

// ParseTrade parses one data line. Price and size are required; an
// unparseable bid or ask is recorded as absent because brokers omit quotes
// around the open and close.
func (p *TradeParser) ParseTrade(line string) (*model.TradeObservation, error) {
	fail := func(col int, err error) (*model.TradeObservation, error) {
		return nil, &TradeParseError{Column: col, Data: line, Err: err}
	}

	fields, err := Tokenize(line, p.Delimiter)
	if err != nil {
		return fail(-1, err)
	}
	if len(fields) < tradeColumns {
		return fail(-1, ErrShortRecord)
	}

	tod, err := ParseTimeOfDay(fields[ColTime])
	if err != nil {
		return fail(ColTime, err)
	}
	price, err := ParseDecimal(fields[ColPrice], p.Policy)
	if err != nil {
		return fail(ColPrice, err)
	}
	size, err := ParseDecimal(fields[ColSize], p.Policy)
	if err != nil {
		return fail(ColSize, err)
	}

	obs := &model.TradeObservation{
		Time:             tod,
		Price:            price,
		Size:             size,
		SpecialCondition: fields[ColCondition] == p.SpecialCondition,
	}
	if bid, err := ParseDecimal(fields[ColBid], p.Policy); err == nil {
		obs.Bid.Decimal, obs.Bid.Valid = bid, true
	} else {
		p.log.Debug("trade has no bid", zap.String("data", line))
	}
	if ask, err := ParseDecimal(fields[ColAsk], p.Policy); err == nil {
		obs.Ask.Decimal, obs.Ask.Valid = ask, true
	} else {
		p.log.Debug("trade has no ask", zap.String("data", line))
	}
	return obs, nil
}

// ParseTimeOfDay reads HH:MM:SS from the first eight characters of token.
// Anything after that, such as a " ET" suffix, is ignored.
func ParseTimeOfDay(token string) (model.TimeOfDay, error) {
	if len(token) < 8 {
		return model.TimeOfDay{}, &TimeParseError{Token: token, Reason: "shorter than HH:MM:SS"}
	}
	parts := strings.Split(token[:8], ":")
	if len(parts) != 3 {
		return model.TimeOfDay{}, &TimeParseError{Token: token, Reason: "expected three colon-separated parts"}
	}
	var v [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || !isDigits(part) {
			return model.TimeOfDay{}, &TimeParseError{Token: token, Reason: "non-integral component " + strconv.Quote(part)}
		}
		v[i] = n
	}
	if v[0] > 23 || v[1] > 59 || v[2] > 59 {
		return model.TimeOfDay{}, &TimeParseError{Token: token, Reason: "component out of range"}
	}
	return model.TimeOfDay{Hour: v[0], Minute: v[1], Second: v[2]}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
