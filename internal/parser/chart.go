package parser

import (
	"TradeTape/internal/model"
)

// Column positions of the chart export: Date,Time,Open,High,Low,Close,Volume
const (
	ColDate   = 0
	ColClock  = 1
	ColOpen   = 2
	ColHigh   = 3
	ColLow    = 4
	ColClose  = 5
	ColVolume = 6

	chartColumns = ColVolume + 1
)

// ChartParser turns chart export lines into bars. Unlike trades there are no
// optional fields: any bad column fails the whole bar. Prices keep every
// digit of the export; no precision limit applies.
type ChartParser struct {
	Delimiter rune
}

// NewChartParser creates a ChartParser with the default delimiter.
func NewChartParser() *ChartParser {
	return &ChartParser{Delimiter: DefaultDelimiter}
}

var exact = model.NumericPolicy{}

// ParseChartBar parses one data line.
func (p *ChartParser) ParseChartBar(line string) (*model.ChartBar, error) {
	fail := func(col int, err error) (*model.ChartBar, error) {
		return nil, &ChartParseError{Column: col, Data: line, Err: err}
	}

	fields, err := Tokenize(line, p.Delimiter)
	if err != nil {
		return fail(-1, err)
	}
	if len(fields) < chartColumns {
		return fail(-1, ErrShortRecord)
	}

	bar := &model.ChartBar{Date: fields[ColDate], Time: fields[ColClock]}
	if bar.Open, err = ParseDecimal(fields[ColOpen], exact); err != nil {
		return fail(ColOpen, err)
	}
	if bar.High, err = ParseDecimal(fields[ColHigh], exact); err != nil {
		return fail(ColHigh, err)
	}
	if bar.Low, err = ParseDecimal(fields[ColLow], exact); err != nil {
		return fail(ColLow, err)
	}
	if bar.Close, err = ParseDecimal(fields[ColClose], exact); err != nil {
		return fail(ColClose, err)
	}
	if bar.Volume, err = ParseInteger(fields[ColVolume]); err != nil {
		return fail(ColVolume, err)
	}
	return bar, nil
}
