package parser

import (
	"errors"
	"fmt"
)

// ErrShortRecord is returned when a line has fewer columns than the layout requires.
var ErrShortRecord = errors.New("record has too few columns")

// NumericParseError reports a token that is not a valid decimal or integer literal.
type NumericParseError struct {
	Token string
	Err   error
}

func (e *NumericParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid number %q: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("invalid number %q", e.Token)
}

func (e *NumericParseError) Unwrap() error { return e.Err }

// TimeParseError reports a time-of-day token that is not HH:MM:SS.
type TimeParseError struct {
	Token  string
	Reason string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid time of day %q: %s", e.Token, e.Reason)
}

// TradeParseError reports a trade line that could not be turned into an observation.
// Column is -1 when the failure is not tied to a single column.
// Source and Line are filled in by the ingestion driver.
type TradeParseError struct {
	Source string
	Line   int64
	Column int
	Data   string
	Err    error
}

func (e *TradeParseError) Error() string {
	return lineError("trade", e.Source, e.Line, e.Column, e.Err)
}

func (e *TradeParseError) Unwrap() error { return e.Err }

// ChartParseError reports a chart line that could not be turned into a bar.
type ChartParseError struct {
	Source string
	Line   int64
	Column int
	Data   string
	Err    error
}

func (e *ChartParseError) Error() string {
	return lineError("chart", e.Source, e.Line, e.Column, e.Err)
}

func (e *ChartParseError) Unwrap() error { return e.Err }

func lineError(kind, source string, line int64, column int, err error) string {
	msg := "parse " + kind + " record"
	if source != "" {
		msg += fmt.Sprintf(" %s", source)
	}
	if line > 0 {
		msg += fmt.Sprintf(" line %d", line)
	}
	if column >= 0 {
		msg += fmt.Sprintf(" column %d", column)
	}
	return fmt.Sprintf("%s: %v", msg, err)
}
