package parser

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"TradeTape/internal/model"
)

// MaxExponent bounds the decimal exponent of a parsed field. Sums and
// products rescale operands to a common exponent, so an unbounded one would
// make them allocate without limit.
const MaxExponent = 64

var (
	errNotInteger       = errors.New("not an integer literal")
	errExponentTooLarge = fmt.Errorf("exponent outside [-%d, %d]", MaxExponent, MaxExponent)
)

// ParseDecimal converts token into an exact decimal. When policy.Precision is
// positive the value is rounded half-up to that many significant digits.
// Empty and placeholder tokens such as "--" are errors, never zero.
func ParseDecimal(token string, policy model.NumericPolicy) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(token)
	if err != nil {
		return decimal.Zero, &NumericParseError{Token: token, Err: err}
	}
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return decimal.Zero, &NumericParseError{Token: token, Err: errExponentTooLarge}
	}
	return applyPrecision(d, policy.Precision), nil
}

// ParseInteger converts token into an unbounded integer.
func ParseInteger(token string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(token, 10)
	if !ok {
		return nil, &NumericParseError{Token: token, Err: errNotInteger}
	}
	return n, nil
}

// applyPrecision expects d.Exponent() within MaxExponent.
func applyPrecision(d decimal.Decimal, precision int) decimal.Decimal {
	if precision <= 0 {
		return d
	}
	excess := int64(len(new(big.Int).Abs(d.Coefficient()).String()) - precision)
	if excess <= 0 {
		return d
	}
	return d.Round(int32(-(int64(d.Exponent()) + excess)))
}
