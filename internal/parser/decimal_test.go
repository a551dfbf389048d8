package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeTape/internal/model"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		token     string
		precision int
		want      string
	}{
		{"125.03", 0, "125.03"},
		{"125.00", 16, "125.00"},
		{"123.456789", 5, "123.46"},
		{"0.000125", 2, "0.00013"},
		{"-7.5", 1, "-8"},
	}
	for _, tt := range tests {
		d, err := ParseDecimal(tt.token, model.NumericPolicy{Precision: tt.precision})
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.want, model.FormatDecimal(d), tt.token)
	}
}

func TestParseDecimal_RejectsPlaceholders(t *testing.T) {
	for _, token := range []string{"", "--", "N/A", "1.2.3"} {
		_, err := ParseDecimal(token, model.NumericPolicy{})
		var ne *NumericParseError
		require.True(t, errors.As(err, &ne), "token %q", token)
		assert.Equal(t, token, ne.Token)
	}
}

func TestParseDecimal_RejectsExtremeExponents(t *testing.T) {
	tokens := []string{
		"123456789012345678901e2147483647",
		"1e2147483647",
		"1e-2147483647",
		"1e65",
		"1e-65",
	}
	for _, token := range tokens {
		for _, precision := range []int{0, 16} {
			_, err := ParseDecimal(token, model.NumericPolicy{Precision: precision})
			var ne *NumericParseError
			require.True(t, errors.As(err, &ne), "token %q precision %d", token, precision)
			assert.ErrorIs(t, err, errExponentTooLarge)
		}
	}

	d, err := ParseDecimal("123456789012345678901e64", model.NumericPolicy{Precision: 16})
	require.NoError(t, err)
	assert.Equal(t, int32(69), d.Exponent())
}

func TestParseInteger(t *testing.T) {
	n, err := ParseInteger("123456789012345678901234567890")
	require.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", n.String())

	_, err = ParseInteger("12.5")
	var ne *NumericParseError
	assert.True(t, errors.As(err, &ne))
}
