package utils

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "raw 1e18 amount", input: "1000000000000000000", want: "1000000000000000000.000000000000000000"},
		{name: "raw 1e12 accumulator", input: "2000000000000", want: "2000000000000.000000000000000000"},
		{name: "decimal value", input: "1.5", want: "1.500000000000000000"},
		{name: "zero", input: "0", want: "0.000000000000000000"},
		{name: "whitespace trimmed", input: "  42  ", want: "42.000000000000000000"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-number", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDec(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseFloat(t *testing.T) {
	got, err := ParseFloat("1234.5678")
	require.NoError(t, err)
	assert.InDelta(t, 1234.5678, got, 1e-9)

	_, err = ParseFloat("")
	require.ErrorIs(t, err, ErrEmptyValue)

	_, err = ParseFloat("NaN")
	require.ErrorIs(t, err, ErrNotFinite)

	_, err = ParseFloat("+Inf")
	require.ErrorIs(t, err, ErrNotFinite)

	_, err = ParseFloat("12x")
	require.ErrorIs(t, err, ErrConversionFailed)
}

func TestParseInt(t *testing.T) {
	got, err := ParseInt("10737397")
	require.NoError(t, err)
	assert.Equal(t, int64(10737397), got)

	_, err = ParseInt("")
	require.ErrorIs(t, err, ErrEmptyValue)

	_, err = ParseInt("1.5")
	require.ErrorIs(t, err, ErrConversionFailed)
}

func TestDecToFloat64(t *testing.T) {
	dec := sdkmath.LegacyMustNewDecFromStr("0.250000000000000000")
	got, err := DecToFloat64(dec)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-12)

	_, err = DecToFloat64(sdkmath.LegacyDec{})
	require.ErrorIs(t, err, ErrEmptyValue)
}

func TestDecRoundTripPrecision(t *testing.T) {
	// A raw 1e18 amount divided by its precision must come back exact.
	amount := sdkmath.LegacyMustNewDecFromStr("123456789000000000000")
	precision := sdkmath.LegacyNewDec(10).Power(18)

	got, err := DecToFloat64(amount.Quo(precision))
	require.NoError(t, err)
	assert.InDelta(t, 123.456789, got, 1e-9)
}
