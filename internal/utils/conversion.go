/*
This file contains common utility functions for decoding subgraph numeric
strings into SDK decimals and floats, with strict finiteness handling.

Subgraphs ship every quantity as a string: raw integer-scaled amounts
(1e12/1e18) and already decimal-adjusted USD values. Nothing downstream
should ever see a NaN or an Inf from this boundary.
*/

package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	sdkmath "cosmossdk.io/math"
)

// Error definitions for zero-tolerance error handling
var (
	ErrEmptyValue       = errors.New("value is empty")
	ErrNotFinite        = errors.New("value is not finite")
	ErrConversionFailed = errors.New("conversion failed")
)

// ParseDec decodes a subgraph numeric string into a fixed-point decimal.
// Used for raw integer-scaled quantities where float64 would lose precision.
func ParseDec(value string) (sdkmath.LegacyDec, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return sdkmath.LegacyZeroDec(), ErrEmptyValue
	}

	dec, err := sdkmath.LegacyNewDecFromStr(value)
	if err != nil {
		return sdkmath.LegacyZeroDec(), fmt.Errorf("%w: %q is not a decimal: %w", ErrConversionFailed, value, err)
	}
	return dec, nil
}

// ParseFloat decodes a subgraph numeric string into a float64. Used for
// USD-denominated and already decimal-adjusted fields.
func ParseFloat(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrEmptyValue
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a float: %w", ErrConversionFailed, value, err)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: result is %f", ErrNotFinite, result)
	}
	return result, nil
}

// ParseInt decodes a subgraph integer string (block heights, alloc points).
func ParseInt(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrEmptyValue
	}

	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer: %w", ErrConversionFailed, value, err)
	}
	return result, nil
}

// DecToFloat64 converts a fixed-point decimal to float64 with finiteness checks.
func DecToFloat64(dec sdkmath.LegacyDec) (float64, error) {
	if dec.IsNil() {
		return 0, ErrEmptyValue
	}

	result, err := dec.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, fmt.Errorf("%w: result is %f", ErrNotFinite, result)
	}
	return result, nil
}
