package mathlib

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Parse raw integer field, decimal or 0x-prefixed hex
func Parse(s string) (*uint256.Int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return new(uint256.Int), nil
	}

	z := new(uint256.Int)
	if err := z.UnmarshalText([]byte(s)); err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}

	return z, nil
}

// MustParse like Parse but panics
func MustParse(s string) *uint256.Int {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return z
}

// ParseUnits parses a human decimal string ("0.86") scaled by 10^decimals.
// Digits past the scale are rejected rather than truncated.
func ParseUnits(s string, decimals int32) (*uint256.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}

	if d.IsNegative() {
		return nil, fmt.Errorf("parse %q: negative value", s)
	}

	scaled := d.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, fmt.Errorf("parse %q: more than %d decimals", s, decimals)
	}

	z, overflow := uint256.FromBig(scaled.BigInt())
	if overflow {
		return nil, fmt.Errorf("parse %q: %w", s, ErrOverflow)
	}

	return z, nil
}

// ParseWad parses "0.86" into 0.86e18
func ParseWad(s string) (*uint256.Int, error) {
	return ParseUnits(s, 18)
}

// MustParseWad like ParseWad but panics
func MustParseWad(s string) *uint256.Int {
	z, err := ParseWad(s)
	if err != nil {
		panic(err)
	}

	return z
}
