package token

import (
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

// Wrapper converts between an underlying amount and its wrapped amount
type Wrapper interface {
	// Wrap underlying amount to wrapped amount
	Wrap(amount *uint256.Int, rounding mathlib.Rounding) *uint256.Int
	// Unwrap wrapped amount to underlying amount
	Unwrap(amount *uint256.Int, rounding mathlib.Rounding) *uint256.Int
}

// ConstantWrappedToken wraps at a fixed decimals ratio
type ConstantWrappedToken struct {
	Decimals           uint8
	UnderlyingDecimals uint8
}

func (t ConstantWrappedToken) scale() (up bool, factor *uint256.Int) {
	if t.Decimals >= t.UnderlyingDecimals {
		return true, Pow10(t.Decimals - t.UnderlyingDecimals)
	}

	return false, Pow10(t.UnderlyingDecimals - t.Decimals)
}

// Wrap amount scaled to Decimals
func (t ConstantWrappedToken) Wrap(amount *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	up, factor := t.scale()
	if up {
		return mathlib.Mul(amount, factor)
	}

	return mathlib.MulDiv(amount, mathlib.New(1), factor, rounding)
}

// Unwrap amount scaled to UnderlyingDecimals
func (t ConstantWrappedToken) Unwrap(amount *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	up, factor := t.scale()
	if up {
		return mathlib.MulDiv(amount, mathlib.New(1), factor, rounding)
	}

	return mathlib.Mul(amount, factor)
}

// ExchangeRateWrappedToken wraps at a WAD-scaled underlying per wrapped rate
type ExchangeRateWrappedToken struct {
	WrappedTokenExchangeRate *uint256.Int
}

// Wrap amount / rate
func (t ExchangeRateWrappedToken) Wrap(amount *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.WDiv(amount, t.WrappedTokenExchangeRate, rounding)
}

// Unwrap amount * rate
func (t ExchangeRateWrappedToken) Unwrap(amount *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.WMul(amount, t.WrappedTokenExchangeRate, rounding)
}

// Pow10 10^n
func Pow10(n uint8) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(n)))
}
