package number

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// ApyPrecision digits kept by Apy
const ApyPrecision = 18

var secondsPerYear = decimal.New(365*24*3600, 0)

// FromUnits x / 10^decimals, nil is zero
func FromUnits(x *uint256.Int, decimals int32) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(x.ToBig(), -decimals)
}

// FromWad x / 1e18
func FromWad(x *uint256.Int) decimal.Decimal {
	return FromUnits(x, 18)
}

// Apr simple annualized rate of a WAD-scaled per-second rate
func Apr(rate *uint256.Int) decimal.Decimal {
	return FromWad(rate).Mul(secondsPerYear)
}

// Apy continuously compounded annual yield e^(rate * year) - 1
func Apy(rate *uint256.Int) decimal.Decimal {
	apr := Apr(rate)
	if apr.IsZero() {
		return decimal.Zero
	}

	e, err := apr.ExpTaylor(ApyPrecision)
	if err != nil {
		return decimal.Zero
	}

	return e.Sub(decimal.New(1, 0))
}
