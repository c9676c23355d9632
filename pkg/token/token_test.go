package token

import (
	"testing"

	"blue/pkg/mathlib"

	"github.com/bmizerany/assert"
)

func TestConstantWrappedToken(t *testing.T) {
	t.Run("more decimals", func(t *testing.T) {
		w := ConstantWrappedToken{Decimals: 18, UnderlyingDecimals: 6}
		assert.Equal(t, mathlib.WAD, w.Wrap(mathlib.New(1_000_000), mathlib.Down))
		assert.Equal(t, mathlib.New(1), w.Unwrap(mathlib.New(1_000_000_000_001), mathlib.Down))
		assert.Equal(t, mathlib.New(2), w.Unwrap(mathlib.New(1_000_000_000_001), mathlib.Up))
	})

	t.Run("fewer decimals", func(t *testing.T) {
		w := ConstantWrappedToken{Decimals: 6, UnderlyingDecimals: 18}
		assert.Equal(t, mathlib.New(1_000_000), w.Wrap(mathlib.WAD, mathlib.Down))
		assert.Equal(t, mathlib.WAD, w.Unwrap(mathlib.New(1_000_000), mathlib.Down))
	})
}

func TestExchangeRateWrappedToken(t *testing.T) {
	var w Wrapper = ExchangeRateWrappedToken{WrappedTokenExchangeRate: mathlib.MustParseWad("1.5")}

	assert.Equal(t, mathlib.New(666), w.Wrap(mathlib.New(1000), mathlib.Down))
	assert.Equal(t, mathlib.New(667), w.Wrap(mathlib.New(1000), mathlib.Up))
	assert.Equal(t, mathlib.New(1500), w.Unwrap(mathlib.New(1000), mathlib.Down))
}
