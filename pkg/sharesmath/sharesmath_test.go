package sharesmath

import (
	"testing"

	"blue/pkg/mathlib"

	"github.com/stretchr/testify/assert"
)

func TestEmptyMarket(t *testing.T) {
	// first depositor gets 1e6 shares per asset
	assert.Equal(t, mathlib.New(1_000_000), ToShares(mathlib.New(1), mathlib.Zero(), mathlib.Zero(), mathlib.Down))
	assert.Equal(t, mathlib.New(1), ToAssets(mathlib.New(1_000_000), mathlib.Zero(), mathlib.Zero(), mathlib.Down))
	assert.Equal(t, mathlib.Zero(), ToAssets(mathlib.New(999_999), mathlib.Zero(), mathlib.Zero(), mathlib.Down))
	assert.Equal(t, mathlib.New(1), ToAssets(mathlib.New(999_999), mathlib.Zero(), mathlib.Zero(), mathlib.Up))
}

func TestRoundTripNeverLosesShares(t *testing.T) {
	totals := []struct {
		assets, shares string
	}{
		{"0", "0"},
		{"1000000000000000000", "1000000000000000000000000"},
		{"1234567890123456789", "1000000000000000000000000"},
		{"1000000000000000000000000", "999999999999999999999999999999"},
		{"17", "3"},
	}

	for _, tt := range totals {
		totalAssets := mathlib.MustParse(tt.assets)
		totalShares := mathlib.MustParse(tt.shares)

		for _, s := range []uint64{0, 1, 999_999, 1_000_000, 123_456_789_012, 1e18} {
			shares := mathlib.New(s)
			assets := ToAssets(shares, totalAssets, totalShares, mathlib.Down)
			back := ToShares(assets, totalAssets, totalShares, mathlib.Up)
			assert.False(t, back.Gt(shares), "assets=%s shares=%d", tt.assets, s)

			assets = ToAssets(shares, totalAssets, totalShares, mathlib.Up)
			back = ToShares(assets, totalAssets, totalShares, mathlib.Up)
			assert.False(t, back.Lt(shares), "assets=%s shares=%d", tt.assets, s)
		}
	}
}

func TestRoundingDirection(t *testing.T) {
	totalAssets := mathlib.New(3)
	totalShares := mathlib.New(2_000_000)

	down := ToShares(mathlib.New(1), totalAssets, totalShares, mathlib.Down)
	up := ToShares(mathlib.New(1), totalAssets, totalShares, mathlib.Up)
	assert.Equal(t, mathlib.New(750_000), down)
	assert.Equal(t, mathlib.New(750_000), up)

	down = ToAssets(mathlib.New(1), totalAssets, totalShares, mathlib.Down)
	up = ToAssets(mathlib.New(1), totalAssets, totalShares, mathlib.Up)
	assert.True(t, down.IsZero())
	assert.Equal(t, mathlib.New(1), up)
}
