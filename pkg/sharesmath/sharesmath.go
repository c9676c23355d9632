package sharesmath

import (
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

var (
	// VirtualShares added to the share side of every conversion
	VirtualShares = uint256.NewInt(1_000_000)
	// VirtualAssets added to the asset side of every conversion
	VirtualAssets = uint256.NewInt(1)
)

// ToAssets shares * (totalAssets + 1) / (totalShares + 1e6)
func ToAssets(shares, totalAssets, totalShares *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.MulDiv(
		shares,
		mathlib.Add(totalAssets, VirtualAssets),
		mathlib.Add(totalShares, VirtualShares),
		rounding,
	)
}

// ToShares assets * (totalShares + 1e6) / (totalAssets + 1)
func ToShares(assets, totalAssets, totalShares *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.MulDiv(
		assets,
		mathlib.Add(totalShares, VirtualShares),
		mathlib.Add(totalAssets, VirtualAssets),
		rounding,
	)
}
