package vault

import (
	"blue/pkg/mathlib"
	"blue/pkg/token"

	"github.com/holiman/uint256"
)

// VirtualAssets added to total assets in every conversion
var VirtualAssets = uint256.NewInt(1)

// DecimalsOffset 18 - decimals, floored at zero
func DecimalsOffset(decimals uint8) uint8 {
	if decimals >= 18 {
		return 0
	}

	return 18 - decimals
}

// VirtualShares 10^decimalsOffset
func VirtualShares(decimalsOffset uint8) *uint256.Int {
	return token.Pow10(decimalsOffset)
}

// ToAssets shares * (totalAssets + 1) / (totalSupply + 10^offset)
func ToAssets(shares, totalAssets, totalSupply *uint256.Int, decimalsOffset uint8, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.FullMulDiv(
		shares,
		mathlib.Add(totalAssets, VirtualAssets),
		mathlib.Add(totalSupply, VirtualShares(decimalsOffset)),
		rounding,
	)
}

// ToShares assets * (totalSupply + 10^offset) / (totalAssets + 1)
func ToShares(assets, totalAssets, totalSupply *uint256.Int, decimalsOffset uint8, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.FullMulDiv(
		assets,
		mathlib.Add(totalSupply, VirtualShares(decimalsOffset)),
		mathlib.Add(totalAssets, VirtualAssets),
		rounding,
	)
}
