package vaultv2

import (
	"blue/core"
	"blue/pkg/mathlib"
	"blue/pkg/token"

	"github.com/holiman/uint256"
)

// VaultV2 snapshot of an adapter vault
type VaultV2 struct {
	State *core.VaultV2State

	caps map[core.Hash]*core.VaultV2Cap
}

var _ token.Wrapper = (*VaultV2)(nil)

// NewVaultV2 copies state into a new VaultV2
func NewVaultV2(state *core.VaultV2State) *VaultV2 {
	s := state.Clone()
	caps := make(map[core.Hash]*core.VaultV2Cap, len(s.Caps))
	for _, c := range s.Caps {
		caps[c.ID] = c
	}

	return &VaultV2{State: s, caps: caps}
}

// Address vault address
func (v *VaultV2) Address() core.Address {
	return v.State.Address
}

// Cap caps and allocation of id
func (v *VaultV2) Cap(id core.Hash) (*core.VaultV2Cap, bool) {
	c, ok := v.caps[id]
	return c, ok
}

// ToAssets shares * (totalAssets + 1) / (totalSupply + virtualShares)
func (v *VaultV2) ToAssets(shares *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.MulDiv(
		shares,
		mathlib.Add(v.State.TotalAssets, mathlib.New(1)),
		mathlib.Add(v.State.TotalSupply, v.State.VirtualShares),
		rounding,
	)
}

// ToShares assets * (totalSupply + virtualShares) / (totalAssets + 1)
func (v *VaultV2) ToShares(assets *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return mathlib.MulDiv(
		assets,
		mathlib.Add(v.State.TotalSupply, v.State.VirtualShares),
		mathlib.Add(v.State.TotalAssets, mathlib.New(1)),
		rounding,
	)
}

// Wrap assets to shares
func (v *VaultV2) Wrap(assets *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return v.ToShares(assets, rounding)
}

// Unwrap shares to assets
func (v *VaultV2) Unwrap(shares *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return v.ToAssets(shares, rounding)
}

// SharePrice assets redeemable by one whole share
func (v *VaultV2) SharePrice() *uint256.Int {
	return v.ToAssets(token.Pow10(v.State.Decimals), mathlib.Down)
}
