package vault

import (
	"blue/core"
	"blue/pkg/mathlib"
	"blue/pkg/token"

	"github.com/holiman/uint256"
)

// Vault snapshot of a queue vault
type Vault struct {
	Config *core.VaultConfig
	State  *core.VaultState
}

var _ token.Wrapper = (*Vault)(nil)

// NewVault copies state into a new Vault
func NewVault(config *core.VaultConfig, state *core.VaultState) *Vault {
	c := *config
	return &Vault{Config: &c, State: state.Clone()}
}

// Address vault address
func (v *Vault) Address() core.Address {
	return v.Config.Address
}

// ToAssets shares to assets at the current totals
func (v *Vault) ToAssets(shares *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return ToAssets(shares, v.State.TotalAssets, v.State.TotalSupply, v.Config.DecimalsOffset, rounding)
}

// ToShares assets to shares at the current totals
func (v *Vault) ToShares(assets *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return ToShares(assets, v.State.TotalAssets, v.State.TotalSupply, v.Config.DecimalsOffset, rounding)
}

// Wrap assets to shares
func (v *Vault) Wrap(assets *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return v.ToShares(assets, rounding)
}

// Unwrap shares to assets
func (v *Vault) Unwrap(shares *uint256.Int, rounding mathlib.Rounding) *uint256.Int {
	return v.ToAssets(shares, rounding)
}

// SharePrice assets redeemable by one whole share
func (v *Vault) SharePrice() *uint256.Int {
	return v.ToAssets(token.Pow10(v.Config.Decimals), mathlib.Down)
}
