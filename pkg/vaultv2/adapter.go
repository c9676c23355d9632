package vaultv2

import (
	"blue/core"
	"blue/pkg/blue"
	"blue/pkg/mathlib"
	"blue/pkg/vault"

	"github.com/holiman/uint256"
)

// Adapter a venue an adapter vault allocates assets to
type Adapter interface {
	Address() core.Address
	// IDs allocation ids whose caps bound this adapter
	IDs() []core.Hash
	// Assets assets held through the adapter at its current state
	Assets() *uint256.Int
	// RealAssets assets held through the adapter, accrued to timestamp
	RealAssets(timestamp uint64) (*uint256.Int, error)
	// Liquidity assets the adapter can return right now
	Liquidity() *uint256.Int
	// AccrueInterest adapter with its underlying accrued to timestamp
	AccrueInterest(timestamp uint64) (Adapter, error)
}

// MarketAdapter supplies to a set of markets
type MarketAdapter struct {
	address core.Address
	// Positions of the adapter, one per market
	Positions []*blue.AccrualPosition
	// LiquidityMarket market deposits are routed to, nil when none
	LiquidityMarket *core.MarketParams
}

// NewMarketAdapter adapter at address holding positions
func NewMarketAdapter(address core.Address, positions []*blue.AccrualPosition, liquidityMarket *core.MarketParams) *MarketAdapter {
	return &MarketAdapter{address: address, Positions: positions, LiquidityMarket: liquidityMarket}
}

// Address adapter address
func (a *MarketAdapter) Address() core.Address {
	return a.address
}

// IDs adapter id, then the liquidity market's collateral and market ids
func (a *MarketAdapter) IDs() []core.Hash {
	ids := []core.Hash{AdapterID(a.address)}
	if a.LiquidityMarket != nil {
		ids = append(ids, MarketIDs(a.address, a.LiquidityMarket)[1:]...)
	}

	return ids
}

// MarketIDs ids a market adapter allocation to params counts toward
func MarketIDs(adapter core.Address, params *core.MarketParams) []core.Hash {
	return []core.Hash{
		AdapterID(adapter),
		CollateralTokenID(params.CollateralToken),
		MarketParamsID(adapter, params),
	}
}

// AccrueInterest accrues every position
func (a *MarketAdapter) AccrueInterest(timestamp uint64) (Adapter, error) {
	positions := make([]*blue.AccrualPosition, len(a.Positions))
	for i, p := range a.Positions {
		accrued, err := p.AccrueInterest(timestamp)
		if err != nil {
			return nil, err
		}

		positions[i] = accrued
	}

	return NewMarketAdapter(a.address, positions, a.LiquidityMarket), nil
}

// Assets supply assets of all positions
func (a *MarketAdapter) Assets() *uint256.Int {
	total := mathlib.Zero()
	for _, p := range a.Positions {
		total = mathlib.Add(total, p.SupplyAssets())
	}

	return total
}

// RealAssets supply assets of all positions accrued to timestamp
func (a *MarketAdapter) RealAssets(timestamp uint64) (*uint256.Int, error) {
	accrued, err := a.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	return accrued.Assets(), nil
}

// Liquidity withdrawable assets of the liquidity market position
func (a *MarketAdapter) Liquidity() *uint256.Int {
	if a.LiquidityMarket == nil {
		return mathlib.Zero()
	}

	id := a.LiquidityMarket.ID()
	for _, p := range a.Positions {
		if p.Market.ID() == id {
			return p.WithdrawCapacityLimit().Value
		}
	}

	return mathlib.Zero()
}

// VaultV1Adapter holds shares of a queue vault
type VaultV1Adapter struct {
	address core.Address
	Vault   *vault.AccrualVault
	Shares  *uint256.Int
}

// NewVaultV1Adapter adapter at address holding shares of v
func NewVaultV1Adapter(address core.Address, v *vault.AccrualVault, shares *uint256.Int) *VaultV1Adapter {
	return &VaultV1Adapter{address: address, Vault: v, Shares: shares.Clone()}
}

// Address adapter address
func (a *VaultV1Adapter) Address() core.Address {
	return a.address
}

// IDs adapter id
func (a *VaultV1Adapter) IDs() []core.Hash {
	return []core.Hash{AdapterID(a.address)}
}

// AccrueInterest accrues the underlying vault
func (a *VaultV1Adapter) AccrueInterest(timestamp uint64) (Adapter, error) {
	result, err := a.Vault.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	return &VaultV1Adapter{address: a.address, Vault: result.Vault, Shares: a.Shares}, nil
}

// Assets shares redeemed at the vault totals
func (a *VaultV1Adapter) Assets() *uint256.Int {
	return a.Vault.ToAssets(a.Shares, mathlib.Down)
}

// RealAssets shares redeemed at the accrued vault totals
func (a *VaultV1Adapter) RealAssets(timestamp uint64) (*uint256.Int, error) {
	accrued, err := a.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	return accrued.Assets(), nil
}

// Liquidity shares value bounded by the vault liquidity
func (a *VaultV1Adapter) Liquidity() *uint256.Int {
	return a.Vault.WithdrawCapacityLimit(a.Shares).Value
}

// VaultV2Adapter holds shares of another adapter vault
type VaultV2Adapter struct {
	address core.Address
	Vault   *AccrualVaultV2
	Shares  *uint256.Int
}

// NewVaultV2Adapter adapter at address holding shares of v
func NewVaultV2Adapter(address core.Address, v *AccrualVaultV2, shares *uint256.Int) *VaultV2Adapter {
	return &VaultV2Adapter{address: address, Vault: v, Shares: shares.Clone()}
}

// Address adapter address
func (a *VaultV2Adapter) Address() core.Address {
	return a.address
}

// IDs adapter id
func (a *VaultV2Adapter) IDs() []core.Hash {
	return []core.Hash{AdapterID(a.address)}
}

// AccrueInterest accrues the nested vault
func (a *VaultV2Adapter) AccrueInterest(timestamp uint64) (Adapter, error) {
	result, err := a.Vault.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	return &VaultV2Adapter{address: a.address, Vault: result.Vault, Shares: a.Shares}, nil
}

// Assets shares redeemed at the nested vault totals
func (a *VaultV2Adapter) Assets() *uint256.Int {
	return a.Vault.ToAssets(a.Shares, mathlib.Down)
}

// RealAssets shares redeemed at the accrued nested vault totals
func (a *VaultV2Adapter) RealAssets(timestamp uint64) (*uint256.Int, error) {
	accrued, err := a.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	return accrued.Assets(), nil
}

// Liquidity shares value bounded by the nested vault liquidity
func (a *VaultV2Adapter) Liquidity() *uint256.Int {
	return a.Vault.WithdrawCapacityLimit(a.Shares).Value
}
