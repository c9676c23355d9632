package vault

import (
	"fmt"

	"blue/core"
	"blue/pkg/blue"
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Allocation a vault's configuration and position on one market
type Allocation struct {
	Config   *core.VaultMarketConfig
	Position *blue.AccrualPosition
}

// SupplyAssets assets the vault supplies to the market
func (a *Allocation) SupplyAssets() *uint256.Int {
	return a.Position.SupplyAssets()
}

// AccrualVault vault together with its market allocations
type AccrualVault struct {
	*Vault

	// Allocations in withdraw queue order
	Allocations []*Allocation

	index map[core.MarketID]*Allocation
}

// NewAccrualVault binds allocations to vault, each position must belong to the vault
func NewAccrualVault(v *Vault, allocations []*Allocation) (*AccrualVault, error) {
	index := make(map[core.MarketID]*Allocation, len(allocations))
	for _, a := range allocations {
		if a.Position.Position.User != v.Address() {
			return nil, fmt.Errorf("position of %s on market %s: %w",
				a.Position.Position.User, a.Position.Market.ID(), core.ErrInvalidAllocation)
		}

		index[a.Position.Market.ID()] = a
	}

	ordered := make([]*Allocation, 0, len(allocations))
	for _, id := range v.State.WithdrawQueue {
		if a, ok := index[id]; ok {
			ordered = append(ordered, a)
		}
	}

	if len(ordered) != len(index) {
		return nil, fmt.Errorf("allocations outside the withdraw queue: %w", core.ErrInvalidAllocation)
	}

	return &AccrualVault{Vault: v, Allocations: ordered, index: index}, nil
}

// Allocation allocation on market id
func (v *AccrualVault) Allocation(id core.MarketID) (*Allocation, bool) {
	a, ok := v.index[id]
	return a, ok
}

// RealTotalAssets sum of the allocations' supply assets
func (v *AccrualVault) RealTotalAssets() *uint256.Int {
	total := mathlib.Zero()
	for _, a := range v.Allocations {
		total = mathlib.Add(total, a.SupplyAssets())
	}

	return total
}

// Liquidity assets withdrawable from all allocations
func (v *AccrualVault) Liquidity() *uint256.Int {
	total := mathlib.Zero()
	for _, a := range v.Allocations {
		total = mathlib.Add(total, a.Position.WithdrawCapacityLimit().Value)
	}

	return total
}

// AllocationProportion WAD share of total assets supplied to market id
func (v *AccrualVault) AllocationProportion(id core.MarketID) *uint256.Int {
	a, ok := v.index[id]
	if !ok || v.State.TotalAssets.IsZero() {
		return mathlib.Zero()
	}

	return mathlib.WDivDown(a.SupplyAssets(), v.State.TotalAssets)
}

// AccrualResult accrued vault and the fee shares minted
type AccrualResult struct {
	Vault     *AccrualVault
	FeeShares *uint256.Int
}

// AccrueInterest accrues every allocation to timestamp then mints the
// performance fee on the interest earned since the last total assets
func (v *AccrualVault) AccrueInterest(timestamp uint64) (result *AccrualResult, err error) {
	defer mathlib.Recover(&err)

	allocations := make([]*Allocation, len(v.Allocations))
	for i, a := range v.Allocations {
		position, err := a.Position.AccrueInterest(timestamp)
		if err != nil {
			return nil, err
		}

		allocations[i] = &Allocation{Config: a.Config, Position: position}
	}

	state := v.State.Clone()
	next, err := NewAccrualVault(&Vault{Config: v.Config, State: state}, allocations)
	if err != nil {
		return nil, err
	}

	realTotalAssets := next.RealTotalAssets()
	newTotalAssets := realTotalAssets
	if state.LostAssets != nil {
		newLostAssets := state.LostAssets
		if realTotalAssets.Lt(mathlib.ZeroFloorSub(state.LastTotalAssets, state.LostAssets)) {
			newLostAssets = mathlib.Sub(state.LastTotalAssets, realTotalAssets)
		}

		newTotalAssets = mathlib.Add(realTotalAssets, newLostAssets)
		state.LostAssets = newLostAssets
	}

	feeShares := mathlib.Zero()
	totalInterest := mathlib.ZeroFloorSub(newTotalAssets, state.LastTotalAssets)
	if !totalInterest.IsZero() && !state.Fee.IsZero() {
		feeAssets := mathlib.WMulDown(totalInterest, state.Fee)
		feeShares = ToShares(
			feeAssets,
			mathlib.Sub(newTotalAssets, feeAssets),
			state.TotalSupply,
			v.Config.DecimalsOffset,
			mathlib.Down,
		)
	}

	state.TotalSupply = mathlib.Add(state.TotalSupply, feeShares)
	state.TotalAssets = newTotalAssets
	state.LastTotalAssets = newTotalAssets.Clone()

	return &AccrualResult{Vault: next, FeeShares: feeShares}, nil
}

// DepositCapacityLimit deposit bounded by the remaining caps of enabled supply queue markets
func (v *AccrualVault) DepositCapacityLimit(assets *uint256.Int) *core.CapacityLimit {
	suppliable := v.MaxDeposit()
	if assets.Gt(suppliable) {
		return &core.CapacityLimit{Value: suppliable, Limiter: core.LimiterCap}
	}

	return &core.CapacityLimit{Value: assets.Clone(), Limiter: core.LimiterBalance}
}

// MaxDeposit assets the supply queue can still absorb
func (v *AccrualVault) MaxDeposit() *uint256.Int {
	suppliable := mathlib.Zero()
	for _, id := range v.State.SupplyQueue {
		a, ok := v.index[id]
		if !ok || !a.Config.Enabled {
			continue
		}

		suppliable = mathlib.Add(suppliable, mathlib.ZeroFloorSub(a.Config.Cap, a.SupplyAssets()))
	}

	return suppliable
}

// WithdrawCapacityLimit withdrawal of shares bounded by the vault liquidity
func (v *AccrualVault) WithdrawCapacityLimit(shares *uint256.Int) *core.CapacityLimit {
	assets := v.ToAssets(shares, mathlib.Down)
	if liquidity := v.Liquidity(); assets.Gt(liquidity) {
		return &core.CapacityLimit{Value: liquidity, Limiter: core.LimiterLiquidity}
	}

	return &core.CapacityLimit{Value: assets, Limiter: core.LimiterBalance}
}

// MaxWithdraw assets withdrawable right now
func (v *AccrualVault) MaxWithdraw() *uint256.Int {
	return v.Liquidity()
}

// Apy supply apy of the allocations weighted by supply assets
func (v *AccrualVault) Apy() decimal.Decimal {
	total := v.RealTotalAssets()
	if total.IsZero() {
		return decimal.Zero
	}

	weighted := decimal.Zero
	for _, a := range v.Allocations {
		assets := decimal.NewFromBigInt(a.SupplyAssets().ToBig(), 0)
		weighted = weighted.Add(a.Position.Market.SupplyApy().Mul(assets))
	}

	return weighted.Div(decimal.NewFromBigInt(total.ToBig(), 0))
}

// NetApy apy after the vault fee
func (v *AccrualVault) NetApy() decimal.Decimal {
	fee := decimal.NewFromBigInt(v.State.Fee.ToBig(), -18)
	return v.Apy().Mul(decimal.New(1, 0).Sub(fee))
}
