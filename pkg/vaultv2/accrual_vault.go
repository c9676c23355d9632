package vaultv2

import (
	"fmt"

	"blue/core"
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

// AccrualVaultV2 adapter vault together with its adapters
type AccrualVaultV2 struct {
	*VaultV2

	Adapters []Adapter

	liquidityAdapter Adapter
}

// NewAccrualVaultV2 binds adapters to v, each adapter must be enabled on v
func NewAccrualVaultV2(v *VaultV2, adapters []Adapter) (*AccrualVaultV2, error) {
	enabled := make(map[core.Address]bool, len(v.State.Adapters))
	for _, a := range v.State.Adapters {
		enabled[a] = true
	}

	av := &AccrualVaultV2{VaultV2: v, Adapters: adapters}
	for _, a := range adapters {
		if !enabled[a.Address()] {
			return nil, fmt.Errorf("adapter %s not enabled on %s: %w", a.Address(), v.Address(), core.ErrInvalidAllocation)
		}

		if a.Address() == v.State.LiquidityAdapter {
			av.liquidityAdapter = a
		}
	}

	if av.liquidityAdapter == nil && !v.State.LiquidityAdapter.IsZero() {
		return nil, fmt.Errorf("liquidity adapter %s missing: %w", v.State.LiquidityAdapter, core.ErrInvalidAllocation)
	}

	return av, nil
}

// LiquidityAdapter adapter deposits are routed to, nil when none
func (v *AccrualVaultV2) LiquidityAdapter() Adapter {
	return v.liquidityAdapter
}

// RealAssets idle balance plus every adapter's real assets at timestamp
func (v *AccrualVaultV2) RealAssets(timestamp uint64) (total *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	total = v.State.AssetBalance.Clone()
	for _, a := range v.Adapters {
		assets, err := a.RealAssets(timestamp)
		if err != nil {
			return nil, err
		}

		total = mathlib.Add(total, assets)
	}

	return total, nil
}

// AccrualV2Result accrued vault and the fee shares minted
type AccrualV2Result struct {
	Vault                *AccrualVaultV2
	PerformanceFeeShares *uint256.Int
	ManagementFeeShares  *uint256.Int
}

// AccrueInterest grows total assets toward the real assets, bounded by
// maxRate, then mints performance and management fee shares
func (v *AccrualVaultV2) AccrueInterest(timestamp uint64) (result *AccrualV2Result, err error) {
	defer mathlib.Recover(&err)

	if timestamp < v.State.LastUpdate {
		return nil, &core.InvalidInterestAccrualError{
			Subject:    v.Address().Hex(),
			Timestamp:  timestamp,
			LastUpdate: v.State.LastUpdate,
		}
	}

	elapsed := mathlib.New(timestamp - v.State.LastUpdate)
	if elapsed.IsZero() {
		return &AccrualV2Result{
			Vault:                v,
			PerformanceFeeShares: mathlib.Zero(),
			ManagementFeeShares:  mathlib.Zero(),
		}, nil
	}

	adapters := make([]Adapter, len(v.Adapters))
	for i, a := range v.Adapters {
		if adapters[i], err = a.AccrueInterest(timestamp); err != nil {
			return nil, err
		}
	}

	state := v.State.Clone()
	realAssets := state.AssetBalance.Clone()
	for _, a := range adapters {
		realAssets = mathlib.Add(realAssets, a.Assets())
	}

	maxTotalAssets := mathlib.Add(
		state.TotalAssets,
		mathlib.WMulDown(mathlib.Mul(state.TotalAssets, elapsed), state.MaxRate),
	)
	newTotalAssets := mathlib.Min(realAssets, maxTotalAssets)

	interest := mathlib.ZeroFloorSub(newTotalAssets, state.TotalAssets)
	performanceFeeAssets := mathlib.Zero()
	if !interest.IsZero() && !state.PerformanceFee.IsZero() {
		performanceFeeAssets = mathlib.WMulDown(interest, state.PerformanceFee)
	}

	managementFeeAssets := mathlib.Zero()
	if !state.ManagementFee.IsZero() {
		managementFeeAssets = mathlib.WMulDown(mathlib.Mul(newTotalAssets, elapsed), state.ManagementFee)
	}

	withoutFees := mathlib.Sub(mathlib.Sub(newTotalAssets, performanceFeeAssets), managementFeeAssets)
	supply := mathlib.Add(state.TotalSupply, state.VirtualShares)
	performanceFeeShares := mathlib.MulDivDown(performanceFeeAssets, supply, mathlib.Add(withoutFees, mathlib.New(1)))
	managementFeeShares := mathlib.MulDivDown(managementFeeAssets, supply, mathlib.Add(withoutFees, mathlib.New(1)))

	state.TotalSupply = mathlib.Add(mathlib.Add(state.TotalSupply, performanceFeeShares), managementFeeShares)
	state.TotalAssets = newTotalAssets
	state.LastUpdate = timestamp

	next, err := NewAccrualVaultV2(NewVaultV2(state), adapters)
	if err != nil {
		return nil, err
	}

	return &AccrualV2Result{
		Vault:                next,
		PerformanceFeeShares: performanceFeeShares,
		ManagementFeeShares:  managementFeeShares,
	}, nil
}

// DepositCapacityLimit deposit bounded by the caps of every id the
// liquidity adapter allocates to
func (v *AccrualVaultV2) DepositCapacityLimit(assets *uint256.Int) *core.CapacityLimit {
	limit := &core.CapacityLimit{Value: assets.Clone(), Limiter: core.LimiterBalance}
	if v.liquidityAdapter == nil {
		return limit
	}

	for _, id := range v.liquidityAdapter.IDs() {
		c, ok := v.Cap(id)
		if !ok {
			return &core.CapacityLimit{Value: mathlib.Zero(), Limiter: core.LimiterAbsoluteCap}
		}

		if remaining := mathlib.ZeroFloorSub(c.AbsoluteCap, c.Allocation); remaining.Lt(limit.Value) {
			limit = &core.CapacityLimit{Value: remaining, Limiter: core.LimiterAbsoluteCap}
		}

		if c.RelativeCap.Eq(mathlib.WAD) {
			continue
		}

		relative := mathlib.MulDivDown(v.State.TotalAssets, c.RelativeCap, mathlib.WAD)
		if remaining := mathlib.ZeroFloorSub(relative, c.Allocation); remaining.Lt(limit.Value) {
			limit = &core.CapacityLimit{Value: remaining, Limiter: core.LimiterRelativeCap}
		}
	}

	return limit
}

// Liquidity idle balance plus what the liquidity adapter can return
func (v *AccrualVaultV2) Liquidity() *uint256.Int {
	if v.liquidityAdapter == nil {
		return v.State.AssetBalance.Clone()
	}

	return mathlib.Add(v.State.AssetBalance, v.liquidityAdapter.Liquidity())
}

// WithdrawCapacityLimit withdrawal of shares bounded by the vault liquidity
func (v *AccrualVaultV2) WithdrawCapacityLimit(shares *uint256.Int) *core.CapacityLimit {
	assets := v.ToAssets(shares, mathlib.Down)
	if liquidity := v.Liquidity(); assets.Gt(liquidity) {
		return &core.CapacityLimit{Value: liquidity, Limiter: core.LimiterLiquidity}
	}

	return &core.CapacityLimit{Value: assets, Limiter: core.LimiterBalance}
}
