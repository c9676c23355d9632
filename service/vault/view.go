package vault

import (
	"blue/core"
	"blue/pkg/mathlib"
	"blue/pkg/vault"
	"blue/pkg/vaultv2"
)

// VaultView derived figures of an accrued queue vault
func VaultView(result *vault.AccrualResult, timestamp uint64) *core.VaultView {
	v := result.Vault
	view := &core.VaultView{
		Config:          v.Config,
		State:           v.State,
		Timestamp:       timestamp,
		FeeShares:       result.FeeShares,
		Liquidity:       v.Liquidity(),
		SharePrice:      v.SharePrice(),
		Apy:             v.Apy(),
		NetApy:          v.NetApy(),
		DepositCapacity: v.DepositCapacityLimit(mathlib.MaxUint256),
		Allocations:     make([]*core.VaultAllocationView, len(v.Allocations)),
	}

	for i, a := range v.Allocations {
		view.Allocations[i] = &core.VaultAllocationView{
			MarketID:     a.Config.MarketID,
			Cap:          a.Config.Cap,
			Enabled:      a.Config.Enabled,
			SupplyAssets: a.SupplyAssets(),
			Proportion:   v.AllocationProportion(a.Config.MarketID),
			Withdrawable: a.Position.WithdrawCapacityLimit(),
		}
	}

	return view
}

// VaultV2View derived figures of an accrued adapter vault
func VaultV2View(result *vaultv2.AccrualV2Result, timestamp uint64) *core.VaultV2View {
	v := result.Vault
	return &core.VaultV2View{
		State:                v.State,
		Timestamp:            timestamp,
		PerformanceFeeShares: result.PerformanceFeeShares,
		ManagementFeeShares:  result.ManagementFeeShares,
		SharePrice:           v.SharePrice(),
		DepositCapacity:      v.DepositCapacityLimit(mathlib.MaxUint256),
		WithdrawCapacity:     v.WithdrawCapacityLimit(v.State.TotalSupply),
	}
}
