package core

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// MarketView market accrued to Timestamp with derived rates
type MarketView struct {
	ID                         MarketID        `json:"id" yaml:"id"`
	Params                     *MarketParams   `json:"params" yaml:"params"`
	State                      *MarketState    `json:"state" yaml:"state"`
	Timestamp                  uint64          `json:"timestamp" yaml:"timestamp"`
	Utilization                *uint256.Int    `json:"utilization" yaml:"utilization"`
	Liquidity                  *uint256.Int    `json:"liquidity" yaml:"liquidity"`
	BorrowRate                 *uint256.Int    `json:"borrow_rate" yaml:"borrow_rate"`
	SupplyRate                 *uint256.Int    `json:"supply_rate" yaml:"supply_rate"`
	BorrowApy                  decimal.Decimal `json:"borrow_apy" yaml:"borrow_apy"`
	SupplyApy                  decimal.Decimal `json:"supply_apy" yaml:"supply_apy"`
	ApyAtTarget                decimal.Decimal `json:"apy_at_target" yaml:"apy_at_target"`
	LiquidationIncentiveFactor *uint256.Int    `json:"liquidation_incentive_factor" yaml:"liquidation_incentive_factor"`
}

// PositionView position accrued to Timestamp with its risk figures,
// price-dependent fields are nil when the oracle price is unknown
type PositionView struct {
	Position               *Position      `json:"position" yaml:"position"`
	Timestamp              uint64         `json:"timestamp" yaml:"timestamp"`
	SupplyAssets           *uint256.Int   `json:"supply_assets" yaml:"supply_assets"`
	BorrowAssets           *uint256.Int   `json:"borrow_assets" yaml:"borrow_assets"`
	CollateralValue        *uint256.Int   `json:"collateral_value,omitempty" yaml:"collateral_value,omitempty"`
	MaxBorrowAssets        *uint256.Int   `json:"max_borrow_assets,omitempty" yaml:"max_borrow_assets,omitempty"`
	HealthFactor           *uint256.Int   `json:"health_factor,omitempty" yaml:"health_factor,omitempty"`
	Ltv                    *uint256.Int   `json:"ltv,omitempty" yaml:"ltv,omitempty"`
	LiquidationPrice       *uint256.Int   `json:"liquidation_price,omitempty" yaml:"liquidation_price,omitempty"`
	SeizableCollateral     *uint256.Int   `json:"seizable_collateral,omitempty" yaml:"seizable_collateral,omitempty"`
	WithdrawableCollateral *uint256.Int   `json:"withdrawable_collateral,omitempty" yaml:"withdrawable_collateral,omitempty"`
	IsHealthy              *bool          `json:"is_healthy,omitempty" yaml:"is_healthy,omitempty"`
	BorrowCapacity         *CapacityLimit `json:"borrow_capacity,omitempty" yaml:"borrow_capacity,omitempty"`
	WithdrawCapacity       *CapacityLimit `json:"withdraw_capacity" yaml:"withdraw_capacity"`
	RepayCapacity          *CapacityLimit `json:"repay_capacity" yaml:"repay_capacity"`
}

// PreLiquidationView pre-liquidation figures of a position
type PreLiquidationView struct {
	Position            *PositionView         `json:"position" yaml:"position"`
	Params              *PreLiquidationParams `json:"params" yaml:"params"`
	IsPreLiquidatable   bool                  `json:"is_pre_liquidatable" yaml:"is_pre_liquidatable"`
	PreHealthFactor     *uint256.Int          `json:"pre_health_factor,omitempty" yaml:"pre_health_factor,omitempty"`
	PreLiquidationPrice *uint256.Int          `json:"pre_liquidation_price,omitempty" yaml:"pre_liquidation_price,omitempty"`
	CloseFactor         *uint256.Int          `json:"close_factor,omitempty" yaml:"close_factor,omitempty"`
	IncentiveFactor     *uint256.Int          `json:"incentive_factor,omitempty" yaml:"incentive_factor,omitempty"`
	RepayableShares     *uint256.Int          `json:"repayable_shares,omitempty" yaml:"repayable_shares,omitempty"`
	SeizableCollateral  *uint256.Int          `json:"seizable_collateral,omitempty" yaml:"seizable_collateral,omitempty"`
}

// VaultAllocationView a vault's supply on one market
type VaultAllocationView struct {
	MarketID     MarketID      `json:"market_id" yaml:"market_id"`
	Cap          *uint256.Int  `json:"cap" yaml:"cap"`
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	SupplyAssets *uint256.Int  `json:"supply_assets" yaml:"supply_assets"`
	Proportion   *uint256.Int  `json:"proportion" yaml:"proportion"`
	Withdrawable *CapacityLimit `json:"withdrawable" yaml:"withdrawable"`
}

// VaultView queue vault accrued to Timestamp
type VaultView struct {
	Config          *VaultConfig           `json:"config" yaml:"config"`
	State           *VaultState            `json:"state" yaml:"state"`
	Timestamp       uint64                 `json:"timestamp" yaml:"timestamp"`
	FeeShares       *uint256.Int           `json:"fee_shares" yaml:"fee_shares"`
	Liquidity       *uint256.Int           `json:"liquidity" yaml:"liquidity"`
	SharePrice      *uint256.Int           `json:"share_price" yaml:"share_price"`
	Apy             decimal.Decimal        `json:"apy" yaml:"apy"`
	NetApy          decimal.Decimal        `json:"net_apy" yaml:"net_apy"`
	DepositCapacity *CapacityLimit         `json:"deposit_capacity" yaml:"deposit_capacity"`
	Allocations     []*VaultAllocationView `json:"allocations" yaml:"allocations"`
}

// VaultV2View adapter vault accrued to Timestamp
type VaultV2View struct {
	State                *VaultV2State  `json:"state" yaml:"state"`
	Timestamp            uint64         `json:"timestamp" yaml:"timestamp"`
	PerformanceFeeShares *uint256.Int   `json:"performance_fee_shares" yaml:"performance_fee_shares"`
	ManagementFeeShares  *uint256.Int   `json:"management_fee_shares" yaml:"management_fee_shares"`
	SharePrice           *uint256.Int   `json:"share_price" yaml:"share_price"`
	DepositCapacity      *CapacityLimit `json:"deposit_capacity" yaml:"deposit_capacity"`
	WithdrawCapacity     *CapacityLimit `json:"withdraw_capacity" yaml:"withdraw_capacity"`
}
