package blue

import (
	"fmt"
	"math/big"

	"blue/core"
	"blue/pkg/mathlib"
	"blue/pkg/number"
	"blue/pkg/sharesmath"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// LiquidationCursor 0.3
	LiquidationCursor = uint256.NewInt(0.3e18)
	// MaxLiquidationIncentiveFactor 1.15
	MaxLiquidationIncentiveFactor = uint256.NewInt(1.15e18)
)

// MarketID id of the market identified by params
func MarketID(params *core.MarketParams) core.MarketID {
	return params.ID()
}

// Utilization utilization rate
// utilization = total_borrow_assets / total_supply_assets
func Utilization(totalSupplyAssets, totalBorrowAssets *uint256.Int) *uint256.Int {
	if totalSupplyAssets.IsZero() {
		if totalBorrowAssets.IsZero() {
			return mathlib.Zero()
		}

		return mathlib.MaxUint256.Clone()
	}

	return mathlib.WDivDown(totalBorrowAssets, totalSupplyAssets)
}

// AccruedInterest interest and fee shares accrued by borrowRate over elapsed seconds
func AccruedInterest(borrowRate *uint256.Int, state *core.MarketState, elapsed int64) (interest, feeShares *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if elapsed < 0 {
		return nil, nil, fmt.Errorf("elapsed %d: %w", elapsed, core.ErrInvalidInterestAccrual)
	}

	interest = mathlib.WMulDown(
		state.TotalBorrowAssets,
		mathlib.WTaylorCompounded(borrowRate, uint256.NewInt(uint64(elapsed))),
	)

	feeAmount := mathlib.WMulDown(interest, state.Fee)
	feeShares = sharesmath.ToShares(
		feeAmount,
		mathlib.Sub(mathlib.Add(state.TotalSupplyAssets, interest), feeAmount),
		state.TotalSupplyShares,
		mathlib.Down,
	)

	return interest, feeShares, nil
}

// ToSupplyAssets supply shares to assets
func ToSupplyAssets(shares *uint256.Int, state *core.MarketState, rounding mathlib.Rounding) *uint256.Int {
	return sharesmath.ToAssets(shares, state.TotalSupplyAssets, state.TotalSupplyShares, rounding)
}

// ToSupplyShares supply assets to shares
func ToSupplyShares(assets *uint256.Int, state *core.MarketState, rounding mathlib.Rounding) *uint256.Int {
	return sharesmath.ToShares(assets, state.TotalSupplyAssets, state.TotalSupplyShares, rounding)
}

// ToBorrowAssets borrow shares to assets
func ToBorrowAssets(shares *uint256.Int, state *core.MarketState, rounding mathlib.Rounding) *uint256.Int {
	return sharesmath.ToAssets(shares, state.TotalBorrowAssets, state.TotalBorrowShares, rounding)
}

// ToBorrowShares borrow assets to shares
func ToBorrowShares(assets *uint256.Int, state *core.MarketState, rounding mathlib.Rounding) *uint256.Int {
	return sharesmath.ToShares(assets, state.TotalBorrowAssets, state.TotalBorrowShares, rounding)
}

// SupplyToUtilization assets to supply to bring utilization down to target
func SupplyToUtilization(state *core.MarketState, target *uint256.Int) *uint256.Int {
	if target.IsZero() {
		if Utilization(state.TotalSupplyAssets, state.TotalBorrowAssets).IsZero() {
			return state.TotalSupplyAssets.Clone()
		}

		return mathlib.MaxUint256.Clone()
	}

	return mathlib.ZeroFloorSub(mathlib.WDivUp(state.TotalBorrowAssets, target), state.TotalSupplyAssets)
}

// WithdrawToUtilization assets to withdraw to bring utilization up to target
func WithdrawToUtilization(state *core.MarketState, target *uint256.Int) *uint256.Int {
	if target.IsZero() {
		if state.TotalBorrowAssets.IsZero() {
			return state.TotalSupplyAssets.Clone()
		}

		return mathlib.Zero()
	}

	return mathlib.ZeroFloorSub(state.TotalSupplyAssets, mathlib.WDivUp(state.TotalBorrowAssets, target))
}

// BorrowToUtilization assets to borrow to bring utilization up to target
func BorrowToUtilization(state *core.MarketState, target *uint256.Int) *uint256.Int {
	return mathlib.ZeroFloorSub(mathlib.WMulDown(state.TotalSupplyAssets, target), state.TotalBorrowAssets)
}

// RepayToUtilization assets to repay to bring utilization down to target
func RepayToUtilization(state *core.MarketState, target *uint256.Int) *uint256.Int {
	return mathlib.ZeroFloorSub(state.TotalBorrowAssets, mathlib.WMulDown(state.TotalSupplyAssets, target))
}

// LiquidationIncentiveFactor
// lif = min(max_lif, 1 / (1 - cursor * (1 - lltv)))
func LiquidationIncentiveFactor(lltv *uint256.Int) *uint256.Int {
	return mathlib.Min(
		MaxLiquidationIncentiveFactor,
		mathlib.WDivDown(mathlib.WAD, mathlib.Sub(mathlib.WAD, mathlib.WMulDown(LiquidationCursor, mathlib.Sub(mathlib.WAD, lltv)))),
	)
}

// CollateralPower collateral weighted by lltv
func CollateralPower(collateral, lltv *uint256.Int) *uint256.Int {
	return mathlib.WMulDown(collateral, lltv)
}

// CollateralValue collateral quoted in loan assets, nil when price is unknown
func CollateralValue(collateral, price *uint256.Int) *uint256.Int {
	if price == nil {
		return nil
	}

	return mathlib.MulDivDown(collateral, price, mathlib.OraclePriceScale)
}

// MaxBorrowAssets max debt backed by collateral, nil when price is unknown
func MaxBorrowAssets(collateral, price, lltv *uint256.Int) *uint256.Int {
	value := CollateralValue(collateral, price)
	if value == nil {
		return nil
	}

	return mathlib.WMulDown(value, lltv)
}

// MaxBorrowableAssets additional debt a position can take, nil when price is unknown
func MaxBorrowableAssets(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	maxBorrow := MaxBorrowAssets(collateral, state.Price, lltv)
	if maxBorrow == nil {
		return nil
	}

	return mathlib.ZeroFloorSub(maxBorrow, ToBorrowAssets(borrowShares, state, mathlib.Up))
}

// HealthFactor max borrow assets over debt
// MaxUint256 without debt, nil when price is unknown
func HealthFactor(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	borrowAssets := ToBorrowAssets(borrowShares, state, mathlib.Up)
	if borrowAssets.IsZero() {
		return mathlib.MaxUint256.Clone()
	}

	maxBorrow := MaxBorrowAssets(collateral, state.Price, lltv)
	if maxBorrow == nil {
		return nil
	}

	return mathlib.WDivDown(maxBorrow, borrowAssets)
}

// Ltv debt over collateral value, nil when price is unknown
func Ltv(collateral, borrowShares *uint256.Int, state *core.MarketState) *uint256.Int {
	borrowAssets := ToBorrowAssets(borrowShares, state, mathlib.Up)
	if borrowAssets.IsZero() {
		return mathlib.Zero()
	}

	value := CollateralValue(collateral, state.Price)
	if value == nil {
		return nil
	}

	if value.IsZero() {
		return mathlib.MaxUint256.Clone()
	}

	return mathlib.WDivUp(borrowAssets, value)
}

// BorrowCapacityUsage inverse of the health factor, nil when price is unknown
func BorrowCapacityUsage(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	hf := HealthFactor(collateral, borrowShares, state, lltv)
	if hf == nil {
		return nil
	}

	if hf.IsZero() {
		return mathlib.MaxUint256.Clone()
	}

	return mathlib.WDivUp(mathlib.WAD, hf)
}

// IsHealthy reports whether debt is within max borrow assets,
// ok is false when the position has debt and the price is unknown
func IsHealthy(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) (healthy, ok bool) {
	if borrowShares.IsZero() {
		return true, true
	}

	maxBorrow := MaxBorrowAssets(collateral, state.Price, lltv)
	if maxBorrow == nil {
		return false, false
	}

	return !maxBorrow.Lt(ToBorrowAssets(borrowShares, state, mathlib.Up)), true
}

// LiquidationPrice oracle price at which the position becomes liquidatable,
// nil without debt, MaxUint256 without collateral power
func LiquidationPrice(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	if borrowShares.IsZero() || state.TotalBorrowShares.IsZero() {
		return nil
	}

	power := CollateralPower(collateral, lltv)
	if power.IsZero() {
		return mathlib.MaxUint256.Clone()
	}

	borrowAssets := ToBorrowAssets(borrowShares, state, mathlib.Up)
	return mathlib.MulDivUp(borrowAssets, mathlib.OraclePriceScale, power)
}

// PriceVariationToLiquidationPrice signed WAD-scaled relative price move
// to the liquidation price, nil when either price is unknown or zero
func PriceVariationToLiquidationPrice(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *big.Int {
	if state.Price == nil || state.Price.IsZero() {
		return nil
	}

	liquidationPrice := LiquidationPrice(collateral, borrowShares, state, lltv)
	if liquidationPrice == nil {
		return nil
	}

	// wDivUp in 512 bits, the liquidation price may be MaxUint256
	wad := mathlib.WAD.ToBig()
	price := state.Price.ToBig()
	num := new(big.Int).Mul(liquidationPrice.ToBig(), wad)
	num.Add(num, new(big.Int).Sub(price, big.NewInt(1)))

	return num.Quo(num, price).Sub(num, wad)
}

// LiquidationSeizedAssets collateral seized for repaidShares, nil when price is unknown
func LiquidationSeizedAssets(repaidShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	if state.Price == nil {
		return nil
	}

	return seizedFor(repaidShares, state, state.Price, LiquidationIncentiveFactor(lltv))
}

// LiquidationRepaidShares borrow shares repaid for seizedAssets, nil when price is unknown
func LiquidationRepaidShares(seizedAssets *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	if state.Price == nil {
		return nil
	}

	return repaidFor(seizedAssets, state, state.Price, LiquidationIncentiveFactor(lltv))
}

// seized = repaid_assets * incentive / price, rounded down
func seizedFor(repaidShares *uint256.Int, state *core.MarketState, price, incentive *uint256.Int) *uint256.Int {
	if price.IsZero() {
		return mathlib.Zero()
	}

	return mathlib.MulDivDown(
		mathlib.WMulDown(ToBorrowAssets(repaidShares, state, mathlib.Down), incentive),
		mathlib.OraclePriceScale,
		price,
	)
}

// repaid = seized * price / incentive in shares, rounded up
func repaidFor(seizedAssets *uint256.Int, state *core.MarketState, price, incentive *uint256.Int) *uint256.Int {
	return ToBorrowShares(
		mathlib.WDivUp(mathlib.MulDivUp(seizedAssets, price, mathlib.OraclePriceScale), incentive),
		state,
		mathlib.Up,
	)
}

// SeizableCollateral collateral a liquidator can seize now, nil when price is unknown
func SeizableCollateral(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	if state.Price == nil {
		return nil
	}

	if state.Price.IsZero() {
		return mathlib.Zero()
	}

	if healthy, _ := IsHealthy(collateral, borrowShares, state, lltv); healthy {
		return mathlib.Zero()
	}

	return mathlib.Min(collateral, LiquidationSeizedAssets(borrowShares, state, lltv))
}

// WithdrawableCollateral collateral withdrawable while staying healthy, nil when price is unknown
func WithdrawableCollateral(collateral, borrowShares *uint256.Int, state *core.MarketState, lltv *uint256.Int) *uint256.Int {
	if state.Price == nil {
		return nil
	}

	borrowAssets := ToBorrowAssets(borrowShares, state, mathlib.Up)
	if borrowAssets.IsZero() {
		return collateral.Clone()
	}

	if state.Price.IsZero() || lltv.IsZero() {
		return mathlib.Zero()
	}

	return mathlib.ZeroFloorSub(
		collateral,
		mathlib.WDivUp(mathlib.MulDivUp(borrowAssets, mathlib.OraclePriceScale, state.Price), lltv),
	)
}

// SupplyRate per-second rate earned by suppliers
// supply_rate = borrow_rate * (1 - fee) * utilization
func SupplyRate(borrowRate, utilization, fee *uint256.Int) *uint256.Int {
	return mathlib.WMulDown(mathlib.WMulDown(borrowRate, mathlib.Sub(mathlib.WAD, fee)), utilization)
}

// Apy continuously compounded yearly yield of a per-second rate
func Apy(rate *uint256.Int) decimal.Decimal {
	return number.Apy(rate)
}

// Apr yearly rate of a per-second rate, not compounded
func Apr(rate *uint256.Int) decimal.Decimal {
	return number.Apr(rate)
}
