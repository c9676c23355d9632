package blue

import (
	"fmt"

	"blue/core"
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

// PreLiquidationPosition position with a tighter preLltv threshold below the market lltv
type PreLiquidationPosition struct {
	*AccrualPosition

	Params *core.PreLiquidationParams
	// Price pre-liquidation oracle price, nil falls back to the market price
	Price *uint256.Int
}

// PreLiquidationFactors linear interpolation of the close and incentive factors
type PreLiquidationFactors struct {
	Quotient        *uint256.Int
	CloseFactor     *uint256.Int
	IncentiveFactor *uint256.Int
}

// ValidatePreLiquidationParams checks params against the market lltv
func ValidatePreLiquidationParams(params *core.PreLiquidationParams, lltv *uint256.Int) error {
	switch {
	case !params.PreLltv.Lt(lltv):
		return fmt.Errorf("preLltv %s must be below lltv %s: %w", params.PreLltv.Dec(), lltv.Dec(), core.ErrInvalidInput)
	case params.PreLCF1.Gt(params.PreLCF2):
		return fmt.Errorf("preLCF1 above preLCF2: %w", core.ErrInvalidInput)
	case params.PreLCF1.Gt(mathlib.WAD):
		return fmt.Errorf("preLCF1 above 1: %w", core.ErrInvalidInput)
	case params.PreLIF1.Gt(params.PreLIF2):
		return fmt.Errorf("preLIF1 above preLIF2: %w", core.ErrInvalidInput)
	case params.PreLIF1.Lt(mathlib.WAD):
		return fmt.Errorf("preLIF1 below 1: %w", core.ErrInvalidInput)
	case params.PreLIF2.Gt(mathlib.WDivDown(mathlib.WAD, lltv)):
		return fmt.Errorf("preLIF2 %s above 1 / lltv: %w", params.PreLIF2.Dec(), core.ErrInvalidInput)
	}

	return nil
}

// NewPreLiquidationPosition validates params then wraps position
func NewPreLiquidationPosition(position *AccrualPosition, params *core.PreLiquidationParams, price *uint256.Int) (*PreLiquidationPosition, error) {
	if err := ValidatePreLiquidationParams(params, position.lltv()); err != nil {
		return nil, err
	}

	return &PreLiquidationPosition{
		AccrualPosition: position,
		Params:          params.Clone(),
		Price:           mathlib.Clone(price),
	}, nil
}

// OraclePrice price used for pre-liquidation, nil when unknown
func (p *PreLiquidationPosition) OraclePrice() *uint256.Int {
	if p.Price != nil {
		return p.Price
	}

	return p.Market.Price()
}

// PreLtv debt rounded up over collateral quoted at the pre-liquidation price,
// nil when price is unknown
func (p *PreLiquidationPosition) PreLtv() *uint256.Int {
	price := p.OraclePrice()
	if price == nil {
		return nil
	}

	borrowed := ToBorrowAssets(p.Position.BorrowShares, p.Market.State, mathlib.Up)
	if borrowed.IsZero() {
		return mathlib.Zero()
	}

	quoted := CollateralValue(p.Position.Collateral, price)
	if quoted.IsZero() {
		return mathlib.MaxUint256.Clone()
	}

	return mathlib.WDivUp(borrowed, quoted)
}

// IsPreLiquidatable preLltv < ltv < lltv, ok is false when price is unknown
func (p *PreLiquidationPosition) IsPreLiquidatable() (preLiquidatable, ok bool) {
	ltv := p.PreLtv()
	if ltv == nil {
		return false, false
	}

	return p.Params.PreLltv.Lt(ltv) && ltv.Lt(p.lltv()), true
}

// Factors close and incentive factors at the current ltv,
// nil unless the position is pre-liquidatable
func (p *PreLiquidationPosition) Factors() *PreLiquidationFactors {
	if ok, _ := p.IsPreLiquidatable(); !ok {
		return nil
	}

	ltv := p.PreLtv()
	quotient := mathlib.WDivDown(
		mathlib.Sub(ltv, p.Params.PreLltv),
		mathlib.Sub(p.lltv(), p.Params.PreLltv),
	)

	return &PreLiquidationFactors{
		Quotient:        quotient,
		CloseFactor:     interpolate(quotient, p.Params.PreLCF1, p.Params.PreLCF2),
		IncentiveFactor: interpolate(quotient, p.Params.PreLIF1, p.Params.PreLIF2),
	}
}

// x1 + quotient * (x2 - x1)
func interpolate(quotient, x1, x2 *uint256.Int) *uint256.Int {
	return mathlib.Add(mathlib.WMulDown(quotient, mathlib.Sub(x2, x1)), x1)
}

// RepayableShares borrow shares repayable by a pre-liquidation, zero when not pre-liquidatable
func (p *PreLiquidationPosition) RepayableShares() *uint256.Int {
	factors := p.Factors()
	if factors == nil {
		return mathlib.Zero()
	}

	return mathlib.WMulDown(p.Position.BorrowShares, factors.CloseFactor)
}

// PreLiquidationSeizedAssets collateral seized for repaidShares, zero when not pre-liquidatable
// and nil when price is unknown
func (p *PreLiquidationPosition) PreLiquidationSeizedAssets(repaidShares *uint256.Int) *uint256.Int {
	if p.OraclePrice() == nil {
		return nil
	}

	factors := p.Factors()
	if factors == nil {
		return mathlib.Zero()
	}

	return seizedFor(repaidShares, p.Market.State, p.OraclePrice(), factors.IncentiveFactor)
}

// PreLiquidationRepaidShares borrow shares repaid for seizedAssets, zero when not pre-liquidatable
// and nil when price is unknown
func (p *PreLiquidationPosition) PreLiquidationRepaidShares(seizedAssets *uint256.Int) *uint256.Int {
	if p.OraclePrice() == nil {
		return nil
	}

	factors := p.Factors()
	if factors == nil {
		return mathlib.Zero()
	}

	return repaidFor(seizedAssets, p.Market.State, p.OraclePrice(), factors.IncentiveFactor)
}

// SeizableCollateral collateral seizable by a pre-liquidation, falling back to
// a regular liquidation past lltv. Nil when price is unknown.
func (p *PreLiquidationPosition) SeizableCollateral() *uint256.Int {
	if p.OraclePrice() == nil {
		return nil
	}

	if ok, _ := p.IsPreLiquidatable(); ok {
		return mathlib.Min(p.Position.Collateral, p.PreLiquidationSeizedAssets(p.RepayableShares()))
	}

	return p.AccrualPosition.SeizableCollateral()
}

// PreHealthFactor health factor against preLltv, nil when price is unknown
func (p *PreLiquidationPosition) PreHealthFactor() *uint256.Int {
	state := p.Market.State.Clone()
	state.Price = mathlib.Clone(p.OraclePrice())
	return HealthFactor(p.Position.Collateral, p.Position.BorrowShares, state, p.Params.PreLltv)
}

// PreLiquidationPrice price below which the position is pre-liquidatable
func (p *PreLiquidationPosition) PreLiquidationPrice() *uint256.Int {
	return LiquidationPrice(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.Params.PreLltv)
}

// AccrueInterest pre-liquidation position with its market accrued to timestamp
func (p *PreLiquidationPosition) AccrueInterest(timestamp uint64) (*PreLiquidationPosition, error) {
	position, err := p.AccrualPosition.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	return &PreLiquidationPosition{AccrualPosition: position, Params: p.Params, Price: p.Price}, nil
}

// PreLiquidate accrues to timestamp then pre-liquidates seizedAssets or repaidShares,
// exactly one of them must be zero
func (p *PreLiquidationPosition) PreLiquidate(seizedAssets, repaidShares *uint256.Int, timestamp uint64) (position *PreLiquidationPosition, seized, repaid *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if err := exactlyOneZero(seizedAssets, repaidShares); err != nil {
		return nil, nil, nil, err
	}

	accrued, err := p.AccrueInterest(timestamp)
	if err != nil {
		return nil, nil, nil, err
	}

	price := accrued.OraclePrice()
	if price == nil {
		return nil, nil, nil, &core.UnknownOraclePriceError{MarketID: accrued.Market.ID()}
	}

	factors := accrued.Factors()
	if factors == nil {
		return nil, nil, nil, fmt.Errorf("ltv %s: %w", accrued.PreLtv().Dec(), core.ErrNotPreLiquidatable)
	}

	if repaidShares.IsZero() {
		seized, repaid = seizedAssets.Clone(), repaidFor(seizedAssets, accrued.Market.State, price, factors.IncentiveFactor)
	} else {
		seized, repaid = seizedFor(repaidShares, accrued.Market.State, price, factors.IncentiveFactor), repaidShares.Clone()
	}

	if repayable := mathlib.WMulDown(accrued.Position.BorrowShares, factors.CloseFactor); repaid.Gt(repayable) {
		return nil, nil, nil, fmt.Errorf("repaid %s above %s: %w", repaid.Dec(), repayable.Dec(), core.ErrPreLiquidationTooLarge)
	}

	if seized.Gt(accrued.Position.Collateral) {
		return nil, nil, nil, accrued.insufficientPosition()
	}

	// settled as repay and withdrawCollateral, leftover debt stays on the position
	next := settleLiquidation(accrued.AccrualPosition, seized, repaid, false)
	return &PreLiquidationPosition{AccrualPosition: next, Params: p.Params, Price: p.Price}, seized, repaid, nil
}
