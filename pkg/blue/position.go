package blue

import (
	"math/big"

	"blue/core"
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

// AccrualPosition a position paired with its market
type AccrualPosition struct {
	Position *core.Position
	Market   *Market
}

// NewAccrualPosition binds a copy of position to market
func NewAccrualPosition(position *core.Position, market *Market) *AccrualPosition {
	p := position.Clone()
	p.MarketID = market.ID()
	return &AccrualPosition{Position: p, Market: market}
}

func (p *AccrualPosition) lltv() *uint256.Int {
	return p.Market.Params.Lltv
}

// SupplyAssets supplied assets, rounded down
func (p *AccrualPosition) SupplyAssets() *uint256.Int {
	return p.Market.ToSupplyAssets(p.Position.SupplyShares)
}

// BorrowAssets debt, rounded up
func (p *AccrualPosition) BorrowAssets() *uint256.Int {
	return p.Market.ToBorrowAssets(p.Position.BorrowShares)
}

// CollateralValue nil when price is unknown
func (p *AccrualPosition) CollateralValue() *uint256.Int {
	return CollateralValue(p.Position.Collateral, p.Market.Price())
}

// MaxBorrowAssets nil when price is unknown
func (p *AccrualPosition) MaxBorrowAssets() *uint256.Int {
	return MaxBorrowAssets(p.Position.Collateral, p.Market.Price(), p.lltv())
}

// MaxBorrowableAssets nil when price is unknown
func (p *AccrualPosition) MaxBorrowableAssets() *uint256.Int {
	return MaxBorrowableAssets(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// HealthFactor MaxUint256 without debt, nil when price is unknown
func (p *AccrualPosition) HealthFactor() *uint256.Int {
	return HealthFactor(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// Ltv nil when price is unknown
func (p *AccrualPosition) Ltv() *uint256.Int {
	return Ltv(p.Position.Collateral, p.Position.BorrowShares, p.Market.State)
}

// BorrowCapacityUsage nil when price is unknown
func (p *AccrualPosition) BorrowCapacityUsage() *uint256.Int {
	return BorrowCapacityUsage(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// LiquidationPrice nil without debt
func (p *AccrualPosition) LiquidationPrice() *uint256.Int {
	return LiquidationPrice(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// PriceVariationToLiquidationPrice nil without debt or price
func (p *AccrualPosition) PriceVariationToLiquidationPrice() *big.Int {
	return PriceVariationToLiquidationPrice(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// SeizableCollateral nil when price is unknown
func (p *AccrualPosition) SeizableCollateral() *uint256.Int {
	return SeizableCollateral(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// WithdrawableCollateral nil when price is unknown
func (p *AccrualPosition) WithdrawableCollateral() *uint256.Int {
	return WithdrawableCollateral(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// IsHealthy ok is false when the position has debt and the price is unknown
func (p *AccrualPosition) IsHealthy() (healthy, ok bool) {
	return IsHealthy(p.Position.Collateral, p.Position.BorrowShares, p.Market.State, p.lltv())
}

// IsLiquidatable ok is false when the position has debt and the price is unknown
func (p *AccrualPosition) IsLiquidatable() (liquidatable, ok bool) {
	healthy, ok := p.IsHealthy()
	return ok && !healthy, ok
}

// SupplyCapacityLimit supply bounded by the loan token balance
func (p *AccrualPosition) SupplyCapacityLimit(balance *uint256.Int) *core.CapacityLimit {
	return &core.CapacityLimit{Value: balance.Clone(), Limiter: core.LimiterBalance}
}

// SupplyCollateralCapacityLimit collateral supply bounded by the collateral token balance
func (p *AccrualPosition) SupplyCollateralCapacityLimit(balance *uint256.Int) *core.CapacityLimit {
	return &core.CapacityLimit{Value: balance.Clone(), Limiter: core.LimiterBalance}
}

// WithdrawCapacityLimit supply assets bounded by market liquidity
func (p *AccrualPosition) WithdrawCapacityLimit() *core.CapacityLimit {
	supplyAssets := p.SupplyAssets()
	if liquidity := p.Market.Liquidity(); liquidity.Lt(supplyAssets) {
		return &core.CapacityLimit{Value: liquidity, Limiter: core.LimiterLiquidity}
	}

	return &core.CapacityLimit{Value: supplyAssets, Limiter: core.LimiterPosition}
}

// BorrowCapacityLimit borrowable assets bounded by market liquidity, nil when price is unknown
func (p *AccrualPosition) BorrowCapacityLimit() *core.CapacityLimit {
	borrowable := p.MaxBorrowableAssets()
	if borrowable == nil {
		return nil
	}

	if liquidity := p.Market.Liquidity(); liquidity.Lt(borrowable) {
		return &core.CapacityLimit{Value: liquidity, Limiter: core.LimiterLiquidity}
	}

	return &core.CapacityLimit{Value: borrowable, Limiter: core.LimiterCollateral}
}

// RepayCapacityLimit debt bounded by the loan token balance
func (p *AccrualPosition) RepayCapacityLimit(balance *uint256.Int) *core.CapacityLimit {
	borrowAssets := p.BorrowAssets()
	if balance.Lt(borrowAssets) {
		return &core.CapacityLimit{Value: balance.Clone(), Limiter: core.LimiterBalance}
	}

	return &core.CapacityLimit{Value: borrowAssets, Limiter: core.LimiterPosition}
}

// WithdrawCollateralCapacityLimit nil when price is unknown
func (p *AccrualPosition) WithdrawCollateralCapacityLimit() *core.CapacityLimit {
	withdrawable := p.WithdrawableCollateral()
	if withdrawable == nil {
		return nil
	}

	return &core.CapacityLimit{Value: withdrawable, Limiter: core.LimiterCollateral}
}

// LiquidationCapacity max collateral seizable and the borrow shares it repays
type LiquidationCapacity struct {
	SeizableCollateral *uint256.Int
	RepayableShares    *uint256.Int
}

// LiquidationCapacityLimit nil when price is unknown
func (p *AccrualPosition) LiquidationCapacityLimit() *LiquidationCapacity {
	seizable := p.SeizableCollateral()
	if seizable == nil {
		return nil
	}

	repayable := mathlib.Zero()
	if !seizable.IsZero() {
		repayable = mathlib.Min(
			p.Position.BorrowShares,
			LiquidationRepaidShares(seizable, p.Market.State, p.lltv()),
		)
	}

	return &LiquidationCapacity{SeizableCollateral: seizable, RepayableShares: repayable}
}

func (p *AccrualPosition) with(position *core.Position, market *Market) *AccrualPosition {
	return &AccrualPosition{Position: position, Market: market}
}

// AccrueInterest position with its market accrued to timestamp
func (p *AccrualPosition) AccrueInterest(timestamp uint64) (*AccrualPosition, error) {
	market, err := p.Market.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	return p.with(p.Position.Clone(), market), nil
}

func (p *AccrualPosition) insufficientPosition() error {
	return &core.InsufficientPositionError{User: p.Position.User, MarketID: p.Position.MarketID}
}

func (p *AccrualPosition) insufficientCollateral() error {
	return &core.InsufficientCollateralError{User: p.Position.User, MarketID: p.Position.MarketID}
}

// Supply supplies assets or shares at timestamp
func (p *AccrualPosition) Supply(assets, shares *uint256.Int, timestamp uint64) (position *AccrualPosition, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	market, a, s, err := p.Market.Supply(assets, shares, timestamp)
	if err != nil {
		return nil, nil, nil, err
	}

	next := p.Position.Clone()
	next.SupplyShares = mathlib.Add(next.SupplyShares, s)
	return p.with(next, market), a, s, nil
}

// Withdraw withdraws assets or shares at timestamp
func (p *AccrualPosition) Withdraw(assets, shares *uint256.Int, timestamp uint64) (position *AccrualPosition, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	market, a, s, err := p.Market.Withdraw(assets, shares, timestamp)
	if err != nil {
		return nil, nil, nil, err
	}

	if s.Gt(p.Position.SupplyShares) {
		return nil, nil, nil, p.insufficientPosition()
	}

	next := p.Position.Clone()
	next.SupplyShares = mathlib.Sub(next.SupplyShares, s)
	return p.with(next, market), a, s, nil
}

// Borrow borrows assets or shares at timestamp, the position must stay healthy
func (p *AccrualPosition) Borrow(assets, shares *uint256.Int, timestamp uint64) (position *AccrualPosition, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if p.Market.Price() == nil {
		return nil, nil, nil, &core.UnknownOraclePriceError{MarketID: p.Market.ID()}
	}

	market, a, s, err := p.Market.Borrow(assets, shares, timestamp)
	if err != nil {
		return nil, nil, nil, err
	}

	next := p.Position.Clone()
	next.BorrowShares = mathlib.Add(next.BorrowShares, s)
	position = p.with(next, market)
	if healthy, _ := position.IsHealthy(); !healthy {
		return nil, nil, nil, p.insufficientCollateral()
	}

	return position, a, s, nil
}

// Repay repays assets or shares at timestamp
func (p *AccrualPosition) Repay(assets, shares *uint256.Int, timestamp uint64) (position *AccrualPosition, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if !shares.IsZero() && shares.Gt(p.Position.BorrowShares) {
		return nil, nil, nil, p.insufficientPosition()
	}

	market, a, s, err := p.Market.Repay(assets, shares, timestamp)
	if err != nil {
		return nil, nil, nil, err
	}

	if s.Gt(p.Position.BorrowShares) {
		return nil, nil, nil, p.insufficientPosition()
	}

	next := p.Position.Clone()
	next.BorrowShares = mathlib.Sub(next.BorrowShares, s)
	return p.with(next, market), a, s, nil
}

// SupplyCollateral adds collateral, no accrual needed
func (p *AccrualPosition) SupplyCollateral(assets *uint256.Int) (position *AccrualPosition, err error) {
	defer mathlib.Recover(&err)

	next := p.Position.Clone()
	next.Collateral = mathlib.Add(next.Collateral, assets)
	return p.with(next, p.Market), nil
}

// WithdrawCollateral accrues to timestamp then removes collateral,
// the position must stay healthy
func (p *AccrualPosition) WithdrawCollateral(assets *uint256.Int, timestamp uint64) (position *AccrualPosition, err error) {
	defer mathlib.Recover(&err)

	market, err := p.Market.AccrueInterest(timestamp)
	if err != nil {
		return nil, err
	}

	if assets.Gt(p.Position.Collateral) {
		return nil, p.insufficientPosition()
	}

	next := p.Position.Clone()
	next.Collateral = mathlib.Sub(next.Collateral, assets)
	position = p.with(next, market)

	healthy, ok := position.IsHealthy()
	if !ok {
		return nil, &core.UnknownOraclePriceError{MarketID: market.ID()}
	}

	if !healthy {
		return nil, p.insufficientCollateral()
	}

	return position, nil
}

// Liquidate seizes collateral against repaid borrow shares at timestamp,
// exactly one of seizedAssets and repaidShares must be zero.
// Remaining debt is realized as bad debt when no collateral is left.
func (p *AccrualPosition) Liquidate(seizedAssets, repaidShares *uint256.Int, timestamp uint64) (position *AccrualPosition, seized, repaid *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if err := exactlyOneZero(seizedAssets, repaidShares); err != nil {
		return nil, nil, nil, err
	}

	market, err := p.Market.AccrueInterest(timestamp)
	if err != nil {
		return nil, nil, nil, err
	}

	price := market.Price()
	if price == nil {
		return nil, nil, nil, &core.UnknownOraclePriceError{MarketID: market.ID()}
	}

	accrued := p.with(p.Position.Clone(), market)
	if healthy, _ := accrued.IsHealthy(); healthy {
		return nil, nil, nil, &core.HealthyPositionError{User: p.Position.User, MarketID: market.ID()}
	}

	incentive := market.LiquidationIncentiveFactor()
	if repaidShares.IsZero() {
		seized, repaid = seizedAssets.Clone(), repaidFor(seizedAssets, market.State, price, incentive)
	} else {
		seized, repaid = seizedFor(repaidShares, market.State, price, incentive), repaidShares.Clone()
	}

	if repaid.Gt(accrued.Position.BorrowShares) || seized.Gt(accrued.Position.Collateral) {
		return nil, nil, nil, p.insufficientPosition()
	}

	return settleLiquidation(accrued, seized, repaid, true), seized, repaid, nil
}

// settleLiquidation applies a validated liquidation to an accrued position,
// realizing bad debt only when realizeBadDebt is set
func settleLiquidation(p *AccrualPosition, seized, repaid *uint256.Int, realizeBadDebt bool) *AccrualPosition {
	state := p.Market.State.Clone()
	next := p.Position.Clone()

	repaidAssets := ToBorrowAssets(repaid, state, mathlib.Up)
	next.BorrowShares = mathlib.Sub(next.BorrowShares, repaid)
	state.TotalBorrowShares = mathlib.Sub(state.TotalBorrowShares, repaid)
	state.TotalBorrowAssets = mathlib.ZeroFloorSub(state.TotalBorrowAssets, repaidAssets)
	next.Collateral = mathlib.Sub(next.Collateral, seized)

	if realizeBadDebt && next.Collateral.IsZero() && !next.BorrowShares.IsZero() {
		badDebtShares := next.BorrowShares
		badDebtAssets := mathlib.Min(state.TotalBorrowAssets, ToBorrowAssets(badDebtShares, state, mathlib.Up))

		state.TotalBorrowAssets = mathlib.Sub(state.TotalBorrowAssets, badDebtAssets)
		state.TotalSupplyAssets = mathlib.Sub(state.TotalSupplyAssets, badDebtAssets)
		state.TotalBorrowShares = mathlib.Sub(state.TotalBorrowShares, badDebtShares)
		next.BorrowShares = mathlib.Zero()
	}

	return p.with(next, p.Market.with(state))
}
