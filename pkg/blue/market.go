package blue

import (
	"blue/core"
	"blue/internal/irm"
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Market immutable snapshot of a market, transitions return a new Market
type Market struct {
	Params *core.MarketParams
	State  *core.MarketState

	id core.MarketID
}

// NewMarket copies params and state into a new Market
func NewMarket(params *core.MarketParams, state *core.MarketState) *Market {
	p := params.Clone()
	return &Market{
		Params: p,
		State:  state.Clone(),
		id:     p.ID(),
	}
}

func (m *Market) with(state *core.MarketState) *Market {
	return &Market{Params: m.Params, State: state, id: m.id}
}

// ID market id
func (m *Market) ID() core.MarketID {
	return m.id
}

// Price oracle price, nil when unknown
func (m *Market) Price() *uint256.Int {
	return m.State.Price
}

// Utilization borrow over supply
func (m *Market) Utilization() *uint256.Int {
	return Utilization(m.State.TotalSupplyAssets, m.State.TotalBorrowAssets)
}

// Liquidity assets available to withdraw or borrow
func (m *Market) Liquidity() *uint256.Int {
	return mathlib.ZeroFloorSub(m.State.TotalSupplyAssets, m.State.TotalBorrowAssets)
}

// LiquidationIncentiveFactor of the market lltv
func (m *Market) LiquidationIncentiveFactor() *uint256.Int {
	return LiquidationIncentiveFactor(m.Params.Lltv)
}

// ApyAtTarget borrow apy at target utilization
func (m *Market) ApyAtTarget() decimal.Decimal {
	if m.State.RateAtTarget == nil {
		return decimal.Zero
	}

	return Apy(m.State.RateAtTarget)
}

func (m *Market) elapsed(timestamp uint64) (uint64, error) {
	if timestamp < m.State.LastUpdate {
		return 0, &core.InvalidInterestAccrualError{
			Subject:    m.id.Hex(),
			Timestamp:  timestamp,
			LastUpdate: m.State.LastUpdate,
		}
	}

	return timestamp - m.State.LastUpdate, nil
}

// AccrualBorrowRates rates of the adaptive curve from the last update to timestamp,
// all zero on markets without an adaptive irm
func (m *Market) AccrualBorrowRates(timestamp uint64) (irm.Rates, error) {
	elapsed, err := m.elapsed(timestamp)
	if err != nil {
		return irm.Rates{}, err
	}

	if m.State.RateAtTarget == nil {
		return irm.Rates{
			AvgBorrowRate:   mathlib.Zero(),
			EndBorrowRate:   mathlib.Zero(),
			EndRateAtTarget: mathlib.Zero(),
		}, nil
	}

	return irm.BorrowRate(m.Utilization(), m.State.RateAtTarget, elapsed), nil
}

// BorrowRate instantaneous per-second borrow rate at the last update
func (m *Market) BorrowRate() *uint256.Int {
	rates, _ := m.AccrualBorrowRates(m.State.LastUpdate)
	return rates.EndBorrowRate
}

// SupplyRate instantaneous per-second supply rate at the last update
func (m *Market) SupplyRate() *uint256.Int {
	return SupplyRate(m.BorrowRate(), m.Utilization(), m.State.Fee)
}

// BorrowApy compounded borrow rate
func (m *Market) BorrowApy() decimal.Decimal {
	return Apy(m.BorrowRate())
}

// SupplyApy compounded supply rate net of the market fee
func (m *Market) SupplyApy() decimal.Decimal {
	return Apy(m.SupplyRate())
}

// AccrueInterest market accrued to timestamp
func (m *Market) AccrueInterest(timestamp uint64) (market *Market, err error) {
	defer mathlib.Recover(&err)

	elapsed, err := m.elapsed(timestamp)
	if err != nil {
		return nil, err
	}

	state := m.State.Clone()
	if elapsed == 0 {
		return m.with(state), nil
	}

	rates, err := m.AccrualBorrowRates(timestamp)
	if err != nil {
		return nil, err
	}

	interest, feeShares, err := AccruedInterest(rates.AvgBorrowRate, m.State, int64(elapsed))
	if err != nil {
		return nil, err
	}

	state.TotalSupplyAssets = mathlib.Add(state.TotalSupplyAssets, interest)
	state.TotalBorrowAssets = mathlib.Add(state.TotalBorrowAssets, interest)
	state.TotalSupplyShares = mathlib.Add(state.TotalSupplyShares, feeShares)
	state.LastUpdate = timestamp
	if state.RateAtTarget != nil {
		state.RateAtTarget = rates.EndRateAtTarget
	}

	return m.with(state), nil
}

// ToSupplyAssets supply shares to assets, rounded down
func (m *Market) ToSupplyAssets(shares *uint256.Int) *uint256.Int {
	return ToSupplyAssets(shares, m.State, mathlib.Down)
}

// ToSupplyShares supply assets to shares, rounded up
func (m *Market) ToSupplyShares(assets *uint256.Int) *uint256.Int {
	return ToSupplyShares(assets, m.State, mathlib.Up)
}

// ToBorrowAssets borrow shares to assets, rounded up
func (m *Market) ToBorrowAssets(shares *uint256.Int) *uint256.Int {
	return ToBorrowAssets(shares, m.State, mathlib.Up)
}

// ToBorrowShares borrow assets to shares, rounded down
func (m *Market) ToBorrowShares(assets *uint256.Int) *uint256.Int {
	return ToBorrowShares(assets, m.State, mathlib.Down)
}

// SupplyToUtilization assets to supply to reach utilization
func (m *Market) SupplyToUtilization(utilization *uint256.Int) *uint256.Int {
	return SupplyToUtilization(m.State, utilization)
}

// WithdrawToUtilization assets to withdraw to reach utilization
func (m *Market) WithdrawToUtilization(utilization *uint256.Int) *uint256.Int {
	return WithdrawToUtilization(m.State, utilization)
}

// BorrowToUtilization assets to borrow to reach utilization
func (m *Market) BorrowToUtilization(utilization *uint256.Int) *uint256.Int {
	return BorrowToUtilization(m.State, utilization)
}

// RepayToUtilization assets to repay to reach utilization
func (m *Market) RepayToUtilization(utilization *uint256.Int) *uint256.Int {
	return RepayToUtilization(m.State, utilization)
}

func exactlyOneZero(assets, shares *uint256.Int) error {
	if assets.IsZero() == shares.IsZero() {
		return core.ErrInconsistentInput
	}

	return nil
}

func (m *Market) checkLiquidity() error {
	if m.State.TotalBorrowAssets.Gt(m.State.TotalSupplyAssets) {
		return &core.InsufficientLiquidityError{MarketID: m.id}
	}

	return nil
}

// Supply accrues to timestamp then supplies assets or shares,
// returning the resulting market and the exact assets and shares moved
func (m *Market) Supply(assets, shares *uint256.Int, timestamp uint64) (market *Market, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if err := exactlyOneZero(assets, shares); err != nil {
		return nil, nil, nil, err
	}

	if market, err = m.AccrueInterest(timestamp); err != nil {
		return nil, nil, nil, err
	}

	if shares.IsZero() {
		a, s = assets.Clone(), ToSupplyShares(assets, market.State, mathlib.Down)
	} else {
		a, s = ToSupplyAssets(shares, market.State, mathlib.Up), shares.Clone()
	}

	market.State.TotalSupplyAssets = mathlib.Add(market.State.TotalSupplyAssets, a)
	market.State.TotalSupplyShares = mathlib.Add(market.State.TotalSupplyShares, s)
	return market, a, s, nil
}

// Withdraw accrues to timestamp then withdraws assets or shares
func (m *Market) Withdraw(assets, shares *uint256.Int, timestamp uint64) (market *Market, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if err := exactlyOneZero(assets, shares); err != nil {
		return nil, nil, nil, err
	}

	if market, err = m.AccrueInterest(timestamp); err != nil {
		return nil, nil, nil, err
	}

	if shares.IsZero() {
		a, s = assets.Clone(), ToSupplyShares(assets, market.State, mathlib.Up)
	} else {
		a, s = ToSupplyAssets(shares, market.State, mathlib.Down), shares.Clone()
	}

	if a.Gt(market.State.TotalSupplyAssets) || s.Gt(market.State.TotalSupplyShares) {
		return nil, nil, nil, &core.InsufficientLiquidityError{MarketID: m.id}
	}

	market.State.TotalSupplyAssets = mathlib.Sub(market.State.TotalSupplyAssets, a)
	market.State.TotalSupplyShares = mathlib.Sub(market.State.TotalSupplyShares, s)
	if err := market.checkLiquidity(); err != nil {
		return nil, nil, nil, err
	}

	return market, a, s, nil
}

// Borrow accrues to timestamp then borrows assets or shares
func (m *Market) Borrow(assets, shares *uint256.Int, timestamp uint64) (market *Market, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if err := exactlyOneZero(assets, shares); err != nil {
		return nil, nil, nil, err
	}

	if market, err = m.AccrueInterest(timestamp); err != nil {
		return nil, nil, nil, err
	}

	if shares.IsZero() {
		a, s = assets.Clone(), ToBorrowShares(assets, market.State, mathlib.Up)
	} else {
		a, s = ToBorrowAssets(shares, market.State, mathlib.Down), shares.Clone()
	}

	market.State.TotalBorrowAssets = mathlib.Add(market.State.TotalBorrowAssets, a)
	market.State.TotalBorrowShares = mathlib.Add(market.State.TotalBorrowShares, s)
	if err := market.checkLiquidity(); err != nil {
		return nil, nil, nil, err
	}

	return market, a, s, nil
}

// Repay accrues to timestamp then repays assets or shares
func (m *Market) Repay(assets, shares *uint256.Int, timestamp uint64) (market *Market, a, s *uint256.Int, err error) {
	defer mathlib.Recover(&err)

	if err := exactlyOneZero(assets, shares); err != nil {
		return nil, nil, nil, err
	}

	if market, err = m.AccrueInterest(timestamp); err != nil {
		return nil, nil, nil, err
	}

	if shares.IsZero() {
		a, s = assets.Clone(), ToBorrowShares(assets, market.State, mathlib.Down)
	} else {
		a, s = ToBorrowAssets(shares, market.State, mathlib.Up), shares.Clone()
	}

	market.State.TotalBorrowAssets = mathlib.ZeroFloorSub(market.State.TotalBorrowAssets, a)
	market.State.TotalBorrowShares = mathlib.Sub(market.State.TotalBorrowShares, s)
	return market, a, s, nil
}
