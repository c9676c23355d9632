package market

import (
	"blue/core"
	"blue/pkg/blue"
	"blue/pkg/mathlib"
)

// MarketView derived figures of m accrued to timestamp
func MarketView(m *blue.Market, timestamp uint64) *core.MarketView {
	return &core.MarketView{
		ID:                         m.ID(),
		Params:                     m.Params,
		State:                      m.State,
		Timestamp:                  timestamp,
		Utilization:                m.Utilization(),
		Liquidity:                  m.Liquidity(),
		BorrowRate:                 m.BorrowRate(),
		SupplyRate:                 m.SupplyRate(),
		BorrowApy:                  m.BorrowApy(),
		SupplyApy:                  m.SupplyApy(),
		ApyAtTarget:                m.ApyAtTarget(),
		LiquidationIncentiveFactor: m.LiquidationIncentiveFactor(),
	}
}

// PositionView risk figures of p, price-dependent ones are left nil
// when the oracle price is unknown
func PositionView(p *blue.AccrualPosition, timestamp uint64) *core.PositionView {
	view := &core.PositionView{
		Position:               p.Position,
		Timestamp:              timestamp,
		SupplyAssets:           p.SupplyAssets(),
		BorrowAssets:           p.BorrowAssets(),
		CollateralValue:        p.CollateralValue(),
		MaxBorrowAssets:        p.MaxBorrowAssets(),
		HealthFactor:           p.HealthFactor(),
		Ltv:                    p.Ltv(),
		LiquidationPrice:       p.LiquidationPrice(),
		SeizableCollateral:     p.SeizableCollateral(),
		WithdrawableCollateral: p.WithdrawableCollateral(),
		BorrowCapacity:         p.BorrowCapacityLimit(),
		WithdrawCapacity:       p.WithdrawCapacityLimit(),
		RepayCapacity:          p.RepayCapacityLimit(mathlib.MaxUint256),
	}

	if healthy, ok := p.IsHealthy(); ok {
		view.IsHealthy = &healthy
	}

	return view
}

// PreLiquidationView pre-liquidation figures of p
func PreLiquidationView(p *blue.PreLiquidationPosition, timestamp uint64) *core.PreLiquidationView {
	view := &core.PreLiquidationView{
		Position:            PositionView(p.AccrualPosition, timestamp),
		Params:              p.Params,
		PreHealthFactor:     p.PreHealthFactor(),
		PreLiquidationPrice: p.PreLiquidationPrice(),
		SeizableCollateral:  p.SeizableCollateral(),
	}

	if factors := p.Factors(); factors != nil {
		view.IsPreLiquidatable = true
		view.CloseFactor = factors.CloseFactor
		view.IncentiveFactor = factors.IncentiveFactor
		view.RepayableShares = p.RepayableShares()
	}

	return view
}
