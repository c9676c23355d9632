package blue

import (
	"errors"
	"testing"

	"blue/core"
	"blue/pkg/mathlib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccrualPositionQueries(t *testing.T) {
	p := testPosition(testMarket())

	assert.Equal(t, testParams.ID(), p.Position.MarketID)
	assert.Equal(t, n("100_000000000000000000"), p.SupplyAssets())
	assert.Equal(t, n("50_000000000000000000"), p.BorrowAssets())
	assert.Equal(t, mathlib.MustParseWad("1.72"), p.HealthFactor())
	assert.Equal(t, mathlib.MustParseWad("0.5"), p.Ltv())

	liquidatable, ok := p.IsLiquidatable()
	assert.True(t, ok)
	assert.False(t, liquidatable)

	t.Run("capacity limits", func(t *testing.T) {
		assert.Equal(t, &core.CapacityLimit{Value: n("100_000000000000000000"), Limiter: core.LimiterPosition}, p.WithdrawCapacityLimit())
		assert.Equal(t, &core.CapacityLimit{Value: n("36_000000000000000000"), Limiter: core.LimiterCollateral}, p.BorrowCapacityLimit())
		assert.Equal(t, &core.CapacityLimit{Value: n("41860465116279069767"), Limiter: core.LimiterCollateral}, p.WithdrawCollateralCapacityLimit())
		assert.Equal(t, &core.CapacityLimit{Value: mathlib.WAD, Limiter: core.LimiterBalance}, p.RepayCapacityLimit(mathlib.WAD))
		assert.Equal(t, &core.CapacityLimit{Value: n("50_000000000000000000"), Limiter: core.LimiterPosition}, p.RepayCapacityLimit(mathlib.MaxUint256))
		assert.Equal(t, core.LimiterBalance, p.SupplyCapacityLimit(mathlib.WAD).Limiter)
	})

	t.Run("liquidity bound", func(t *testing.T) {
		state := testState()
		state.TotalBorrowAssets = n("950_000000000000000000")
		state.TotalBorrowShares = n("950_000000000000000000_000000")
		p := testPosition(NewMarket(testParams, state))

		limit := p.WithdrawCapacityLimit()
		assert.Equal(t, core.LimiterLiquidity, limit.Limiter)
		assert.Equal(t, n("50_000000000000000000"), limit.Value)
		assert.Equal(t, core.LimiterLiquidity, p.BorrowCapacityLimit().Limiter)
	})

	t.Run("unknown price", func(t *testing.T) {
		p := testPosition(withPrice(testMarket(), ""))
		assert.Nil(t, p.HealthFactor())
		assert.Nil(t, p.BorrowCapacityLimit())
		assert.Nil(t, p.WithdrawCollateralCapacityLimit())
		assert.Nil(t, p.LiquidationCapacityLimit())
		_, ok := p.IsLiquidatable()
		assert.False(t, ok)
	})
}

func TestAccrualPositionSupplyWithdraw(t *testing.T) {
	p := testPosition(testMarket())

	next, assets, _, err := p.Supply(mathlib.WAD, mathlib.Zero(), lastUpdate)
	require.NoError(t, err)
	assert.Equal(t, mathlib.WAD, assets)
	assert.Equal(t, n("101_000000000000000000_000000"), next.Position.SupplyShares)
	assert.Equal(t, n("1001_000000000000000000"), next.Market.State.TotalSupplyAssets)
	assert.Equal(t, n("100_000000000000000000_000000"), p.Position.SupplyShares)

	next, _, _, err = next.Withdraw(mathlib.Zero(), n("101_000000000000000000_000000"), lastUpdate)
	require.NoError(t, err)
	assert.True(t, next.Position.SupplyShares.IsZero())

	_, _, _, err = p.Withdraw(mathlib.Zero(), n("101_000000000000000000_000000"), lastUpdate)
	var positionErr *core.InsufficientPositionError
	require.True(t, errors.As(err, &positionErr))
	assert.Equal(t, user, positionErr.User)
	assert.Equal(t, p.Market.ID(), positionErr.MarketID)
}

func TestAccrualPositionBorrowRepay(t *testing.T) {
	p := testPosition(testMarket())

	t.Run("borrow", func(t *testing.T) {
		next, _, shares, err := p.Borrow(n("36_000000000000000000"), mathlib.Zero(), lastUpdate)
		require.NoError(t, err)
		assert.Equal(t, n("36_000000000000000000_000000"), shares)
		assert.Equal(t, n("86_000000000000000000_000000"), next.Position.BorrowShares)
		assert.Equal(t, mathlib.WAD, next.HealthFactor())
	})

	t.Run("insufficient collateral", func(t *testing.T) {
		_, _, _, err := p.Borrow(n("37_000000000000000000"), mathlib.Zero(), lastUpdate)
		var collateralErr *core.InsufficientCollateralError
		assert.True(t, errors.As(err, &collateralErr))
	})

	t.Run("unknown price", func(t *testing.T) {
		p := testPosition(withPrice(testMarket(), ""))
		_, _, _, err := p.Borrow(mathlib.WAD, mathlib.Zero(), lastUpdate)
		assert.Equal(t, core.ErrUnknownOraclePrice, core.CodeOf(err))
	})

	t.Run("repay all", func(t *testing.T) {
		next, assets, _, err := p.Repay(mathlib.Zero(), p.Position.BorrowShares, lastUpdate)
		require.NoError(t, err)
		assert.Equal(t, n("50_000000000000000000"), assets)
		assert.True(t, next.Position.BorrowShares.IsZero())
		assert.Equal(t, mathlib.MaxUint256, next.HealthFactor())
	})

	t.Run("repay too much", func(t *testing.T) {
		_, _, _, err := p.Repay(n("51_000000000000000000"), mathlib.Zero(), lastUpdate)
		assert.Equal(t, core.ErrInsufficientPosition, core.CodeOf(err))
	})
}

func TestAccrualPositionCollateral(t *testing.T) {
	p := testPosition(testMarket())

	next, err := p.SupplyCollateral(mathlib.WAD)
	require.NoError(t, err)
	assert.Equal(t, n("101_000000000000000000"), next.Position.Collateral)

	next, err = p.WithdrawCollateral(n("41860465116279069767"), lastUpdate)
	require.NoError(t, err)
	healthy, _ := next.IsHealthy()
	assert.True(t, healthy)

	_, err = p.WithdrawCollateral(n("42_000000000000000000"), lastUpdate)
	assert.Equal(t, core.ErrInsufficientCollateral, core.CodeOf(err))

	_, err = p.WithdrawCollateral(n("101_000000000000000000"), lastUpdate)
	assert.Equal(t, core.ErrInsufficientPosition, core.CodeOf(err))

	_, err = p.WithdrawCollateral(mathlib.WAD, lastUpdate-1)
	assert.Equal(t, core.ErrInvalidInterestAccrual, core.CodeOf(err))

	_, err = testPosition(withPrice(testMarket(), "")).WithdrawCollateral(mathlib.WAD, lastUpdate)
	assert.Equal(t, core.ErrUnknownOraclePrice, core.CodeOf(err))
}

func TestAccrualPositionLiquidate(t *testing.T) {
	healthy := testPosition(testMarket())
	_, _, _, err := healthy.Liquidate(mathlib.Zero(), mathlib.WAD, lastUpdate)
	assert.Equal(t, core.ErrHealthyPosition, core.CodeOf(err))

	p := testPosition(withPrice(testMarket(), "500000000000000000_000000000000000000"))

	t.Run("repaid shares", func(t *testing.T) {
		next, seized, repaid, err := p.Liquidate(mathlib.Zero(), n("10_000000000000000000_000000"), lastUpdate)
		require.NoError(t, err)
		assert.Equal(t, n("20876826722338204580"), seized)
		assert.Equal(t, n("10_000000000000000000_000000"), repaid)
		assert.Equal(t, n("79123173277661795420"), next.Position.Collateral)
		assert.Equal(t, n("40_000000000000000000_000000"), next.Position.BorrowShares)
		assert.Equal(t, n("790_000000000000000000"), next.Market.State.TotalBorrowAssets)
	})

	t.Run("bad debt", func(t *testing.T) {
		next, seized, repaid, err := p.Liquidate(p.Position.Collateral, mathlib.Zero(), lastUpdate)
		require.NoError(t, err)
		assert.Equal(t, p.Position.Collateral, seized)
		assert.Equal(t, n("47900000000000000030000000"), repaid)
		assert.True(t, next.Position.Collateral.IsZero())
		assert.True(t, next.Position.BorrowShares.IsZero())
		assert.Equal(t, n("750_000000000000000000"), next.Market.State.TotalBorrowAssets)
		assert.Equal(t, n("997900000000000000030"), next.Market.State.TotalSupplyAssets)
		assert.Equal(t, n("750_000000000000000000_000000"), next.Market.State.TotalBorrowShares)
	})

	t.Run("capacity", func(t *testing.T) {
		capacity := p.LiquidationCapacityLimit()
		require.NotNil(t, capacity)
		assert.Equal(t, p.Position.Collateral, capacity.SeizableCollateral)
		assert.Equal(t, n("47900000000000000030000000"), capacity.RepayableShares)
	})
}
