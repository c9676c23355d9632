package market

import (
	"context"
	"errors"
	"testing"

	"blue/core"
	"blue/pkg/mathlib"
	"blue/store/snapshot"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	lastUpdate uint64 = 1_700_000_000
	day        uint64 = 86400
)

var (
	marketID = core.MustHash("0x625e29dff74826b71c1f4c74b208a896109cc8ac9910192ce2927a982b0809e6")
	user     = core.MustAddress("0x0000000000000000000000000000000000000005")
	vault    = core.MustAddress("0x00000000000000000000000000000000000000aa")
)

func n(s string) *uint256.Int {
	return mathlib.MustParse(s)
}

// registry reading market params straight from the snapshot
type registry struct {
	core.IRegistry

	fetcher        core.IFetcher
	preLiquidation *core.PreLiquidationParams
}

func (r *registry) MarketParams(ctx context.Context, id core.MarketID) (*core.MarketParams, error) {
	return r.fetcher.FetchMarketParams(ctx, id)
}

func (r *registry) PreLiquidationParams(ctx context.Context, lltv *uint256.Int) (*core.PreLiquidationParams, error) {
	if r.preLiquidation == nil {
		return nil, &core.UnsupportedPreLiquidationParamsError{Lltv: lltv}
	}

	return r.preLiquidation.Clone(), nil
}

func newService(t *testing.T, preLiquidation *core.PreLiquidationParams) core.IMarketService {
	f, err := snapshot.Open("../../store/snapshot/testdata/snapshot.yaml")
	require.NoError(t, err)
	return New(&registry{fetcher: f, preLiquidation: preLiquidation}, f)
}

func TestMarket(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)

	view, err := s.Market(ctx, marketID, lastUpdate+day)
	require.NoError(t, err)
	assert.Equal(t, marketID, view.ID)
	assert.Equal(t, n("1000079761155432528000"), view.State.TotalSupplyAssets)
	assert.Equal(t, n("800079761155432528000"), view.State.TotalBorrowAssets)
	assert.Equal(t, n("1249232793"), view.State.RateAtTarget)
	assert.Equal(t, lastUpdate+day, view.State.LastUpdate)
	assert.Equal(t, n("200_000000000000000000"), view.Liquidity)
	assert.True(t, view.BorrowApy.IsPositive())
	assert.True(t, view.SupplyApy.LessThan(view.BorrowApy))

	_, err = s.Market(ctx, marketID, lastUpdate-1)
	assert.Equal(t, core.ErrInvalidInterestAccrual, core.CodeOf(err))

	_, err = s.Market(ctx, core.MarketID{}, lastUpdate)
	assert.Equal(t, core.ErrMarketNotFound, core.CodeOf(err))
}

func TestPosition(t *testing.T) {
	ctx := context.Background()
	s := newService(t, nil)

	view, err := s.Position(ctx, user, marketID, lastUpdate)
	require.NoError(t, err)
	assert.Equal(t, n("100_000000000000000000"), view.SupplyAssets)
	assert.Equal(t, n("50_000000000000000000"), view.BorrowAssets)
	assert.Equal(t, n("1_720000000000000000"), view.HealthFactor)
	assert.Equal(t, n("581395348837209302325581395348837210"), view.LiquidationPrice)
	assert.Equal(t, n("41860465116279069767"), view.WithdrawableCollateral)
	require.NotNil(t, view.IsHealthy)
	assert.True(t, *view.IsHealthy)
	assert.Equal(t, core.LimiterPosition, view.RepayCapacity.Limiter)
	assert.Equal(t, n("50_000000000000000000"), view.RepayCapacity.Value)

	_, err = s.Position(ctx, core.MustAddress("0x0000000000000000000000000000000000000009"), marketID, lastUpdate)
	var miss *core.UnknownPositionError
	assert.True(t, errors.As(err, &miss))
}

func TestPositions(t *testing.T) {
	views, err := newService(t, nil).Positions(context.Background(), marketID, lastUpdate+day)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, user, views[0].Position.User)
	assert.Equal(t, n("100007178503988927519"), views[0].SupplyAssets)
	assert.Equal(t, vault, views[1].Position.User)
	assert.True(t, views[1].BorrowAssets.IsZero())
	assert.True(t, *views[1].IsHealthy)
}

func TestPreLiquidation(t *testing.T) {
	ctx := context.Background()

	t.Run("deployed contract", func(t *testing.T) {
		view, err := newService(t, nil).PreLiquidation(ctx, user, marketID, lastUpdate)
		require.NoError(t, err)

		assert.True(t, view.IsPreLiquidatable)
		assert.Equal(t, n("533333333333333339"), view.CloseFactor)
		assert.Equal(t, n("1028800742287172349"), view.IncentiveFactor)
		assert.Equal(t, n("26666666666666666950000000"), view.RepayableShares)
		assert.Equal(t, n("45724477434985438218"), view.SeizableCollateral)
		assert.Equal(t, n("960000000000000000"), view.PreHealthFactor)
		assert.Equal(t, n("625000000000000000000000000000000000"), view.PreLiquidationPrice)

		// regular figures use the market oracle
		assert.Equal(t, n("1_720000000000000000"), view.Position.HealthFactor)
	})

	t.Run("registry defaults", func(t *testing.T) {
		_, err := newService(t, nil).PreLiquidation(ctx, vault, marketID, lastUpdate)
		assert.Equal(t, core.ErrPreLiquidationParamsNotFound, core.CodeOf(err))

		defaults := &core.PreLiquidationParams{
			PreLltv: mathlib.MustParseWad("0.8"),
			PreLCF1: mathlib.MustParseWad("0.2"),
			PreLCF2: mathlib.MustParseWad("0.8"),
			PreLIF1: mathlib.MustParseWad("1.01"),
			PreLIF2: mathlib.MustParseWad("1.04"),
		}
		view, err := newService(t, defaults).PreLiquidation(ctx, vault, marketID, lastUpdate)
		require.NoError(t, err)
		assert.False(t, view.IsPreLiquidatable)
		assert.Nil(t, view.CloseFactor)
		assert.True(t, view.SeizableCollateral.IsZero())
	})
}
