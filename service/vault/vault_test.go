package vault

import (
	"context"
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
	v1       = core.MustAddress("0x00000000000000000000000000000000000000aa")
	v2       = core.MustAddress("0x00000000000000000000000000000000000000cc")
)

func n(s string) *uint256.Int {
	return mathlib.MustParse(s)
}

// registry reading configs straight from the snapshot
type registry struct {
	core.IRegistry

	fetcher core.IFetcher
}

func (r *registry) MarketParams(ctx context.Context, id core.MarketID) (*core.MarketParams, error) {
	return r.fetcher.FetchMarketParams(ctx, id)
}

func (r *registry) VaultConfig(ctx context.Context, address core.Address) (*core.VaultConfig, error) {
	return r.fetcher.FetchVaultConfig(ctx, address)
}

func newService(t *testing.T) core.IVaultService {
	f, err := snapshot.Open("../../store/snapshot/testdata/snapshot.yaml")
	require.NoError(t, err)
	return New(&registry{fetcher: f}, f)
}

func TestVault(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	view, err := s.Vault(ctx, v1, lastUpdate+day)
	require.NoError(t, err)

	assert.Equal(t, n("100007178503988927519"), view.State.TotalAssets)
	assert.Equal(t, n("100007178503988927519"), view.State.LastTotalAssets)
	assert.Equal(t, n("1435618353048911"), view.FeeShares)
	assert.Equal(t, n("100001435618353048911"), view.State.TotalSupply)
	assert.Equal(t, n("1000057428031911420"), view.SharePrice)
	assert.Equal(t, n("100007178503988927519"), view.Liquidity)
	assert.True(t, view.NetApy.LessThan(view.Apy))

	assert.Equal(t, core.LimiterCap, view.DepositCapacity.Limiter)
	assert.Equal(t, n("19992821496011072481"), view.DepositCapacity.Value)

	require.Len(t, view.Allocations, 1)
	assert.Equal(t, marketID, view.Allocations[0].MarketID)
	assert.Equal(t, mathlib.WAD, view.Allocations[0].Proportion)
	assert.Equal(t, core.LimiterPosition, view.Allocations[0].Withdrawable.Limiter)

	_, err = s.Vault(ctx, v2, lastUpdate)
	assert.Equal(t, core.ErrVaultNotFound, core.CodeOf(err))

	_, err = s.Vault(ctx, v1, lastUpdate-1)
	assert.Equal(t, core.ErrInvalidInterestAccrual, core.CodeOf(err))
}

func TestVaultV2(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	view, err := s.VaultV2(ctx, v2, lastUpdate+day)
	require.NoError(t, err)

	assert.Equal(t, n("55002871401595571008"), view.State.TotalAssets)
	assert.Equal(t, n("55_000000000000000000"), view.State.TotalSupply)
	assert.True(t, view.PerformanceFeeShares.IsZero())
	assert.True(t, view.ManagementFeeShares.IsZero())
	assert.Equal(t, n("1000052207301737654"), view.SharePrice)

	assert.Equal(t, core.LimiterAbsoluteCap, view.DepositCapacity.Limiter)
	assert.Equal(t, n("950_000000000000000000"), view.DepositCapacity.Value)

	assert.Equal(t, core.LimiterBalance, view.WithdrawCapacity.Limiter)
	assert.Equal(t, n("55002871401595571007"), view.WithdrawCapacity.Value)

	_, err = s.VaultV2(ctx, v1, lastUpdate)
	assert.Equal(t, core.ErrVaultNotFound, core.CodeOf(err))
}
