package snapshot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"blue/core"
	"blue/pkg/mathlib"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	marketID = core.MustHash("0x625e29dff74826b71c1f4c74b208a896109cc8ac9910192ce2927a982b0809e6")
	user     = core.MustAddress("0x0000000000000000000000000000000000000005")
	v1       = core.MustAddress("0x00000000000000000000000000000000000000aa")
	v2       = core.MustAddress("0x00000000000000000000000000000000000000cc")
	adapter  = core.MustAddress("0x00000000000000000000000000000000000000dd")
)

func TestFetcher(t *testing.T) {
	ctx := context.Background()
	f, err := Open("testdata/snapshot.yaml")
	require.NoError(t, err)

	t.Run("market", func(t *testing.T) {
		params, err := f.FetchMarketParams(ctx, marketID)
		require.NoError(t, err)
		assert.Equal(t, mathlib.MustParseWad("0.86"), params.Lltv)

		state, err := f.FetchMarket(ctx, marketID)
		require.NoError(t, err)
		assert.Equal(t, mathlib.MustParse("800_000000000000000000"), state.TotalBorrowAssets)
		assert.Equal(t, uint64(1_700_000_000), state.LastUpdate)
		assert.Equal(t, mathlib.MustParse("1268391679"), state.RateAtTarget)

		_, err = f.FetchMarket(ctx, core.MarketID{})
		assert.Equal(t, core.ErrMarketNotFound, core.CodeOf(err))
	})

	t.Run("positions", func(t *testing.T) {
		p, err := f.FetchPosition(ctx, user, marketID)
		require.NoError(t, err)
		assert.Equal(t, marketID, p.MarketID)
		assert.Equal(t, mathlib.MustParse("100_000000000000000000"), p.Collateral)

		all, err := f.FetchPositions(ctx, marketID)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		_, err = f.FetchPosition(ctx, adapter, marketID)
		var miss *core.UnknownPositionError
		assert.True(t, errors.As(err, &miss))
	})

	t.Run("pre-liquidation", func(t *testing.T) {
		params, price, err := f.FetchPreLiquidation(ctx, user, marketID)
		require.NoError(t, err)
		require.NotNil(t, params)
		assert.Equal(t, mathlib.MustParseWad("0.8"), params.PreLltv)
		assert.Equal(t, mathlib.MustParse("600000000000000000000000000000000000"), price)

		params, price, err = f.FetchPreLiquidation(ctx, v1, marketID)
		require.NoError(t, err)
		assert.Nil(t, params)
		assert.Nil(t, price)
	})

	t.Run("vault", func(t *testing.T) {
		config, err := f.FetchVaultConfig(ctx, v1)
		require.NoError(t, err)
		assert.Equal(t, "mvTEST", config.Symbol)

		state, err := f.FetchVault(ctx, v1)
		require.NoError(t, err)
		assert.Equal(t, []core.MarketID{marketID}, state.WithdrawQueue)
		assert.Nil(t, state.LostAssets)

		mc, err := f.FetchVaultMarketConfig(ctx, v1, marketID)
		require.NoError(t, err)
		assert.Equal(t, v1, mc.Vault)
		assert.True(t, mc.Enabled)

		_, err = f.FetchVault(ctx, user)
		assert.Equal(t, core.ErrVaultNotFound, core.CodeOf(err))
	})

	t.Run("vault v2", func(t *testing.T) {
		state, err := f.FetchVaultV2(ctx, v2)
		require.NoError(t, err)
		assert.Equal(t, adapter, state.LiquidityAdapter)
		require.Len(t, state.Caps, 1)

		a, err := f.FetchVaultV2Adapter(ctx, adapter)
		require.NoError(t, err)
		assert.Equal(t, core.AdapterVaultV1, a.Type)
		assert.Equal(t, v2, a.ParentVault)
		assert.Equal(t, v1, a.Vault)

		_, err = f.FetchVaultV2Adapter(ctx, user)
		assert.True(t, errors.Is(err, core.ErrInvalidAllocation))
	})
}

func TestSave(t *testing.T) {
	doc, err := Load("testdata/snapshot.yaml")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, doc))

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Timestamp, again.Timestamp)
	assert.Equal(t, doc.Markets[0].State, again.Markets[0].State)
	assert.Equal(t, doc.VaultsV2[0].State.Caps, again.VaultsV2[0].State.Caps)
}

func TestNewRejectsIncomplete(t *testing.T) {
	_, err := New(&Document{Markets: []*Market{{}}})
	assert.True(t, errors.Is(err, core.ErrInvalidInput))

	_, err = Open("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.FileServer(http.Dir("testdata")))
	defer srv.Close()

	doc, err := LoadContext(context.Background(), srv.URL+"/snapshot.yaml")
	require.NoError(t, err)
	assert.EqualValues(t, 1700086400, doc.Timestamp)
	require.Len(t, doc.Markets, 1)

	_, err = Load(srv.URL + "/missing.yaml")
	assert.Error(t, err)
}
