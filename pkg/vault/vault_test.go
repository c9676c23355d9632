package vault

import (
	"errors"
	"testing"

	"blue/core"
	"blue/internal/irm"
	"blue/pkg/blue"
	"blue/pkg/mathlib"
	"blue/pkg/token"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lastUpdate uint64 = 1_700_000_000

var vaultAddress = core.MustAddress("0x00000000000000000000000000000000000000aa")

func n(s string) *uint256.Int {
	return mathlib.MustParse(s)
}

func params(lltv string) *core.MarketParams {
	return &core.MarketParams{
		LoanToken:       core.MustAddress("0x0000000000000000000000000000000000000001"),
		CollateralToken: core.MustAddress("0x0000000000000000000000000000000000000002"),
		Oracle:          core.MustAddress("0x0000000000000000000000000000000000000003"),
		Irm:             core.MustAddress("0x0000000000000000000000000000000000000004"),
		Lltv:            mathlib.MustParseWad(lltv),
	}
}

// 80% utilized adaptive market and an unborrowed market without irm
func testMarkets() (*blue.Market, *blue.Market) {
	a := blue.NewMarket(params("0.86"), &core.MarketState{
		TotalSupplyAssets: n("1000_000000000000000000"),
		TotalSupplyShares: n("1000_000000000000000000_000000"),
		TotalBorrowAssets: n("800_000000000000000000"),
		TotalBorrowShares: n("800_000000000000000000_000000"),
		LastUpdate:        lastUpdate,
		Fee:               mathlib.MustParseWad("0.1"),
		Price:             n("1_000000000000000000_000000000000000000"),
		RateAtTarget:      uint256.MustFromBig(irm.InitialRateAtTarget),
	})

	b := blue.NewMarket(params("0.915"), &core.MarketState{
		TotalSupplyAssets: n("500_000000000000000000"),
		TotalSupplyShares: n("500_000000000000000000_000000"),
		TotalBorrowAssets: mathlib.Zero(),
		TotalBorrowShares: mathlib.Zero(),
		LastUpdate:        lastUpdate,
		Fee:               mathlib.Zero(),
	})

	return a, b
}

func allocation(m *blue.Market, shares, cap string) *Allocation {
	return &Allocation{
		Config: &core.VaultMarketConfig{
			Vault:    vaultAddress,
			MarketID: m.ID(),
			Cap:      n(cap),
			Enabled:  true,
		},
		Position: blue.NewAccrualPosition(&core.Position{
			User:         vaultAddress,
			SupplyShares: n(shares),
		}, m),
	}
}

func testVault(t *testing.T, lastTotalAssets string, lostAssets *uint256.Int) *AccrualVault {
	a, b := testMarkets()
	v := NewVault(
		&core.VaultConfig{Address: vaultAddress, Decimals: 18, DecimalsOffset: DecimalsOffset(18)},
		&core.VaultState{
			Address:         vaultAddress,
			Fee:             mathlib.MustParseWad("0.2"),
			SupplyQueue:     []core.MarketID{a.ID(), b.ID()},
			WithdrawQueue:   []core.MarketID{b.ID(), a.ID()},
			TotalSupply:     n("150_000000000000000000"),
			TotalAssets:     n("150_000000000000000000"),
			LastTotalAssets: n(lastTotalAssets),
			LostAssets:      lostAssets,
		},
	)

	av, err := NewAccrualVault(v, []*Allocation{
		allocation(a, "100_000000000000000000_000000", "120_000000000000000000"),
		allocation(b, "50_000000000000000000_000000", "60_000000000000000000"),
	})
	require.NoError(t, err)
	return av
}

func TestUtils(t *testing.T) {
	assert.Equal(t, uint8(12), DecimalsOffset(6))
	assert.Equal(t, uint8(0), DecimalsOffset(18))
	assert.Equal(t, uint8(0), DecimalsOffset(24))

	// empty vault mints 10^offset shares per asset
	assert.Equal(t, n("1_000000000000"), ToShares(mathlib.New(1), mathlib.Zero(), mathlib.Zero(), 12, mathlib.Down))
	assert.Equal(t, mathlib.New(1), ToAssets(n("1_000000000000"), mathlib.Zero(), mathlib.Zero(), 12, mathlib.Down))

	// no 256-bit overflow on the intermediate product
	huge := new(uint256.Int).Rsh(mathlib.MaxUint256, 1)
	assert.Equal(t, huge, ToShares(huge, huge, huge, 0, mathlib.Down))
}

func TestVaultWrapper(t *testing.T) {
	var w token.Wrapper = testVault(t, "150_000000000000000000", nil)
	assert.Equal(t, mathlib.WAD, w.Wrap(mathlib.WAD, mathlib.Down))
	assert.Equal(t, mathlib.WAD, w.Unwrap(mathlib.WAD, mathlib.Down))
}

func TestNewAccrualVault(t *testing.T) {
	v := testVault(t, "150_000000000000000000", nil)

	t.Run("withdraw queue order", func(t *testing.T) {
		require.Len(t, v.Allocations, 2)
		assert.Equal(t, v.State.WithdrawQueue[0], v.Allocations[0].Position.Market.ID())
	})

	t.Run("foreign position", func(t *testing.T) {
		a, _ := testMarkets()
		foreign := allocation(a, "1", "1")
		foreign.Position.Position.User = core.MustAddress("0x0000000000000000000000000000000000000005")

		_, err := NewAccrualVault(v.Vault, []*Allocation{foreign})
		assert.True(t, errors.Is(err, core.ErrInvalidAllocation))
	})
}

func TestAccrualVaultAccrueInterest(t *testing.T) {
	t.Run("performance fee", func(t *testing.T) {
		v := testVault(t, "150_000000000000000000", nil)
		result, err := v.AccrueInterest(lastUpdate + 86400)
		require.NoError(t, err)

		assert.Equal(t, n("150007178503988927519"), result.Vault.State.TotalAssets)
		assert.Equal(t, n("150007178503988927519"), result.Vault.State.LastTotalAssets)
		assert.Equal(t, n("1435645833575673"), result.FeeShares)
		assert.Equal(t, n("150001435645833575673"), result.Vault.State.TotalSupply)
		assert.Equal(t, n("1000038285354607613"), result.Vault.SharePrice())

		// source untouched
		assert.Equal(t, n("150_000000000000000000"), v.State.TotalSupply)
	})

	t.Run("lost assets", func(t *testing.T) {
		v := testVault(t, "160_000000000000000000", mathlib.Zero())
		result, err := v.AccrueInterest(lastUpdate + 86400)
		require.NoError(t, err)

		assert.Equal(t, n("9992821496011072481"), result.Vault.State.LostAssets)
		assert.Equal(t, n("160_000000000000000000"), result.Vault.State.TotalAssets)
		assert.True(t, result.FeeShares.IsZero())
	})

	t.Run("zero elapsed", func(t *testing.T) {
		v := testVault(t, "150_000000000000000000", nil)
		result, err := v.AccrueInterest(lastUpdate)
		require.NoError(t, err)
		assert.True(t, result.FeeShares.IsZero())
		assert.Equal(t, n("150_000000000000000000"), result.Vault.State.TotalAssets)
	})

	t.Run("before last update", func(t *testing.T) {
		v := testVault(t, "150_000000000000000000", nil)
		_, err := v.AccrueInterest(lastUpdate - 1)
		assert.Equal(t, core.ErrInvalidInterestAccrual, core.CodeOf(err))
	})
}

func TestAccrualVaultCapacity(t *testing.T) {
	v := testVault(t, "150_000000000000000000", nil)
	a, _ := testMarkets()

	assert.Equal(t, n("30_000000000000000000"), v.MaxDeposit())
	assert.Equal(t, &core.CapacityLimit{Value: n("30_000000000000000000"), Limiter: core.LimiterCap}, v.DepositCapacityLimit(n("31_000000000000000000")))
	assert.Equal(t, &core.CapacityLimit{Value: mathlib.WAD, Limiter: core.LimiterBalance}, v.DepositCapacityLimit(mathlib.WAD))

	assert.Equal(t, n("150_000000000000000000"), v.Liquidity())
	assert.Equal(t, core.LimiterLiquidity, v.WithdrawCapacityLimit(n("151_000000000000000000")).Limiter)
	assert.Equal(t, core.LimiterBalance, v.WithdrawCapacityLimit(mathlib.WAD).Limiter)

	assert.Equal(t, n("666666666666666666"), v.AllocationProportion(a.ID()))

	t.Run("disabled market", func(t *testing.T) {
		alloc, ok := v.Allocation(a.ID())
		require.True(t, ok)
		alloc.Config.Enabled = false
		assert.Equal(t, n("10_000000000000000000"), v.MaxDeposit())
	})
}

func TestAccrualVaultApy(t *testing.T) {
	v := testVault(t, "150_000000000000000000", nil)
	a, _ := testMarkets()

	// two thirds in the market earning, one third idle
	expected := a.SupplyApy().Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(150))
	assert.True(t, expected.Sub(v.Apy()).Abs().LessThan(decimal.New(1, -15)))
	assert.True(t, v.NetApy().LessThan(v.Apy()))
}
