package blue

import (
	"blue/core"
	"blue/internal/irm"
	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

const lastUpdate uint64 = 1_700_000_000

var (
	user = core.MustAddress("0x0000000000000000000000000000000000000005")

	testParams = &core.MarketParams{
		LoanToken:       core.MustAddress("0x0000000000000000000000000000000000000001"),
		CollateralToken: core.MustAddress("0x0000000000000000000000000000000000000002"),
		Oracle:          core.MustAddress("0x0000000000000000000000000000000000000003"),
		Irm:             core.MustAddress("0x0000000000000000000000000000000000000004"),
		Lltv:            mathlib.MustParseWad("0.86"),
	}
)

func n(s string) *uint256.Int {
	return mathlib.MustParse(s)
}

// 1000 supplied, 800 borrowed, 10% fee, collateral priced 1:1
func testState() *core.MarketState {
	return &core.MarketState{
		TotalSupplyAssets: n("1000_000000000000000000"),
		TotalSupplyShares: n("1000_000000000000000000_000000"),
		TotalBorrowAssets: n("800_000000000000000000"),
		TotalBorrowShares: n("800_000000000000000000_000000"),
		LastUpdate:        lastUpdate,
		Fee:               mathlib.MustParseWad("0.1"),
		Price:             n("1_000000000000000000_000000000000000000"),
		RateAtTarget:      uint256.MustFromBig(irm.InitialRateAtTarget),
	}
}

func testMarket() *Market {
	return NewMarket(testParams, testState())
}

func withPrice(m *Market, price string) *Market {
	state := m.State.Clone()
	state.Price = nil
	if price != "" {
		state.Price = n(price)
	}

	return NewMarket(m.Params, state)
}

// 100 supplied, 50 borrowed against 100 collateral
func testPosition(m *Market) *AccrualPosition {
	return NewAccrualPosition(&core.Position{
		User:         user,
		SupplyShares: n("100_000000000000000000_000000"),
		BorrowShares: n("50_000000000000000000_000000"),
		Collateral:   n("100_000000000000000000"),
	}, m)
}
