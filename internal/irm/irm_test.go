package irm

import (
	"math/big"
	"testing"

	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestWExp(t *testing.T) {
	wad := big.NewInt(1e18)

	cases := map[string]struct {
		x    *big.Int
		want string
	}{
		"zero":            {big.NewInt(0), "1000000000000000000"},
		"one":             {wad, "2707864291678420188"},
		"minus one":       {new(big.Int).Neg(wad), "370113253479550356"},
		"ln2":             {Ln2Int, "2000000000000000000"},
		"ln wei":          {LnWeiInt, "0"},
		"below ln wei":    {new(big.Int).Sub(LnWeiInt, big.NewInt(1)), "0"},
		"below bound":     {new(big.Int).Sub(WExpUpperBound, big.NewInt(1)), "57716089161558943862588783571184261698504523000224082296832"},
		"upper bound":     {WExpUpperBound, WExpUpperValue.String()},
		"above the bound": {new(big.Int).Mul(big.NewInt(100), wad), WExpUpperValue.String()},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, WExp(c.x).String())
		})
	}
}

func TestBorrowRate(t *testing.T) {
	initial := uint256.MustFromBig(InitialRateAtTarget)

	cases := map[string]struct {
		utilization  string
		start        *uint256.Int
		elapsed      uint64
		avg, end, at uint64
	}{
		"first interaction at target": {"900000000000000000", mathlib.Zero(), 0, 1268391679, 1268391679, 1268391679},
		"first interaction empty":     {"0", mathlib.Zero(), 1000, 317097919, 317097919, 1268391679},
		"first interaction full":      {"1000000000000000000", mathlib.Zero(), 0, 5073566716, 5073566716, 1268391679},
		"at target no adaptation":     {"900000000000000000", initial, 86400, 1268391679, 1268391679, 1268391679},
		"above target one day":        {"950000000000000000", initial, 86400, 3282363632, 3395607577, 1358243031},
		"below target one week":       {"500000000000000000", initial, 7 * 86400, 691385372, 550737112, 826105669},
		"clamped at max":              {"1000000000000000000", uint256.MustFromBig(MaxRateAtTarget), 365 * 86400, 253678335868, 253678335868, 63419583967},
		"clamped at min":              {"0", uint256.MustFromBig(MinRateAtTarget), 365 * 86400, 7927447, 7927447, 31709791},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rates := BorrowRate(mathlib.MustParse(c.utilization), c.start, c.elapsed)
			assert.Equal(t, mathlib.New(c.avg), rates.AvgBorrowRate, "avg borrow rate")
			assert.Equal(t, mathlib.New(c.end), rates.EndBorrowRate, "end borrow rate")
			assert.Equal(t, mathlib.New(c.at), rates.EndRateAtTarget, "end rate at target")
		})
	}
}

func TestBorrowRateFirstInteraction(t *testing.T) {
	for _, elapsed := range []uint64{0, 1, 86400, 365 * 86400} {
		rates := BorrowRate(mathlib.MustParseWad("0.9"), mathlib.Zero(), elapsed)
		assert.Equal(t, rates.EndRateAtTarget, rates.AvgBorrowRate)
		assert.Equal(t, uint256.MustFromBig(InitialRateAtTarget), rates.EndRateAtTarget)
	}
}

func TestUtilizationAtBorrowRate(t *testing.T) {
	initial := uint256.MustFromBig(InitialRateAtTarget)

	assert.Equal(t, mathlib.MustParseWad("0.9"), UtilizationAtBorrowRate(initial, initial))
	assert.Equal(t, mathlib.WAD, UtilizationAtBorrowRate(mathlib.Mul(initial, mathlib.New(4)), initial))
	assert.Equal(t, mathlib.Zero(), UtilizationAtBorrowRate(mathlib.Div(initial, mathlib.New(4)), initial))
	assert.Equal(t, mathlib.MustParse("949999999986859999"), UtilizationAtBorrowRate(mathlib.New(3170979197), initial))
	assert.Equal(t, mathlib.MustParse("500000000078839999"), UtilizationAtBorrowRate(mathlib.New(845594452), initial))
	assert.Equal(t, mathlib.Zero(), UtilizationAtBorrowRate(initial, mathlib.Zero()))
}
