package vaultv2

import (
	"testing"

	"blue/core"
	"blue/pkg/mathlib"

	"github.com/stretchr/testify/assert"
)

func TestIDs(t *testing.T) {
	assert.Equal(t,
		"0x279289538d964d2e4be31bf6afac560a3bba4081225a414872f6aeac8e1f5cbf",
		AdapterID(core.MustAddress("0x00000000000000000000000000000000000000aa")).Hex(),
	)

	assert.Equal(t,
		"0xc065d2d5aa78017ac45e71307834a7074462395ee89ed09059078375cede4483",
		CollateralTokenID(core.MustAddress("0x0000000000000000000000000000000000000002")).Hex(),
	)

	params := &core.MarketParams{
		LoanToken:       core.MustAddress("0x0000000000000000000000000000000000000001"),
		CollateralToken: core.MustAddress("0x0000000000000000000000000000000000000002"),
		Oracle:          core.MustAddress("0x0000000000000000000000000000000000000003"),
		Irm:             core.MustAddress("0x0000000000000000000000000000000000000004"),
		Lltv:            mathlib.MustParseWad("0.86"),
	}
	assert.Equal(t,
		"0xcd81c4848e3bc866a6d725abe31fea1a389b5b2e4587a5679a7782f6aa2de4a8",
		MarketParamsID(core.MustAddress("0x00000000000000000000000000000000000000bb"), params).Hex(),
	)

	ids := MarketIDs(core.MustAddress("0x00000000000000000000000000000000000000bb"), params)
	assert.Len(t, ids, 3)
	assert.Equal(t, AdapterID(core.MustAddress("0x00000000000000000000000000000000000000bb")), ids[0])
}
