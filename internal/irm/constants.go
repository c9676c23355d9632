package irm

import (
	"math/big"
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("irm: invalid constant " + s)
	}

	return v
}

var (
	wadInt = big.NewInt(1e18)

	// CurveSteepness 4 ether
	CurveSteepness = mustBig("4000000000000000000")
	// AdjustmentSpeed 50 ether / 365 days
	AdjustmentSpeed = mustBig("1585489599188")
	// TargetUtilization 0.9 ether
	TargetUtilization = mustBig("900000000000000000")
	// InitialRateAtTarget 0.04 ether / 365 days
	InitialRateAtTarget = mustBig("1268391679")
	// MinRateAtTarget 0.001 ether / 365 days
	MinRateAtTarget = mustBig("31709791")
	// MaxRateAtTarget 2.0 ether / 365 days
	MaxRateAtTarget = mustBig("63419583967")

	// Ln2Int ln(2)
	Ln2Int = mustBig("693147180559945309")
	// LnWeiInt ln(1e-18)
	LnWeiInt = mustBig("-41446531673892822312")
	// WExpUpperBound above this input wExp saturates
	WExpUpperBound = mustBig("93859467695000404319")
	// WExpUpperValue wExp(WExpUpperBound)
	WExpUpperValue = mustBig("57716089161558943949701069502944508345128422502756744429568")
)
