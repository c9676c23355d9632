package irm

import (
	"math/big"

	"blue/pkg/mathlib"

	"github.com/holiman/uint256"
)

// Rates result of an adaptive curve evaluation
type Rates struct {
	// AvgBorrowRate per-second rate to accrue over the elapsed period
	AvgBorrowRate *uint256.Int
	// EndBorrowRate per-second rate at the end of the period
	EndBorrowRate *uint256.Int
	// EndRateAtTarget rate at target to store for the next interaction
	EndRateAtTarget *uint256.Int
}

// ErrorOf normalized distance of utilization to the target, WAD-scaled in [-WAD, WAD]
func ErrorOf(utilization *uint256.Int) *big.Int {
	u := utilization.ToBig()

	errNormFactor := TargetUtilization
	if u.Cmp(TargetUtilization) > 0 {
		errNormFactor = new(big.Int).Sub(wadInt, TargetUtilization)
	}

	return wDivToZero(new(big.Int).Sub(u, TargetUtilization), errNormFactor)
}

// Curve borrow rate implied by rateAtTarget for a given error
func Curve(rateAtTarget, err *big.Int) *big.Int {
	var coeff *big.Int
	if err.Sign() < 0 {
		coeff = new(big.Int).Sub(wadInt, wDivToZero(wadInt, CurveSteepness))
	} else {
		coeff = new(big.Int).Sub(CurveSteepness, wadInt)
	}

	return wMulToZero(new(big.Int).Add(wMulToZero(coeff, err), wadInt), rateAtTarget)
}

func newRateAtTarget(startRateAtTarget, linearAdaptation *big.Int) *big.Int {
	return bound(wMulToZero(startRateAtTarget, WExp(linearAdaptation)), MinRateAtTarget, MaxRateAtTarget)
}

// BorrowRate evaluates the adaptive curve over elapsed seconds.
//
// utilization is the market utilization at the start of the period and
// startRateAtTarget the stored rate at target, 0 before the first interaction.
func BorrowRate(utilization, startRateAtTarget *uint256.Int, elapsed uint64) Rates {
	err := ErrorOf(utilization)
	start := startRateAtTarget.ToBig()

	var avgRateAtTarget, endRateAtTarget *big.Int
	if start.Sign() == 0 {
		avgRateAtTarget = new(big.Int).Set(InitialRateAtTarget)
		endRateAtTarget = new(big.Int).Set(InitialRateAtTarget)
	} else {
		speed := wMulToZero(AdjustmentSpeed, err)
		linearAdaptation := new(big.Int).Mul(speed, new(big.Int).SetUint64(elapsed))

		if linearAdaptation.Sign() == 0 {
			avgRateAtTarget = start
			endRateAtTarget = new(big.Int).Set(start)
		} else {
			endRateAtTarget = newRateAtTarget(start, linearAdaptation)
			midRateAtTarget := newRateAtTarget(start, quo(linearAdaptation, big.NewInt(2)))

			// trapezoidal rule over [start, mid, end]
			sum := new(big.Int).Add(start, endRateAtTarget)
			sum.Add(sum, new(big.Int).Lsh(midRateAtTarget, 1))
			avgRateAtTarget = quo(sum, big.NewInt(4))
		}
	}

	return Rates{
		AvgBorrowRate:   uint256.MustFromBig(Curve(avgRateAtTarget, err)),
		EndBorrowRate:   uint256.MustFromBig(Curve(endRateAtTarget, err)),
		EndRateAtTarget: uint256.MustFromBig(endRateAtTarget),
	}
}

// UtilizationAtBorrowRate inverse of the curve: the utilization at which
// the market pays borrowRate given rateAtTarget, clipped to [0, WAD].
func UtilizationAtBorrowRate(borrowRate, rateAtTarget *uint256.Int) *uint256.Int {
	if rateAtTarget.IsZero() {
		return mathlib.Zero()
	}

	steepness := uint256.MustFromBig(CurveSteepness)
	target := uint256.MustFromBig(TargetUtilization)

	if !borrowRate.Lt(rateAtTarget) {
		maxBorrowRate := mathlib.WMulDown(rateAtTarget, steepness)
		if !borrowRate.Lt(maxBorrowRate) {
			return mathlib.WAD.Clone()
		}

		return mathlib.Add(target, mathlib.MulDivDown(
			mathlib.Sub(mathlib.WAD, target),
			mathlib.Sub(mathlib.WDivDown(borrowRate, rateAtTarget), mathlib.WAD),
			mathlib.Sub(steepness, mathlib.WAD),
		))
	}

	minBorrowRate := mathlib.WDivDown(rateAtTarget, steepness)
	if !borrowRate.Gt(minBorrowRate) {
		return mathlib.Zero()
	}

	return mathlib.MulDivDown(
		target,
		mathlib.WDivDown(mathlib.Sub(borrowRate, minBorrowRate), rateAtTarget),
		mathlib.Sub(mathlib.WAD, mathlib.WDivDown(mathlib.WAD, steepness)),
	)
}
