package irm

import (
	"math/big"
)

// quo signed division truncating toward zero, like Solidity
func quo(x, y *big.Int) *big.Int {
	return new(big.Int).Quo(x, y)
}

func wMulToZero(x, y *big.Int) *big.Int {
	return quo(new(big.Int).Mul(x, y), wadInt)
}

func wDivToZero(x, y *big.Int) *big.Int {
	return quo(new(big.Int).Mul(x, wadInt), y)
}

func bound(x, low, high *big.Int) *big.Int {
	if x.Cmp(low) < 0 {
		return new(big.Int).Set(low)
	}

	if x.Cmp(high) > 0 {
		return new(big.Int).Set(high)
	}

	return new(big.Int).Set(x)
}

// WExp approximation of e^x for a WAD-scaled signed x.
//
// Below ln(1e-18) the result is 0, from WExpUpperBound on it saturates
// at WExpUpperValue. In between x is split into q*ln(2) + r with
// |r| <= ln(2)/2, e^r is taken to the second order and shifted by q.
func WExp(x *big.Int) *big.Int {
	if x.Cmp(LnWeiInt) < 0 {
		return new(big.Int)
	}

	if x.Cmp(WExpUpperBound) >= 0 {
		return new(big.Int).Set(WExpUpperValue)
	}

	roundingAdjustment := quo(Ln2Int, big.NewInt(2))
	if x.Sign() < 0 {
		roundingAdjustment.Neg(roundingAdjustment)
	}

	q := quo(new(big.Int).Add(x, roundingAdjustment), Ln2Int)
	r := new(big.Int).Sub(x, new(big.Int).Mul(q, Ln2Int))

	// WAD + r + r^2 / WAD / 2
	expR := new(big.Int).Add(wadInt, r)
	expR.Add(expR, quo(quo(new(big.Int).Mul(r, r), wadInt), big.NewInt(2)))

	if q.Sign() >= 0 {
		return expR.Lsh(expR, uint(q.Uint64()))
	}

	return expR.Rsh(expR, uint(new(big.Int).Neg(q).Uint64()))
}
