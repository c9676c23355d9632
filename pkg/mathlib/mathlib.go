package mathlib

import (
	"github.com/holiman/uint256"
)

// Rounding direction of an integer division
type Rounding int

const (
	// Down rounds toward zero
	Down Rounding = iota
	// Up rounds away from zero
	Up
)

func (r Rounding) String() string {
	if r == Up {
		return "Up"
	}

	return "Down"
}

var (
	// WAD fixed-point scale, 1e18
	WAD = uint256.NewInt(1e18)
	// OraclePriceScale scale of oracle prices, 1e36
	OraclePriceScale = new(uint256.Int).Mul(WAD, WAD)
	// SecondsPerYear 365 days
	SecondsPerYear = uint256.NewInt(365 * 24 * 3600)
	// MaxUint256 2^256 - 1
	MaxUint256 = new(uint256.Int).SetAllOne()
)

// Zero returns a fresh zero value
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// New returns a fresh value from uint64
func New(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// Clone returns a copy of x, a nil x stays nil
func Clone(x *uint256.Int) *uint256.Int {
	if x == nil {
		return nil
	}

	return x.Clone()
}

// Add returns x + y, panics with ErrOverflow past 2^256 - 1
func Add(x, y *uint256.Int) *uint256.Int {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		throw(ErrOverflow, "add")
	}

	return z
}

// Sub returns x - y, panics with ErrUnderflow when y > x
func Sub(x, y *uint256.Int) *uint256.Int {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		throw(ErrUnderflow, "sub")
	}

	return z
}

// Mul returns x * y, panics with ErrOverflow past 2^256 - 1
func Mul(x, y *uint256.Int) *uint256.Int {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		throw(ErrOverflow, "mul")
	}

	return z
}

// Div returns x / y rounded down, panics with ErrDivisionByZero
func Div(x, y *uint256.Int) *uint256.Int {
	if y.IsZero() {
		throw(ErrDivisionByZero, "div")
	}

	return new(uint256.Int).Div(x, y)
}

// MulDiv x * y / d with the product checked against 256 bits.
//
// Rounding up adds d - 1 before dividing, reverting like the contract
// when that sum overflows.
func MulDiv(x, y, d *uint256.Int, rounding Rounding) *uint256.Int {
	if d.IsZero() {
		throw(ErrDivisionByZero, "mulDiv")
	}

	p := Mul(x, y)
	if rounding == Up {
		p = Add(p, new(uint256.Int).SubUint64(d, 1))
	}

	return p.Div(p, d)
}

// MulDivDown x * y / d rounded down
func MulDivDown(x, y, d *uint256.Int) *uint256.Int {
	return MulDiv(x, y, d, Down)
}

// MulDivUp x * y / d rounded up
func MulDivUp(x, y, d *uint256.Int) *uint256.Int {
	return MulDiv(x, y, d, Up)
}

// FullMulDiv x * y / d with a 512-bit intermediate product,
// only the quotient has to fit in 256 bits.
func FullMulDiv(x, y, d *uint256.Int, rounding Rounding) *uint256.Int {
	if d.IsZero() {
		throw(ErrDivisionByZero, "fullMulDiv")
	}

	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		throw(ErrOverflow, "fullMulDiv")
	}

	if rounding == Up && !new(uint256.Int).MulMod(x, y, d).IsZero() {
		return Add(z, uint256.NewInt(1))
	}

	return z
}

// WMul x * y / WAD
func WMul(x, y *uint256.Int, rounding Rounding) *uint256.Int {
	return MulDiv(x, y, WAD, rounding)
}

// WMulDown x * y / WAD rounded down
func WMulDown(x, y *uint256.Int) *uint256.Int {
	return MulDiv(x, y, WAD, Down)
}

// WMulUp x * y / WAD rounded up
func WMulUp(x, y *uint256.Int) *uint256.Int {
	return MulDiv(x, y, WAD, Up)
}

// WDiv x * WAD / y
func WDiv(x, y *uint256.Int, rounding Rounding) *uint256.Int {
	return MulDiv(x, WAD, y, rounding)
}

// WDivDown x * WAD / y rounded down
func WDivDown(x, y *uint256.Int) *uint256.Int {
	return MulDiv(x, WAD, y, Down)
}

// WDivUp x * WAD / y rounded up
func WDivUp(x, y *uint256.Int) *uint256.Int {
	return MulDiv(x, WAD, y, Up)
}

// ZeroFloorSub max(x - y, 0)
func ZeroFloorSub(x, y *uint256.Int) *uint256.Int {
	if !x.Gt(y) {
		return new(uint256.Int)
	}

	return new(uint256.Int).Sub(x, y)
}

// AbsDiff |x - y|
func AbsDiff(x, y *uint256.Int) *uint256.Int {
	if x.Lt(y) {
		return new(uint256.Int).Sub(y, x)
	}

	return new(uint256.Int).Sub(x, y)
}

// Min smallest of xs, panics on an empty list
func Min(xs ...*uint256.Int) *uint256.Int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x.Lt(m) {
			m = x
		}
	}

	return m.Clone()
}

// Max largest of xs, panics on an empty list
func Max(xs ...*uint256.Int) *uint256.Int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x.Gt(m) {
			m = x
		}
	}

	return m.Clone()
}

// WTaylorCompounded first three non-zero terms of the Taylor expansion
// of e^(x*n) - 1, used to approximate continuous compounding.
func WTaylorCompounded(x, n *uint256.Int) *uint256.Int {
	firstTerm := Mul(x, n)
	secondTerm := MulDivDown(firstTerm, firstTerm, Mul(uint256.NewInt(2), WAD))
	thirdTerm := MulDivDown(secondTerm, firstTerm, Mul(uint256.NewInt(3), WAD))

	return Add(Add(firstTerm, secondTerm), thirdTerm)
}
