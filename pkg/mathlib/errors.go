package mathlib

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero division or mulDiv by a zero denominator
	ErrDivisionByZero = errors.New("division by zero")
	// ErrOverflow result does not fit in 256 bits
	ErrOverflow = errors.New("uint256 overflow")
	// ErrUnderflow subtraction below zero
	ErrUnderflow = errors.New("uint256 underflow")
)

// Error arithmetic failure raised by the checked operations
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mathlib: %s: %s", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func throw(err error, op string) {
	panic(&Error{Op: op, Err: err})
}

// Recover turns an arithmetic panic raised by this package into *err.
// Other panics are re-raised. Use as `defer mathlib.Recover(&err)`.
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}

	if e, ok := r.(*Error); ok {
		*err = e
		return
	}

	panic(r)
}

// Try runs fn and reports an arithmetic failure as an error
func Try(fn func()) (err error) {
	defer Recover(&err)
	fn()
	return nil
}
