// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import (
	"errors"

	"github.com/holiman/uint256"
)

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	ErrOverflow     = errors.New("overflow")
	ErrUnderflow    = errors.New("underflow")
	ErrDivideByZero = errors.New("divide by zero")
)

// MaxUint returns the maximum value of an unsigned integer of type T.
func MaxUint[T Unsigned]() T {
	return ^T(0)
}

// Add returns:
// 1) a + b
// 2) If there is overflow, an error
func Add[T Unsigned](a, b T) (T, error) {
	if a > MaxUint[T]()-b {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Sub returns:
// 1) a - b
// 2) If there is underflow, an error
func Sub[T Unsigned](a, b T) (T, error) {
	if a < b {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns:
// 1) a * b
// 2) If there is overflow, an error
func Mul[T Unsigned](a, b T) (T, error) {
	if b != 0 && a > MaxUint[T]()/b {
		return 0, ErrOverflow
	}
	return a * b, nil
}

// MulDiv returns floor(a * b / denominator). The product is computed in 256
// bits so only the final quotient has to fit in a uint64.
func MulDiv(a, b, denominator uint64) (uint64, error) {
	return Fraction([]uint64{a, b}, denominator)
}

// Fraction returns floor(n_1 * ... * n_k / (d_1 * ... * d_m)) using 256-bit
// intermediates. At least one denominator is required and none may be zero.
func Fraction(numerators []uint64, denominators ...uint64) (uint64, error) {
	if len(denominators) == 0 {
		return 0, ErrDivideByZero
	}

	num, err := product(numerators)
	if err != nil {
		return 0, err
	}
	den, err := product(denominators)
	if err != nil {
		return 0, err
	}
	if den.IsZero() {
		return 0, ErrDivideByZero
	}

	num.Div(num, den)
	if !num.IsUint64() {
		return 0, ErrOverflow
	}
	return num.Uint64(), nil
}

func product(factors []uint64) (*uint256.Int, error) {
	acc := uint256.NewInt(1)
	for _, f := range factors {
		if _, overflow := acc.MulOverflow(acc, uint256.NewInt(f)); overflow {
			return nil, ErrOverflow
		}
	}
	return acc, nil
}
