package number

import (
	"errors"
	"fmt"
	"math/bits"

	"lending/core"

	"github.com/holiman/uint256"
)

const (
	// Wad fixed-point unit of fraction parameters
	Wad uint64 = 1_000_000_000_000_000_000
	// PriceScale fixed-point unit of oracle prices
	PriceScale uint64 = 100_000_000
)

var (
	// ErrDivideByZero division by zero
	ErrDivideByZero = fmt.Errorf("%w: division by zero", core.ErrMath)
	// ErrOverflow result out of uint64 range
	ErrOverflow = fmt.Errorf("%w: overflow", core.ErrMath)
	// ErrUnderflow subtraction below zero
	ErrUnderflow = fmt.Errorf("%w: underflow", core.ErrMath)
)

// IsMathError reports whether err is an arithmetic failure
func IsMathError(err error) bool {
	return errors.Is(err, core.ErrMath)
}

func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}

	return sum, nil
}

func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrUnderflow
	}

	return diff, nil
}

func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}

	return lo, nil
}

func CheckedDiv(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}

	return a / b, nil
}

// MulDiv a * b / d, truncated, on a 256 bit intermediate
func MulDiv(a, b, d uint64) (uint64, error) {
	return Fraction([]uint64{a, b}, []uint64{d}, false)
}

// MulDivUp a * b / d, rounded up
func MulDivUp(a, b, d uint64) (uint64, error) {
	return Fraction([]uint64{a, b}, []uint64{d}, true)
}

// Fraction product(nums) / product(dens).
//
// Both products must fit in 256 bits and the quotient in 64 bits.
func Fraction(nums, dens []uint64, roundUp bool) (uint64, error) {
	num, err := product(nums)
	if err != nil {
		return 0, err
	}

	den, err := product(dens)
	if err != nil {
		return 0, err
	}

	if den.IsZero() {
		return 0, ErrDivideByZero
	}

	q, r := new(uint256.Int).DivMod(num, den, new(uint256.Int))
	if roundUp && !r.IsZero() {
		q.AddUint64(q, 1)
	}

	if !q.IsUint64() {
		return 0, ErrOverflow
	}

	return q.Uint64(), nil
}

// CmpProducts compares a*b with c*d exactly
func CmpProducts(a, b, c, d uint64) int {
	left := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	right := new(uint256.Int).Mul(uint256.NewInt(c), uint256.NewInt(d))
	return left.Cmp(right)
}

func product(values []uint64) (*uint256.Int, error) {
	p := uint256.NewInt(1)
	for _, v := range values {
		if _, overflow := p.MulOverflow(p, uint256.NewInt(v)); overflow {
			return nil, ErrOverflow
		}
	}

	return p, nil
}
