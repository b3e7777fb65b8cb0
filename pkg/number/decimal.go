package number

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	maxUint64 = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// FromUint64 exact decimal of v
func FromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)
}

// FromWad decimal of a wad scaled fraction
func FromWad(v uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -18)
}

// ToWad wad scaled fraction of d, truncated
func ToWad(d decimal.Decimal) (uint64, error) {
	return ToUint64(d.Shift(18))
}

// ToUint64 truncates d toward zero, failing when out of range
func ToUint64(d decimal.Decimal) (uint64, error) {
	d = d.Truncate(0)
	if d.IsNegative() {
		return 0, ErrUnderflow
	}

	if d.GreaterThan(maxUint64) {
		return 0, ErrOverflow
	}

	return d.BigInt().Uint64(), nil
}

// CheckedDivDecimal a / b, failing on a zero divisor
func CheckedDivDecimal(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}

	return a.Div(b), nil
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}
