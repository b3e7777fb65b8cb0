package compound

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

const (
	// ExpPrecision digits kept by the exponential series
	ExpPrecision = 18
)

// maxExponent bounds rate*dt, e^45 overflows uint64 for any principal >= 1
var maxExponent = decimal.NewFromInt(45)

// Accrue principal * e^(rate * (now - lastUpdated)), truncated.
//
// rate is a per second wad; now before lastUpdated is an error.
func Accrue(principal, rate uint64, lastUpdated, now int64) (uint64, error) {
	if err := Require(now >= lastUpdated, "interest/time-reversed", core.ErrMath); err != nil {
		return 0, err
	}

	if principal == 0 || rate == 0 || now == lastUpdated {
		return principal, nil
	}

	exponent := number.FromWad(rate).Mul(decimal.NewFromInt(now - lastUpdated))
	if exponent.GreaterThan(maxExponent) {
		return 0, number.ErrOverflow
	}

	growth, err := exponent.ExpTaylor(ExpPrecision)
	if err != nil {
		return 0, &Error{Code: core.ErrMath, Msg: err.Error()}
	}

	return number.ToUint64(number.FromUint64(principal).Mul(growth))
}

// AccrueBank brings the bank totals current.
//
// Borrowed grows continuously at the bank rate and the interest is credited
// to the deposit side, so cash is unchanged by accrual.
func AccrueBank(bank *core.Bank, now int64) error {
	if bank.LastUpdated == 0 {
		bank.LastUpdated = now
		return nil
	}

	borrowed, err := Accrue(bank.TotalBorrowed, bank.InterestRate, bank.LastUpdated, now)
	if err != nil {
		return err
	}

	interest := borrowed - bank.TotalBorrowed
	deposited, err := number.CheckedAdd(bank.TotalDeposited, interest)
	if err != nil {
		return err
	}

	bank.TotalBorrowed = borrowed
	bank.TotalDeposited = deposited
	bank.LastUpdated = now
	return nil
}
