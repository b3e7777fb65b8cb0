package views

import (
	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

const secondsPerYear = 365 * 24 * 60 * 60

var maxYearlyExponent = decimal.NewFromInt(45)

// Bank bank view
type Bank struct {
	*core.Bank
	Cash        uint64          `json:"cash"`
	Utilization decimal.Decimal `json:"utilization"`
	BorrowAPY   decimal.Decimal `json:"borrow_apy"`
	SupplyAPY   decimal.Decimal `json:"supply_apy"`
}

// BankView bank view with the yearly rates derived from the per second rate
func BankView(bank *core.Bank) Bank {
	view := Bank{
		Bank: bank,
		Cash: bank.Cash(),
	}

	if bank.TotalDeposited > 0 {
		view.Utilization = number.FromUint64(bank.TotalBorrowed).
			DivRound(number.FromUint64(bank.TotalDeposited), 8)
	}

	exponent := number.FromWad(bank.InterestRate).Mul(decimal.NewFromInt(secondsPerYear))
	if exponent.IsPositive() && exponent.LessThanOrEqual(maxYearlyExponent) {
		if growth, err := exponent.ExpTaylor(8); err == nil {
			view.BorrowAPY = growth.Sub(decimal.NewFromInt(1)).Truncate(8)
		}
	}

	view.SupplyAPY = view.BorrowAPY.Mul(view.Utilization).Truncate(8)
	return view
}

// BankViews views of banks
func BankViews(banks []*core.Bank) []Bank {
	views := make([]Bank, 0, len(banks))
	for _, bank := range banks {
		views = append(views, BankView(bank))
	}

	return views
}
