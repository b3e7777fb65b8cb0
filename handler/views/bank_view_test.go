package views

import (
	"testing"

	"lending/core"

	"github.com/stretchr/testify/assert"
)

func TestBankView(t *testing.T) {
	bank := &core.Bank{
		AssetID:        "usdc",
		TotalDeposited: 1000,
		TotalBorrowed:  250,
		// ln(1.1) / year
		InterestRate: 3022265980,
	}

	view := BankView(bank)
	assert.Equal(t, uint64(750), view.Cash)
	assert.Equal(t, "0.25", view.Utilization.String())
	assert.InDelta(t, 0.1, view.BorrowAPY.InexactFloat64(), 1e-6)
	assert.InDelta(t, 0.025, view.SupplyAPY.InexactFloat64(), 1e-6)
}

func TestBankViewEmpty(t *testing.T) {
	view := BankView(&core.Bank{AssetID: "sol"})
	assert.True(t, view.Utilization.IsZero())
	assert.True(t, view.BorrowAPY.IsZero())
	assert.True(t, view.SupplyAPY.IsZero())
}
