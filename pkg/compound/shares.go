package compound

import (
	"lending/core"
	"lending/pkg/number"
)

func requirePool(totalAmount, totalShares uint64) error {
	return Require(totalAmount > 0 && totalShares > 0, "shares/degenerate-pool", core.ErrMath)
}

// ToShares shares worth amount, truncated. An empty pool mints 1:1.
func ToShares(amount, totalAmount, totalShares uint64) (uint64, error) {
	if totalAmount == 0 && totalShares == 0 {
		return amount, nil
	}

	if err := requirePool(totalAmount, totalShares); err != nil {
		return 0, err
	}

	return number.MulDiv(amount, totalShares, totalAmount)
}

// ToSharesUp shares worth amount, rounded up
func ToSharesUp(amount, totalAmount, totalShares uint64) (uint64, error) {
	if totalAmount == 0 && totalShares == 0 {
		return amount, nil
	}

	if err := requirePool(totalAmount, totalShares); err != nil {
		return 0, err
	}

	return number.MulDivUp(amount, totalShares, totalAmount)
}

// ToAmount amount redeemable for shares, truncated
func ToAmount(shares, totalAmount, totalShares uint64) (uint64, error) {
	if shares == 0 {
		return 0, nil
	}

	if err := requirePool(totalAmount, totalShares); err != nil {
		return 0, err
	}

	return number.MulDiv(shares, totalAmount, totalShares)
}

// Mint adds amount to a pool side and returns the shares minted for it
func Mint(total, totalShares *uint64, amount uint64) (uint64, error) {
	if err := Require(amount > 0, "shares/zero-amount", core.ErrInvalidAmount); err != nil {
		return 0, err
	}

	shares, err := ToShares(amount, *total, *totalShares)
	if err != nil {
		return 0, err
	}

	if err := Require(shares > 0, "shares/dust", core.ErrInvalidAmount); err != nil {
		return 0, err
	}

	newTotal, err := number.CheckedAdd(*total, amount)
	if err != nil {
		return 0, err
	}

	newShares, err := number.CheckedAdd(*totalShares, shares)
	if err != nil {
		return 0, err
	}

	*total, *totalShares = newTotal, newShares
	return shares, nil
}

// Burn removes shares and the amount they stood for from a pool side.
// An emptied side drops its residual amount.
func Burn(total, totalShares *uint64, shares, amount uint64) error {
	newShares, err := number.CheckedSub(*totalShares, shares)
	if err != nil {
		return err
	}

	newTotal, err := number.CheckedSub(*total, amount)
	if err != nil {
		return err
	}

	if newShares == 0 {
		newTotal = 0
	}

	*total, *totalShares = newTotal, newShares
	return nil
}
