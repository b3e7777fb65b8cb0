package core

import (
	"context"
	"time"
)

// Bank per-asset liquidity pool
type Bank struct {
	ID       uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID  string `sql:"size:36;unique_index:idx_banks_asset_id" json:"asset_id"`
	Decimals uint8  `sql:"default:8" json:"decimals"`
	// deposit side
	TotalDeposited       uint64 `sql:"default:0" json:"total_deposited"`
	TotalDepositedShares uint64 `sql:"default:0" json:"total_deposited_shares"`
	// borrow side
	TotalBorrowed       uint64 `sql:"default:0" json:"total_borrowed"`
	TotalBorrowedShares uint64 `sql:"default:0" json:"total_borrowed_shares"`
	// per second continuous compounding rate, wad
	InterestRate uint64 `sql:"default:0" json:"interest_rate"`
	// fraction of collateral value counted as borrowing power, wad
	LiquidationThreshold uint64 `json:"liquidation_threshold"`
	// wad
	MaxLTV uint64 `json:"max_ltv"`
	// extra fraction of collateral awarded to the liquidator, wad
	LiquidationBonus uint64 `json:"liquidation_bonus"`
	// max fraction of the debt one liquidation may repay, wad
	LiquidationCloseFactor uint64 `json:"liquidation_close_factor"`
	// unix seconds of the last accrual of the totals
	LastUpdated int64     `sql:"default:0" json:"last_updated"`
	Version     int64     `sql:"default:0" json:"version"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Cash deposits not lent out
func (b *Bank) Cash() uint64 {
	if b.TotalBorrowed >= b.TotalDeposited {
		return 0
	}

	return b.TotalDeposited - b.TotalBorrowed
}

// BankParams init bank parameters, all fractions in wad
type BankParams struct {
	AssetID                string `json:"asset_id"`
	Decimals               uint8  `json:"decimals"`
	InterestRate           uint64 `json:"interest_rate"`
	LiquidationThreshold   uint64 `json:"liquidation_threshold"`
	MaxLTV                 uint64 `json:"max_ltv"`
	LiquidationBonus       uint64 `json:"liquidation_bonus"`
	LiquidationCloseFactor uint64 `json:"liquidation_close_factor"`
}

// BankStore bank store interface
type BankStore interface {
	Create(ctx context.Context, bank *Bank) error
	Find(ctx context.Context, assetID string) (*Bank, error)
	All(ctx context.Context) ([]*Bank, error)
	Update(ctx context.Context, bank *Bank) error
}
