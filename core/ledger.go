package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Request a single asset operation of an owner
type Request struct {
	// TraceID idempotency key, replays return the recorded transaction
	TraceID string `json:"trace_id" valid:"uuid,required"`
	Owner   string `json:"owner" valid:"required"`
	AssetID string `json:"asset_id" valid:"required"`
	Amount  uint64 `json:"amount" valid:"required"`
}

// LiquidateRequest liquidation of the owner's position by the liquidator
type LiquidateRequest struct {
	TraceID           string `json:"trace_id" valid:"uuid,required"`
	Liquidator        string `json:"liquidator" valid:"required"`
	Owner             string `json:"owner" valid:"required"`
	CollateralAssetID string `json:"collateral_asset_id" valid:"required"`
	BorrowedAssetID   string `json:"borrowed_asset_id" valid:"required"`
}

// SideHealth accrued balances of one side
type SideHealth struct {
	Side      Side   `json:"-"`
	AssetID   string `json:"asset_id"`
	Deposited uint64 `json:"deposited"`
	Borrowed  uint64 `json:"borrowed"`
	// deposits of the opposite side backing Borrowed
	Collateral      uint64 `json:"collateral"`
	CollateralValue uint64 `json:"collateral_value"`
	BorrowedValue   uint64 `json:"borrowed_value"`
	// nil when nothing is borrowed
	HealthFactor *decimal.Decimal `json:"health_factor,omitempty"`
	Liquidatable bool             `json:"liquidatable"`
}

// Health position health of an owner
type Health struct {
	Owner        string      `json:"owner"`
	Primary      SideHealth  `json:"primary"`
	Secondary    *SideHealth `json:"secondary,omitempty"`
	Liquidatable bool        `json:"liquidatable"`
}

// LedgerService lending ledger operations
type LedgerService interface {
	InitBank(ctx context.Context, params *BankParams) (*Bank, error)
	InitUser(ctx context.Context, owner, primaryAssetID string) (*User, error)
	Deposit(ctx context.Context, req *Request) (*Transaction, error)
	Withdraw(ctx context.Context, req *Request) (*Transaction, error)
	Borrow(ctx context.Context, req *Request) (*Transaction, error)
	Repay(ctx context.Context, req *Request) (*Transaction, error)
	Liquidate(ctx context.Context, req *LiquidateRequest) (*Transaction, error)
	Health(ctx context.Context, owner string) (*Health, error)
	// Revert undoes a withdraw or borrow whose payout batch was rejected
	Revert(ctx context.Context, batchID string) (*Transaction, error)
}
