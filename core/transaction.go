package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
)

const (
	// TransactionKeyCollateralAssetID collateral asset id
	TransactionKeyCollateralAssetID = "collateral_asset_id"
	// TransactionKeyCollateralAmount seized collateral
	TransactionKeyCollateralAmount = "collateral_amount"
	// TransactionKeyCollateralShares burned collateral shares
	TransactionKeyCollateralShares = "collateral_shares"
	// TransactionKeyLiquidator liquidator
	TransactionKeyLiquidator = "liquidator"
	// TransactionKeyHealthFactor health factor before the operation
	TransactionKeyHealthFactor = "health_factor"
	// TransactionKeySide side of the position
	TransactionKeySide = "side"
	// TransactionKeyCollateralValue collateral value
	TransactionKeyCollateralValue = "collateral_value"
	// TransactionKeyBorrowedValue borrowed value
	TransactionKeyBorrowedValue = "borrowed_value"
	// TransactionKeyRevertedTraceID trace id of the reverted operation
	TransactionKeyRevertedTraceID = "reverted_trace_id"
	// TransactionKeyRevertedAction action of the reverted operation
	TransactionKeyRevertedAction = "reverted_action"
)

// ExtraDataFormatter extra data formatter
type ExtraDataFormatter interface {
	Format() []byte
}

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	d := make(TransactionExtraData)
	return d
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// Transaction committed ledger operation
type Transaction struct {
	ID        uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Action    ActionType     `json:"action,omitempty"`
	TraceID   string         `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	Owner     string         `sql:"size:64;index:idx_transactions_owner" json:"owner,omitempty"`
	AssetID   string         `sql:"size:36" json:"asset_id,omitempty"`
	Amount    uint64         `json:"amount"`
	Shares    uint64         `json:"shares"`
	Data      types.JSONText `sql:"type:TEXT" json:"data,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra ExtraDataFormatter) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// UnmarshalExtraData unmarshal extra data
func (t *Transaction) UnmarshalExtraData(v interface{}) error {
	if len(t.Data) == 0 {
		return nil
	}

	return json.Unmarshal(t.Data, v)
}

// TransactionStore transaction store interface
type TransactionStore interface {
	Create(ctx context.Context, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	ListByOwner(ctx context.Context, owner string, offset time.Time, limit int) ([]*Transaction, error)
}
