package core

import (
	"context"
	"time"
)

// Authority who signs a transfer
type Authority int

const (
	// AuthoritySigner the caller's own signature
	AuthoritySigner Authority = iota + 1
	// AuthorityPool the pool's delegated authority over its treasury
	AuthorityPool
)

func (a Authority) String() string {
	switch a {
	case AuthoritySigner:
		return "signer"
	case AuthorityPool:
		return "pool"
	default:
		return "unknown"
	}
}

// Transfer asset movement between addressed balances
type Transfer struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	TraceID   string    `sql:"size:36;unique_index:idx_transfers_trace_id" json:"trace_id,omitempty"`
	// BatchID trace id of the operation, transfers sharing it are delivered together
	BatchID   string    `sql:"size:36;index:idx_transfers_batch_id" json:"batch_id,omitempty"`
	AssetID   string    `sql:"size:36" json:"asset_id,omitempty"`
	Decimals  uint8     `json:"decimals"`
	Amount    uint64    `json:"amount,omitempty"`
	From      string    `sql:"size:64" json:"from,omitempty"`
	To        string    `sql:"size:64" json:"to,omitempty"`
	Authority Authority `json:"authority,omitempty"`
	Memo      string    `sql:"size:140" json:"memo,omitempty"`
}

// TransferService external token transfer service
type TransferService interface {
	// Transfer executes the transfers as one atomic batch
	Transfer(ctx context.Context, transfers ...*Transfer) error
}

// TransferStore pending transfers not yet delivered
type TransferStore interface {
	Create(ctx context.Context, transfers ...*Transfer) error
	Delete(ctx context.Context, ids ...uint64) error
	Top(ctx context.Context, limit int) ([]*Transfer, error)
	// ListBatch pending transfers of one batch
	ListBatch(ctx context.Context, batchID string) ([]*Transfer, error)
}
