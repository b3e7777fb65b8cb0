package core

import (
	"context"
	"time"
)

// PriceQuote oracle price of one base unit of the asset, scaled by number.PriceScale
type PriceQuote struct {
	AssetID    string    `json:"asset_id"`
	Price      uint64    `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// Oracle external price feed
type Oracle interface {
	// Quote returns the latest quote of the asset no older than maxAge
	Quote(ctx context.Context, assetID string, maxAge time.Duration) (*PriceQuote, error)
}
