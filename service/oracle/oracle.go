package oracle

import (
	"context"
	"fmt"
	"time"

	"lending/core"
	"lending/pkg/number"
	"lending/pkg/resthttp"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Config oracle feed settings
type Config struct {
	Endpoint string `json:"endpoint" valid:"url,required"`
	// CacheSize quotes kept in memory, 0 disables the cache
	CacheSize int `json:"cache_size"`
	// CacheTTL how long a fetched quote may be served again
	CacheTTL time.Duration `json:"cache_ttl"`
}

type ticker struct {
	AssetID   string          `json:"asset_id"`
	Price     decimal.Decimal `json:"price"`
	Timestamp int64           `json:"timestamp"`
}

type priceOracle struct {
	cfg    Config
	sf     *singleflight.Group
	quotes gcache.Cache
}

// New http price feed
func New(cfg Config) core.Oracle {
	o := &priceOracle{
		cfg: cfg,
		sf:  &singleflight.Group{},
	}

	if cfg.CacheSize > 0 {
		o.quotes = gcache.New(cfg.CacheSize).LRU().Expiration(cfg.CacheTTL).Build()
	}

	return o
}

func (o *priceOracle) Quote(ctx context.Context, assetID string, maxAge time.Duration) (*core.PriceQuote, error) {
	if quote, ok := o.cached(assetID); ok && fresh(quote, maxAge) {
		return quote, nil
	}

	v, err, _ := o.sf.Do(assetID, func() (interface{}, error) {
		return o.pull(ctx, assetID)
	})
	if err != nil {
		return nil, err
	}

	quote := v.(*core.PriceQuote)
	// a quote dated ahead of the local clock is returned but never cached
	if o.quotes != nil && !quote.ObservedAt.After(time.Now()) {
		_ = o.quotes.Set(assetID, quote)
	}

	return quote, nil
}

func fresh(quote *core.PriceQuote, maxAge time.Duration) bool {
	age := time.Since(quote.ObservedAt)
	return age >= 0 && age <= maxAge
}

func (o *priceOracle) cached(assetID string) (*core.PriceQuote, bool) {
	if o.quotes == nil {
		return nil, false
	}

	v, err := o.quotes.Get(assetID)
	if err != nil {
		return nil, false
	}

	quote, ok := v.(*core.PriceQuote)
	return quote, ok
}

func (o *priceOracle) pull(ctx context.Context, assetID string) (*core.PriceQuote, error) {
	log := logger.FromContext(ctx).WithField("asset_id", assetID)

	url := fmt.Sprintf("%s/prices/%s", o.cfg.Endpoint, assetID)
	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		log.WithError(err).Errorln("pull price")
		return nil, err
	}

	var t ticker
	if err := resthttp.ParseResponse(resp, &t); err != nil {
		log.WithError(err).Errorln("parse price")
		return nil, err
	}

	price, err := number.ToUint64(t.Price.Shift(8))
	if err != nil {
		return nil, err
	}

	return &core.PriceQuote{
		AssetID:    t.AssetID,
		Price:      price,
		ObservedAt: time.Unix(t.Timestamp, 0),
	}, nil
}
