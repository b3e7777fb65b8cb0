package compound

import (
	"time"

	"lending/core"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
)

// Value amount * price, in value units
func Value(amount uint64, quote *core.PriceQuote) (uint64, error) {
	return number.MulDiv(amount, quote.Price, number.PriceScale)
}

// Borrowable collateral value counted as borrowing power
func Borrowable(collateral, threshold uint64) (uint64, error) {
	return number.MulDiv(collateral, threshold, number.Wad)
}

// HealthFactor collateral * threshold / borrowed, false when nothing is borrowed
func HealthFactor(collateral, threshold, borrowed uint64) (decimal.Decimal, bool) {
	if borrowed == 0 {
		return decimal.Zero, false
	}

	weighted := number.FromUint64(collateral).Mul(number.FromWad(threshold))
	return weighted.DivRound(number.FromUint64(borrowed), 18), true
}

// Liquidatable health factor <= 1, compared without rounding
func Liquidatable(collateral, threshold, borrowed uint64) bool {
	if borrowed == 0 {
		return false
	}

	return number.CmpProducts(collateral, threshold, borrowed, number.Wad) <= 0
}

// CheckQuote rejects a quote that is not usable for assetID at now
func CheckQuote(quote *core.PriceQuote, assetID string, now time.Time, maxAge time.Duration) error {
	if err := Require(quote != nil && quote.AssetID == assetID, "oracle/asset-mismatch", core.ErrOracleStale); err != nil {
		return err
	}

	if err := Require(quote.Price > 0, "oracle/zero-price", core.ErrOracleStale); err != nil {
		return err
	}

	if err := Require(!quote.ObservedAt.After(now), "oracle/future-quote", core.ErrOracleStale); err != nil {
		return err
	}

	return Require(now.Sub(quote.ObservedAt) <= maxAge, "oracle/stale", core.ErrOracleStale)
}
