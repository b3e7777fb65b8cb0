package compound

import (
	"errors"
	"testing"
	"time"

	"lending/core"
	"lending/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	v, err := Value(250, &core.PriceQuote{Price: 2 * number.PriceScale})
	require.NoError(t, err)
	assert.Equal(t, uint64(500), v)

	v, err = Value(3, &core.PriceQuote{Price: number.PriceScale / 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestBorrowable(t *testing.T) {
	borrowable, err := Borrowable(1000, number.Wad/10*8)
	require.NoError(t, err)
	assert.Equal(t, uint64(800), borrowable)

	assert.LessOrEqual(t, uint64(800), borrowable)
	assert.Greater(t, uint64(801), borrowable)
}

func TestHealthFactor(t *testing.T) {
	half := number.Wad / 2

	hf, ok := HealthFactor(100, half, 60)
	require.True(t, ok)
	assert.Equal(t, "0.833333333333333333", hf.String())
	assert.True(t, Liquidatable(100, half, 60))

	hf, ok = HealthFactor(100, half, 51)
	require.True(t, ok)
	assert.True(t, hf.LessThan(number.Decimal("1")))
	assert.True(t, Liquidatable(100, half, 51))

	assert.True(t, Liquidatable(100, half, 50))
	assert.False(t, Liquidatable(100, half, 49))
	assert.False(t, Liquidatable(100, half, 0))

	_, ok = HealthFactor(100, half, 0)
	assert.False(t, ok)
}

func TestCheckQuote(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	quote := &core.PriceQuote{AssetID: "btc", Price: number.PriceScale, ObservedAt: now.Add(-30 * time.Second)}

	assert.NoError(t, CheckQuote(quote, "btc", now, time.Minute))
	assert.True(t, errors.Is(CheckQuote(quote, "btc", now, 10*time.Second), core.ErrOracleStale))
	assert.True(t, errors.Is(CheckQuote(quote, "eth", now, time.Minute), core.ErrOracleStale))
	assert.True(t, errors.Is(CheckQuote(nil, "btc", now, time.Minute), core.ErrOracleStale))

	future := &core.PriceQuote{AssetID: "btc", Price: number.PriceScale, ObservedAt: now.Add(time.Hour)}
	assert.True(t, errors.Is(CheckQuote(future, "btc", now, time.Minute), core.ErrOracleStale))

	quote.Price = 0
	assert.True(t, errors.Is(CheckQuote(quote, "btc", now, time.Minute), core.ErrOracleStale))
}
