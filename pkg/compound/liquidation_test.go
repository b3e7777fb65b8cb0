package compound

import (
	"errors"
	"testing"

	"lending/core"
	"lending/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiquidationPayout(t *testing.T) {
	in := LiquidationInput{
		Owed:            1000,
		CloseFactor:     number.Wad / 2,
		Bonus:           number.Wad / 10,
		BorrowedPrice:   number.PriceScale,
		CollateralPrice: number.PriceScale,
		Collateral:      10_000,
	}

	t.Run("equal prices", func(t *testing.T) {
		payout, err := LiquidationPayout(in)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), payout.RepayAmount)
		assert.Equal(t, uint64(550), payout.CollateralAmount)
	})

	t.Run("collateral priced higher", func(t *testing.T) {
		in := in
		in.CollateralPrice = 2 * number.PriceScale
		payout, err := LiquidationPayout(in)
		require.NoError(t, err)
		assert.Equal(t, uint64(500), payout.RepayAmount)
		assert.Equal(t, uint64(275), payout.CollateralAmount)
	})

	t.Run("capped by collateral", func(t *testing.T) {
		in := in
		in.Collateral = 110
		payout, err := LiquidationPayout(in)
		require.NoError(t, err)
		assert.Equal(t, uint64(110), payout.CollateralAmount)
		assert.Equal(t, uint64(100), payout.RepayAmount)
	})

	t.Run("nothing owed", func(t *testing.T) {
		in := in
		in.Owed = 1
		_, err := LiquidationPayout(in)
		assert.True(t, errors.Is(err, core.ErrInvalidLiquidation))
	})

	t.Run("checked multiplication", func(t *testing.T) {
		in := in
		in.Owed = 1 << 63
		in.CloseFactor = number.Wad
		in.Collateral = 1 << 63
		in.CollateralPrice = 1
		_, err := LiquidationPayout(in)
		assert.True(t, errors.Is(err, core.ErrMath))
	})
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(true, "ok", core.ErrMath))

	err := Require(false, "repay/overpayment", core.ErrOverpayment)
	assert.True(t, errors.Is(err, core.ErrOverpayment))
	assert.Equal(t, core.ErrOverpayment, CodeOf(err))
	assert.Equal(t, "Overpayment: repay/overpayment", err.Error())
	assert.Equal(t, core.ErrUnknown, CodeOf(errors.New("boom")))
	assert.Equal(t, core.ErrMath, CodeOf(number.ErrOverflow))
}
