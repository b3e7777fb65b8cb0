package compound

import (
	"errors"
	"testing"

	"lending/core"
	"lending/pkg/number"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccrue(t *testing.T) {
	t.Run("e", func(t *testing.T) {
		v, err := Accrue(1_000_000_000, number.Wad/1000, 100, 1100)
		require.NoError(t, err)
		assert.Equal(t, uint64(2_718_281_828), v)
	})

	t.Run("zero rate", func(t *testing.T) {
		v, err := Accrue(1000, 0, 0, 86400)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), v)
	})

	t.Run("same time is idempotent", func(t *testing.T) {
		v, err := Accrue(1000, number.Wad, 50, 50)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000), v)
	})

	t.Run("monotone", func(t *testing.T) {
		prev := uint64(1_000_000)
		for dt := int64(0); dt <= 3600; dt += 600 {
			v, err := Accrue(1_000_000, 1_000_000_000, 0, dt)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, prev)
			prev = v
		}
	})

	t.Run("time reversed", func(t *testing.T) {
		_, err := Accrue(1000, number.Wad, 100, 99)
		assert.True(t, errors.Is(err, core.ErrMath))
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := Accrue(1<<62, number.Wad, 0, 10)
		assert.True(t, errors.Is(err, core.ErrMath))

		_, err = Accrue(1, number.Wad, 0, 1000)
		assert.True(t, errors.Is(err, core.ErrMath))
	})
}

func TestAccrueComposes(t *testing.T) {
	const (
		principal = uint64(1_000_000_000_000)
		rate      = uint64(1_000_000_000)
	)

	once, err := Accrue(principal, rate, 0, 6000)
	require.NoError(t, err)

	first, err := Accrue(principal, rate, 0, 1000)
	require.NoError(t, err)
	twice, err := Accrue(first, rate, 1000, 6000)
	require.NoError(t, err)

	assert.InDelta(t, once, twice, 2)
	assert.LessOrEqual(t, twice, once)
}

func TestAccrueBank(t *testing.T) {
	bank := &core.Bank{
		TotalDeposited:       2000,
		TotalDepositedShares: 2000,
		TotalBorrowed:        1000,
		TotalBorrowedShares:  1000,
		InterestRate:         number.Wad / 1000,
		LastUpdated:          10,
	}

	require.NoError(t, AccrueBank(bank, 1010))
	assert.Equal(t, uint64(2718), bank.TotalBorrowed)
	assert.Equal(t, uint64(3718), bank.TotalDeposited)
	assert.Equal(t, uint64(1000), bank.Cash())
	assert.Equal(t, int64(1010), bank.LastUpdated)

	// repeated accrual at the same time changes nothing
	require.NoError(t, AccrueBank(bank, 1010))
	assert.Equal(t, uint64(2718), bank.TotalBorrowed)

	assert.Error(t, AccrueBank(bank, 1000))
}
