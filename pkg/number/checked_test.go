package number

import (
	"errors"
	"math"
	"testing"

	"lending/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedDiv(t *testing.T) {
	v, err := CheckedDiv(10, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), v)

	_, err = CheckedDiv(10, 0)
	assert.True(t, errors.Is(err, core.ErrMath))
}

func TestCheckedMul(t *testing.T) {
	v, err := CheckedMul(1<<32, 1<<31)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), v)

	_, err = CheckedMul(1<<32, 1<<32)
	assert.True(t, errors.Is(err, core.ErrMath))
}

func TestCheckedAddSub(t *testing.T) {
	_, err := CheckedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = CheckedSub(1, 2)
	assert.ErrorIs(t, err, ErrUnderflow)

	v, err := CheckedSub(5, 5)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestMulDiv(t *testing.T) {
	for _, tc := range []struct {
		name    string
		a, b, d uint64
		down    uint64
		up      uint64
	}{
		{"exact", 1000, 5, 10, 500, 500},
		{"truncate", 10, 1, 3, 3, 4},
		{"wide intermediate", math.MaxUint64, Wad, Wad, math.MaxUint64, math.MaxUint64},
		{"zero", 0, 7, 3, 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			down, err := MulDiv(tc.a, tc.b, tc.d)
			require.NoError(t, err)
			assert.Equal(t, tc.down, down)

			up, err := MulDivUp(tc.a, tc.b, tc.d)
			require.NoError(t, err)
			assert.Equal(t, tc.up, up)
		})
	}

	_, err := MulDiv(1, 1, 0)
	assert.ErrorIs(t, err, ErrDivideByZero)

	_, err = MulDiv(math.MaxUint64, 2, 1)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestFraction(t *testing.T) {
	// 500 * 1 * 1.1 / 1 with equal prices
	v, err := Fraction([]uint64{500, PriceScale, Wad + Wad/10}, []uint64{Wad, PriceScale}, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(550), v)

	_, err = Fraction([]uint64{math.MaxUint64, math.MaxUint64, math.MaxUint64, math.MaxUint64, 2}, nil, false)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCmpProducts(t *testing.T) {
	assert.Equal(t, 0, CmpProducts(100, Wad/2, 50, Wad))
	assert.Equal(t, -1, CmpProducts(100, Wad/2, 51, Wad))
	assert.Equal(t, 1, CmpProducts(math.MaxUint64, math.MaxUint64, math.MaxUint64, math.MaxUint64-1))
}
