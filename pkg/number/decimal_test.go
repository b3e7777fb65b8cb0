package number

import (
	"math"
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestToUint64(t *testing.T) {
	v, err := ToUint64(Decimal("12.99"))
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(12), v)

	v, err = ToUint64(FromUint64(math.MaxUint64))
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, err = ToUint64(FromUint64(math.MaxUint64).Add(Decimal("1")))
	assert.Equal(t, ErrOverflow, err)

	_, err = ToUint64(Decimal("-1"))
	assert.Equal(t, ErrUnderflow, err)
}

func TestWad(t *testing.T) {
	assert.Equal(t, "0.5", FromWad(Wad/2).String())

	v, err := ToWad(Decimal("0.75"))
	assert.Equal(t, nil, err)
	assert.Equal(t, Wad/4*3, v)
}

func TestCheckedDivDecimal(t *testing.T) {
	_, err := CheckedDivDecimal(Decimal("1"), Decimal("0"))
	assert.Equal(t, ErrDivideByZero, err)

	v, err := CheckedDivDecimal(Decimal("1"), Decimal("4"))
	assert.Equal(t, nil, err)
	assert.Equal(t, "0.25", v.String())
}
