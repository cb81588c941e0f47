package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyafikhAL010907/portalmahasiswaptik-906a75db-sub000/pkg/money"
)

func TestFromRupiah(t *testing.T) {
	m := money.FromRupiah(5000)
	assert.Equal(t, money.IDR, m.Currency())
	assert.Equal(t, int64(5000), m.Rupiah())
	assert.True(t, m.IsPositive())
	assert.Equal(t, "5000 IDR", m.String())
}

func TestZero(t *testing.T) {
	z := money.Zero(money.IDR)
	assert.True(t, z.IsZero())
	assert.False(t, z.IsPositive())
	assert.Equal(t, int64(0), z.Rupiah())
}

func TestAdd(t *testing.T) {
	a := money.FromRupiah(5000)
	b := money.FromRupiah(10000)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), sum.Rupiah())

	// Original values are untouched.
	assert.Equal(t, int64(5000), a.Rupiah())
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	a := money.FromRupiah(5000)
	b := money.New(decimal.NewFromInt(1), "USD")

	_, err := a.Add(b)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "currency mismatch")
}

func TestMulInt(t *testing.T) {
	weekly := money.FromRupiah(5000)

	tests := []struct {
		name   string
		weeks  int64
		expect int64
	}{
		{name: "one week", weeks: 1, expect: 5000},
		{name: "full month", weeks: 4, expect: 20000},
		{name: "zero weeks", weeks: 0, expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, weekly.MulInt(tt.weeks).Rupiah())
		})
	}
}

func TestGreaterThanOrEqual(t *testing.T) {
	full := money.FromRupiah(20000)
	partial := money.FromRupiah(10000)

	assert.True(t, full.GreaterThanOrEqual(partial))
	assert.True(t, full.GreaterThanOrEqual(full))
	assert.False(t, partial.GreaterThanOrEqual(full))

	// Mismatched currencies never compare true.
	usd := money.New(decimal.NewFromInt(100000), "USD")
	assert.False(t, usd.GreaterThanOrEqual(partial))
}

func TestEqual(t *testing.T) {
	assert.True(t, money.FromRupiah(5000).Equal(money.FromRupiah(5000)))
	assert.False(t, money.FromRupiah(5000).Equal(money.FromRupiah(10000)))
	assert.False(t, money.FromRupiah(5000).Equal(money.New(decimal.NewFromInt(5000), "USD")))
}
