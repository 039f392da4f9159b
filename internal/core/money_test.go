package core

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"11,10", 1110, true},
		{"45,69", 4569, true},
		{"3,00", 300, true},
		{"148,37", 14837, true},
		{"0,00", 0, true},
		{"7", 700, true},
		{" 2,50 ", 250, true},
		{"1.234,56", 123456, true},
		{"12.345.678,90", 1234567890, true},
		{"45.69", 4569, true},
		{"2.5", 250, true},
		{"11.10", 1110, true},
		{"1,5", 150, true},
		{"1.234,5", 123450, true},
		{"1,005", 0, false},
		{"11,105", 0, false},
		{"2.500", 0, false},
		{"1.234", 0, false},
		{"1.234,567", 0, false},
		{"45.699", 0, false},
		{"-1,00", 0, false},
		{"abc", 0, false},
		{"1,2,3", 0, false},
		{"1.23.4", 0, false},
		{"12,34 EUR", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseAmount(tc.in)
			if !tc.ok {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.out, got.Cents)
		})
	}
}

func TestParseAmountMatchesDotDecimal(t *testing.T) {
	for _, in := range []string{"0,01", "11,10", "45,69", "999,99", "100000,5", "3,1"} {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)

		want, err := decimal.NewFromString(strings.Replace(in, ",", ".", 1))
		require.NoError(t, err)
		assert.True(t, want.Equal(got.Decimal()), "%s: want %s got %s", in, want, got)
	}
}

func TestMoneyFormatting(t *testing.T) {
	m := Money{Cents: 1110}
	assert.Equal(t, "11.10", m.String())
	assert.Equal(t, "11,10", m.Locale())
	assert.InDelta(t, 11.1, m.Euros(), 1e-9)
	assert.Equal(t, "0.00", Money{}.String())
	assert.Equal(t, Money{Cents: 1410}, m.Add(Money{Cents: 300}))
}

func TestMoneyStringRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 10, 300, 1110, 4569, 14837, 123456789} {
		m := Money{Cents: cents}
		back, err := ParseAmount(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, back)

		back, err = ParseAmount(m.Locale())
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}
