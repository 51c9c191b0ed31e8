package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatios(t *testing.T) {
	cases := []struct {
		name string
		fn   func() (decimal.Decimal, error)
		want string
	}{
		{"current", func() (decimal.Decimal, error) { return CurrentRatio(d("200"), d("100")) }, "2"},
		{"quick", func() (decimal.Decimal, error) { return QuickRatio(d("200"), d("50"), d("100")) }, "1.5"},
		{"cash", func() (decimal.Decimal, error) { return CashRatio(d("25"), d("100")) }, "0.25"},
		{"debt to equity", func() (decimal.Decimal, error) { return DebtToEquity(d("300"), d("600")) }, "0.5"},
		{"debt ratio", func() (decimal.Decimal, error) { return DebtRatio(d("300"), d("900")) }, "0.3333333333333333"},
		{"net profit margin", func() (decimal.Decimal, error) { return NetProfitMargin(d("15"), d("100")) }, "0.15"},
		{"roa", func() (decimal.Decimal, error) { return ReturnOnAssets(d("10"), d("200")) }, "0.05"},
		{"roe", func() (decimal.Decimal, error) { return ReturnOnEquity(d("10"), d("40")) }, "0.25"},
		{"gross margin", func() (decimal.Decimal, error) { return GrossMargin(d("100"), d("60")) }, "0.4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.fn()
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tc.want)), "got %s", got)
		})
	}
}

func TestRatiosDivisionByZero(t *testing.T) {
	_, err := CurrentRatio(d("1"), decimal.Zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = GrossMargin(decimal.Zero, d("1"))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Liquidity(LiquidityInput{CurrentAssets: d("1")})
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = Solvency(SolvencyInput{TotalDebt: d("1"), TotalAssets: d("2")})
	assert.ErrorIs(t, err, ErrDivisionByZero)
	_, err = Profitability(ProfitabilityInput{NetIncome: d("1"), Revenue: d("2"), TotalAssets: d("3")})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestGroupedRatios(t *testing.T) {
	liq, err := Liquidity(LiquidityInput{CurrentAssets: d("500"), CurrentLiabilities: d("250"), Inventory: d("100"), Cash: d("50")})
	require.NoError(t, err)
	assert.True(t, liq.Current.Equal(d("2")))
	assert.True(t, liq.Quick.Equal(d("1.6")))
	assert.True(t, liq.Cash.Equal(d("0.2")))

	sol, err := Solvency(SolvencyInput{TotalDebt: d("400"), TotalEquity: d("600"), TotalAssets: d("1000")})
	require.NoError(t, err)
	assert.True(t, sol.DebtRatio.Equal(d("0.4")))

	prof, err := Profitability(ProfitabilityInput{NetIncome: d("50"), Revenue: d("500"), TotalAssets: d("1000"), TotalEquity: d("250")})
	require.NoError(t, err)
	assert.True(t, prof.NetProfitMargin.Equal(d("0.1")))
	assert.True(t, prof.ReturnOnAssets.Equal(d("0.05")))
	assert.True(t, prof.ReturnOnEquity.Equal(d("0.2")))
}
