package taxengine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"officebot/internal/taxconfig"
	"officebot/pkg/money"
)

func TestComputePPNUsesYearRate(t *testing.T) {
	e := newEngine(t)

	got, err := e.ComputePPN(1_000_000, 2024)
	require.NoError(t, err)
	assert.EqualValues(t, 110_000, got.VAT)
	assert.EqualValues(t, 1_110_000, got.Total)

	got, err = e.ComputePPN(1_000_000, 2025)
	require.NoError(t, err)
	assert.EqualValues(t, 120_000, got.VAT)

	_, err = e.ComputePPN(1_000_000, 2031)
	assert.ErrorIs(t, err, taxconfig.ErrUnknownTaxYear)

	_, err = e.ComputePPN(-5, 2024)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = e.ComputePPN(money.MaxAmount+1, 2024)
	assert.ErrorIs(t, err, money.ErrAmountTooLarge)
}

func TestComputePPNInclusive(t *testing.T) {
	e := newEngine(t)

	got, err := e.ComputePPNInclusive(1_110_000, 2024)
	require.NoError(t, err)
	assert.EqualValues(t, 1_000_000, got.Base)
	assert.EqualValues(t, 110_000, got.VAT)

	for _, amount := range []int64{1, 99, 12_345, 987_654_321} {
		excl, err := e.ComputePPN(amount, 2024)
		require.NoError(t, err)
		incl, err := e.ComputePPNInclusive(excl.Total, 2024)
		require.NoError(t, err)
		assert.Equal(t, amount, incl.Base, "amount %d", amount)
		assert.Equal(t, excl.VAT, incl.VAT, "amount %d", amount)
	}
}

func TestComputePPnBM(t *testing.T) {
	e := newEngine(t)

	got, err := e.ComputePPnBM(100_000_000, decimal.RequireFromString("0.20"), 2024)
	require.NoError(t, err)
	assert.EqualValues(t, 11_000_000, got.PPN)
	assert.EqualValues(t, 20_000_000, got.PPnBM)
	assert.EqualValues(t, 131_000_000, got.Total)

	_, err = e.ComputePPnBM(100, decimal.RequireFromString("2.5"), 2024)
	assert.ErrorIs(t, err, ErrInvalidRate)
}
