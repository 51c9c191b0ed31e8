package taxengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCorporateTax(t *testing.T) {
	e := newEngine(t)

	cases := []struct {
		name        string
		profit      int64
		turnover    int64
		msme        bool
		tax         int64
		installment int64
	}{
		{"general rate", 1_000_000_000, 0, false, 220_000_000, 18_333_333},
		{"msme at limit", 300_000_000, 4_800_000_000, true, 24_000_000, 0},
		{"above msme limit", 300_000_000, 4_800_000_001, false, 66_000_000, 5_500_000},
		{"loss", -50_000_000, 10_000_000_000, false, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := e.ComputeCorporateTax(tc.profit, tc.turnover, 2024)
			require.NoError(t, err)
			assert.Equal(t, tc.msme, got.MSMEFinal)
			assert.Equal(t, tc.tax, got.Tax)
			assert.Equal(t, tc.installment, got.MonthlyInstallment)
		})
	}

	_, err := e.ComputeCorporateTax(1, -1, 2024)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}
