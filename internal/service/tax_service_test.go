package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"officebot/internal/model"
	"officebot/internal/taxconfig"
	"officebot/internal/taxengine"
)

func newTaxService(t *testing.T) (TaxService, *fakeLogRepo) {
	t.Helper()
	repo := &fakeLogRepo{}
	return NewTaxService(newStore(t), repo, zap.NewNop()), repo
}

func TestCalculatePPh21(t *testing.T) {
	svc, logs := newTaxService(t)

	got, err := svc.CalculatePPh21(context.Background(), PPh21Request{
		Year:  2024,
		Gross: 10_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, "TK/0", got.Category)
	assert.True(t, got.HasNPWP)
	assert.EqualValues(t, 3_000_000, got.AnnualTax)
	assert.EqualValues(t, 250_000, got.MonthlyTax)
	assert.Equal(t, "Rp 250.000", got.Display.MonthlyTax)
	assert.Equal(t, "dua ratus lima puluh ribu rupiah", got.Display.MonthlyTaxWords)

	require.NotEmpty(t, got.Segments)
	assert.NotNil(t, got.Segments[0].Upper)
	var covered int64
	for _, seg := range got.Segments {
		covered += seg.Taxable
	}
	assert.Equal(t, got.TaxableBase, covered)

	require.Len(t, logs.entries, 1)
	assert.Equal(t, model.KindPPh21, logs.entries[0].Kind)
	require.NotNil(t, logs.entries[0].TaxYear)
	assert.Equal(t, 2024, *logs.entries[0].TaxYear)
	assert.Contains(t, logs.entries[0].Request, `"gross":10000000`)
}

func TestCalculatePPh21Errors(t *testing.T) {
	svc, logs := newTaxService(t)
	ctx := context.Background()

	_, err := svc.CalculatePPh21(ctx, PPh21Request{Year: 1990, Gross: 1})
	assert.ErrorIs(t, err, taxconfig.ErrUnknownTaxYear)

	_, err = svc.CalculatePPh21(ctx, PPh21Request{Year: 2024, Gross: -1})
	assert.ErrorIs(t, err, taxengine.ErrNegativeAmount)

	_, err = svc.CalculatePPh21(ctx, PPh21Request{Year: 2024, Gross: 1, ProfileRequest: ProfileRequest{PTKPCategory: "Z"}})
	assert.ErrorIs(t, err, taxconfig.ErrInvalidProfile)

	assert.Empty(t, logs.entries)
}

func TestCalculatePPh23(t *testing.T) {
	svc, _ := newTaxService(t)

	got, err := svc.CalculatePPh23(context.Background(), PPh23Request{Amount: 10_000_000, Category: "jasa"})
	require.NoError(t, err)
	assert.Equal(t, "services", got.Category)
	assert.EqualValues(t, 200_000, got.Tax)
	assert.EqualValues(t, 9_800_000, got.Net)
	assert.Equal(t, "2,00%", got.Display.Rate)

	_, err = svc.CalculatePPh23(context.Background(), PPh23Request{Amount: 1, Category: "lottery"})
	assert.ErrorIs(t, err, taxengine.ErrUnknownServiceCategory)
}

func TestCalculatePPN(t *testing.T) {
	svc, logs := newTaxService(t)
	ctx := context.Background()

	got, err := svc.CalculatePPN(ctx, PPNRequest{Year: 2024, Amount: 1_000_000})
	require.NoError(t, err)
	assert.EqualValues(t, 110_000, got.VAT)
	assert.EqualValues(t, 1_110_000, got.Total)

	inc, err := svc.CalculatePPN(ctx, PPNRequest{Year: 2024, Amount: 1_110_000, Inclusive: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1_000_000, inc.Base)
	assert.EqualValues(t, 110_000, inc.VAT)

	require.Len(t, logs.entries, 2)
	assert.Equal(t, model.KindPPN, logs.entries[0].Kind)
	assert.Equal(t, model.KindPPNInclusive, logs.entries[1].Kind)
}

func TestCalculatePPnBM(t *testing.T) {
	svc, _ := newTaxService(t)

	got, err := svc.CalculatePPnBM(context.Background(), PPnBMRequest{
		Year:       2024,
		Base:       100_000_000,
		LuxuryRate: decimal.RequireFromString("0.2"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 11_000_000, got.PPN)
	assert.EqualValues(t, 20_000_000, got.PPnBM)
	assert.EqualValues(t, 131_000_000, got.Total)
}

func TestCalculateCorporate(t *testing.T) {
	svc, _ := newTaxService(t)

	got, err := svc.CalculateCorporate(context.Background(), CorporateRequest{Year: 2024, Profit: 1_000_000_000})
	require.NoError(t, err)
	assert.False(t, got.MSMEFinal)
	assert.EqualValues(t, 220_000_000, got.Tax)
}

func TestGetPTKP(t *testing.T) {
	svc, _ := newTaxService(t)

	got, err := svc.GetPTKP(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2025, got.Year)
	assert.EqualValues(t, 54_000_000, got.Categories["TK/0"])
	assert.Equal(t, "Rp 54.000.000", got.Display["TK/0"])

	_, err = svc.GetPTKP(context.Background(), 1990)
	assert.ErrorIs(t, err, taxconfig.ErrUnknownTaxYear)
}
