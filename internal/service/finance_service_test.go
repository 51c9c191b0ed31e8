package service

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"officebot/internal/finance"
	"officebot/internal/model"
	"officebot/internal/taxconfig"
	"officebot/pkg/money"
)

func newFinanceService(t *testing.T) FinanceService {
	t.Helper()
	return NewFinanceService(newStore(t), &fakeLogRepo{}, zap.NewNop())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBreakEvenService(t *testing.T) {
	svc := newFinanceService(t)

	got, err := svc.BreakEven(context.Background(), BreakEvenRequest{
		FixedCosts:   dec("50000000"),
		PricePerUnit: dec("100000"),
		VariableCost: dec("60000"),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1250, got.UnitsRoundedUp)
	assert.Equal(t, "40,00%", got.Display.Rate)

	_, err = svc.BreakEven(context.Background(), BreakEvenRequest{
		FixedCosts:   dec("1"),
		PricePerUnit: dec("10"),
		VariableCost: dec("10"),
	})
	assert.ErrorIs(t, err, finance.ErrInvalidMargin)
}

func TestROIService(t *testing.T) {
	svc := newFinanceService(t)

	rev := dec("20000000")
	got, err := svc.ROI(context.Background(), ROIRequest{Gain: dec("15000000"), Cost: dec("10000000"), Revenue: &rev})
	require.NoError(t, err)
	assert.True(t, got.ROI.Equal(dec("0.5")))
	assert.Equal(t, "50,00%", got.Display)
	require.NotNil(t, got.ProfitMargin)
	assert.True(t, got.ProfitMargin.Margin.Equal(dec("0.5")))

	_, err = svc.ROI(context.Background(), ROIRequest{Gain: dec("1"), Cost: decimal.Zero})
	assert.ErrorIs(t, err, finance.ErrDivisionByZero)
}

func TestDepreciationService(t *testing.T) {
	svc := newFinanceService(t)
	ctx := context.Background()

	sl, err := svc.Depreciation(ctx, DepreciationRequest{Cost: 100_000_000, Salvage: 10_000_000, UsefulLife: 5})
	require.NoError(t, err)
	assert.Equal(t, string(finance.MethodStraightLine), sl.Method)
	require.Len(t, sl.Entries, 5)
	assert.EqualValues(t, 18_000_000, sl.Entries[0].Depreciation)
	assert.EqualValues(t, 10_000_000, sl.Entries[4].BookValue)

	db, err := svc.Depreciation(ctx, DepreciationRequest{
		Method:     string(finance.MethodDecliningBalance),
		Cost:       100_000_000,
		UsefulLife: 5,
	})
	require.NoError(t, err)
	assert.True(t, db.Rate.Equal(dec("0.4")))
	assert.EqualValues(t, 40_000_000, db.Entries[0].Depreciation)
	assert.EqualValues(t, 24_000_000, db.Entries[1].Depreciation)

	_, err = svc.Depreciation(ctx, DepreciationRequest{Method: "sum_of_years", Cost: 1, UsefulLife: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Depreciation(ctx, DepreciationRequest{Cost: 1, UsefulLife: 0})
	assert.ErrorIs(t, err, finance.ErrInvalidUsefulLife)

	_, err = svc.Depreciation(ctx, DepreciationRequest{Cost: 1_000, UsefulLife: math.MaxInt})
	assert.ErrorIs(t, err, finance.ErrInvalidUsefulLife)

	_, err = svc.Depreciation(ctx, DepreciationRequest{Method: string(finance.MethodDecliningBalance), Cost: 1_000, UsefulLife: 2_000_000_000})
	assert.ErrorIs(t, err, finance.ErrInvalidUsefulLife)
}

func TestRatiosService(t *testing.T) {
	svc := newFinanceService(t)
	ctx := context.Background()

	got, err := svc.Ratios(ctx, RatiosRequest{
		Liquidity: &LiquidityRequest{
			CurrentAssets:      dec("200"),
			CurrentLiabilities: dec("100"),
			Inventory:          dec("50"),
			Cash:               dec("25"),
		},
	})
	require.NoError(t, err)
	assert.True(t, got.Liquidity["current"].Equal(dec("2")))
	assert.True(t, got.Liquidity["quick"].Equal(dec("1.5")))
	assert.True(t, got.Liquidity["cash"].Equal(dec("0.25")))
	assert.Nil(t, got.Solvency)

	_, err = svc.Ratios(ctx, RatiosRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Ratios(ctx, RatiosRequest{Solvency: &SolvencyRequest{TotalDebt: dec("1")}})
	assert.ErrorIs(t, err, finance.ErrDivisionByZero)
}

func TestIncomeStatementService(t *testing.T) {
	svc := newFinanceService(t)
	ctx := context.Background()

	got, err := svc.IncomeStatement(ctx, IncomeStatementRequest{
		Year:              2024,
		Revenue:           1_000_000_000,
		COGS:              600_000_000,
		OperatingExpenses: map[string]Amount{"sewa": 100_000_000, "gaji": 200_000_000},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 100_000_000, got.IncomeBeforeTax)
	assert.True(t, got.TaxRate.Equal(dec("0.22")))
	assert.EqualValues(t, 22_000_000, got.Tax)
	assert.EqualValues(t, 78_000_000, got.NetIncome)
	require.Len(t, got.OperatingExpenses, 2)
	assert.Equal(t, "gaji", got.OperatingExpenses[0].Name)

	zero := decimal.Zero
	got, err = svc.IncomeStatement(ctx, IncomeStatementRequest{Revenue: 10, TaxRate: &zero})
	require.NoError(t, err)
	assert.EqualValues(t, 10, got.NetIncome)

	_, err = svc.IncomeStatement(ctx, IncomeStatementRequest{Year: 1990, Revenue: 10})
	assert.ErrorIs(t, err, taxconfig.ErrUnknownTaxYear)
}

func TestBalanceSheetService(t *testing.T) {
	repo := &fakeLogRepo{}
	svc := NewFinanceService(newStore(t), repo, zap.NewNop())
	ctx := context.Background()

	got, err := svc.BalanceSheet(ctx, BalanceSheetRequest{
		CompanyName:           "PT Maju Jaya",
		AsOfDate:              "31/12/2024",
		CurrentAssets:         map[string]Amount{"kas": 50_000_000, "piutang": 30_000_000},
		NonCurrentAssets:      map[string]Amount{"peralatan": 120_000_000},
		CurrentLiabilities:    map[string]Amount{"utang usaha": 20_000_000},
		NonCurrentLiabilities: map[string]Amount{"utang bank": 80_000_000},
		Equity:                map[string]Amount{"modal": 100_000_000},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 200_000_000, got.TotalAssets)
	assert.EqualValues(t, 100_000_000, got.TotalLiabilities)
	assert.EqualValues(t, 200_000_000, got.TotalLiabilitiesAndEquity)
	assert.True(t, got.IsBalanced)
	assert.Equal(t, []LineResponse{{"kas", 50_000_000}, {"piutang", 30_000_000}}, got.CurrentAssets.Items)
	assert.Equal(t, "Rp 200.000.000", got.Display.Amount)
	assert.Equal(t, "PT Maju Jaya", got.CompanyName)

	unbalanced, err := svc.BalanceSheet(ctx, BalanceSheetRequest{
		CurrentAssets: map[string]Amount{"kas": 10},
		Equity:        map[string]Amount{"modal": 7},
	})
	require.NoError(t, err)
	assert.False(t, unbalanced.IsBalanced)
	assert.EqualValues(t, 3, unbalanced.Difference)
	assert.NotNil(t, unbalanced.Equity.Items)
	assert.Empty(t, unbalanced.NonCurrentAssets.Items)

	require.Len(t, repo.entries, 2)
	assert.Equal(t, model.KindBalanceSheet, repo.entries[1].Kind)

	_, err = svc.BalanceSheet(ctx, BalanceSheetRequest{AsOfDate: "2024-12-31"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.BalanceSheet(ctx, BalanceSheetRequest{CurrentLiabilities: map[string]Amount{"utang": -1}})
	assert.ErrorIs(t, err, finance.ErrNegativeAmount)
}

func TestCashFlowService(t *testing.T) {
	svc := newFinanceService(t)
	ctx := context.Background()

	got, err := svc.CashFlow(ctx, CashFlowRequest{
		Period:              "2024",
		OperatingActivities: map[string]Amount{"laba bersih": 40_000_000, "penyusutan": 10_000_000},
		InvestingActivities: map[string]Amount{"pembelian aset": -30_000_000},
		FinancingActivities: map[string]Amount{"dividen": -5_000_000},
		BeginningCash:       15_000_000,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 50_000_000, got.OperatingActivities.Total)
	assert.EqualValues(t, -30_000_000, got.InvestingActivities.Total)
	assert.EqualValues(t, -5_000_000, got.FinancingActivities.Total)
	assert.EqualValues(t, 15_000_000, got.NetChangeInCash)
	assert.EqualValues(t, 30_000_000, got.EndingCash)
	assert.Equal(t, "Rp 30.000.000", got.Display.Amount)
	assert.Equal(t, "2024", got.Period)

	_, err = svc.CashFlow(ctx, CashFlowRequest{
		OperatingActivities: map[string]Amount{"penjualan": Amount(money.MaxAmount)},
		BeginningCash:       1,
	})
	assert.ErrorIs(t, err, money.ErrAmountTooLarge)
}
