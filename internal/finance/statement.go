package finance

import (
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"officebot/pkg/money"
)

// Line is one named amount of a statement, in whole Rupiah.
type Line struct {
	Name   string
	Amount int64
}

// Section is a group of lines sorted by name, with their total.
type Section struct {
	Lines []Line
	Total int64
}

// newSection totals items. Negative items are accepted only when signed is set.
func newSection(name string, items map[string]int64, signed bool) (Section, error) {
	var out Section
	for _, key := range slices.Sorted(maps.Keys(items)) {
		amount := items[key]
		if amount < 0 && !signed {
			return Section{}, fmt.Errorf("%w: %s %q", ErrNegativeAmount, name, key)
		}
		total, err := money.Sum(out.Total, amount)
		if err != nil {
			return Section{}, fmt.Errorf("%s: %w", name, err)
		}
		out.Lines = append(out.Lines, Line{Name: key, Amount: amount})
		out.Total = total
	}
	return out, nil
}

type IncomeStatementInput struct {
	Revenue           int64
	COGS              int64
	OperatingExpenses map[string]int64
	OtherIncome       int64
	OtherExpense      int64
	TaxRate           decimal.Decimal
}

type IncomeStatement struct {
	Revenue                int64
	COGS                   int64
	GrossProfit            int64
	OperatingExpenses      []Line
	TotalOperatingExpenses int64
	OperatingIncome        int64
	OtherIncome            int64
	OtherExpense           int64
	IncomeBeforeTax        int64
	TaxRate                decimal.Decimal
	Tax                    int64
	NetIncome              int64
	// Margins are fractions of revenue and zero when revenue is zero.
	GrossMargin     decimal.Decimal
	OperatingMargin decimal.Decimal
	NetMargin       decimal.Decimal
}

// SummarizeIncomeStatement derives the statement totals. Tax is charged only
// on a positive pre-tax income.
func SummarizeIncomeStatement(in IncomeStatementInput) (IncomeStatement, error) {
	if in.Revenue < 0 || in.COGS < 0 || in.OtherIncome < 0 || in.OtherExpense < 0 {
		return IncomeStatement{}, ErrNegativeAmount
	}
	if err := money.Check(in.Revenue, in.COGS, in.OtherIncome, in.OtherExpense); err != nil {
		return IncomeStatement{}, err
	}
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return IncomeStatement{}, fmt.Errorf("%w: tax rate %s", ErrInvalidRate, in.TaxRate)
	}
	opex, err := newSection("operating expense", in.OperatingExpenses, false)
	if err != nil {
		return IncomeStatement{}, err
	}

	out := IncomeStatement{
		Revenue:                in.Revenue,
		COGS:                   in.COGS,
		GrossProfit:            in.Revenue - in.COGS,
		OperatingExpenses:      opex.Lines,
		TotalOperatingExpenses: opex.Total,
		OtherIncome:            in.OtherIncome,
		OtherExpense:           in.OtherExpense,
		TaxRate:                in.TaxRate,
	}
	out.OperatingIncome = out.GrossProfit - out.TotalOperatingExpenses
	out.IncomeBeforeTax = out.OperatingIncome + in.OtherIncome - in.OtherExpense
	if out.IncomeBeforeTax > 0 {
		out.Tax = money.Apply(out.IncomeBeforeTax, in.TaxRate)
	}
	out.NetIncome = out.IncomeBeforeTax - out.Tax

	if in.Revenue > 0 {
		rev := decimal.NewFromInt(in.Revenue)
		out.GrossMargin = decimal.NewFromInt(out.GrossProfit).Div(rev)
		out.OperatingMargin = decimal.NewFromInt(out.OperatingIncome).Div(rev)
		out.NetMargin = decimal.NewFromInt(out.NetIncome).Div(rev)
	}
	return out, nil
}

// BalanceSheetInput lists balances by account name. Equity accounts may be
// negative (an accumulated deficit); assets and liabilities may not.
type BalanceSheetInput struct {
	CurrentAssets         map[string]int64
	NonCurrentAssets      map[string]int64
	CurrentLiabilities    map[string]int64
	NonCurrentLiabilities map[string]int64
	Equity                map[string]int64
}

type BalanceSheet struct {
	CurrentAssets             Section
	NonCurrentAssets          Section
	TotalAssets               int64
	CurrentLiabilities        Section
	NonCurrentLiabilities     Section
	TotalLiabilities          int64
	Equity                    Section
	TotalLiabilitiesAndEquity int64
	// Difference is total assets minus liabilities and equity.
	Difference int64
	Balanced   bool
}

// SummarizeBalanceSheet totals each group and checks assets against
// liabilities plus equity. Amounts are whole Rupiah, so balanced means equal.
func SummarizeBalanceSheet(in BalanceSheetInput) (BalanceSheet, error) {
	var (
		out BalanceSheet
		err error
	)
	groups := []struct {
		name   string
		items  map[string]int64
		signed bool
		dst    *Section
	}{
		{"current asset", in.CurrentAssets, false, &out.CurrentAssets},
		{"non-current asset", in.NonCurrentAssets, false, &out.NonCurrentAssets},
		{"current liability", in.CurrentLiabilities, false, &out.CurrentLiabilities},
		{"non-current liability", in.NonCurrentLiabilities, false, &out.NonCurrentLiabilities},
		{"equity", in.Equity, true, &out.Equity},
	}
	for _, g := range groups {
		if *g.dst, err = newSection(g.name, g.items, g.signed); err != nil {
			return BalanceSheet{}, err
		}
	}

	if out.TotalAssets, err = money.Sum(out.CurrentAssets.Total, out.NonCurrentAssets.Total); err != nil {
		return BalanceSheet{}, fmt.Errorf("total assets: %w", err)
	}
	if out.TotalLiabilities, err = money.Sum(out.CurrentLiabilities.Total, out.NonCurrentLiabilities.Total); err != nil {
		return BalanceSheet{}, fmt.Errorf("total liabilities: %w", err)
	}
	if out.TotalLiabilitiesAndEquity, err = money.Sum(out.TotalLiabilities, out.Equity.Total); err != nil {
		return BalanceSheet{}, fmt.Errorf("total liabilities and equity: %w", err)
	}
	out.Difference = out.TotalAssets - out.TotalLiabilitiesAndEquity
	out.Balanced = out.Difference == 0
	return out, nil
}

// CashFlowInput lists signed cash movements: inflows positive, outflows negative.
type CashFlowInput struct {
	Operating     map[string]int64
	Investing     map[string]int64
	Financing     map[string]int64
	BeginningCash int64
}

type CashFlowStatement struct {
	Operating     Section
	Investing     Section
	Financing     Section
	NetChange     int64
	BeginningCash int64
	EndingCash    int64
}

// SummarizeCashFlow nets each activity group and rolls beginning cash forward.
func SummarizeCashFlow(in CashFlowInput) (CashFlowStatement, error) {
	out := CashFlowStatement{BeginningCash: in.BeginningCash}
	if err := money.Check(in.BeginningCash); err != nil {
		return CashFlowStatement{}, err
	}
	var err error
	if out.Operating, err = newSection("operating activity", in.Operating, true); err != nil {
		return CashFlowStatement{}, err
	}
	if out.Investing, err = newSection("investing activity", in.Investing, true); err != nil {
		return CashFlowStatement{}, err
	}
	if out.Financing, err = newSection("financing activity", in.Financing, true); err != nil {
		return CashFlowStatement{}, err
	}
	if out.NetChange, err = money.Sum(out.Operating.Total, out.Investing.Total, out.Financing.Total); err != nil {
		return CashFlowStatement{}, fmt.Errorf("net change in cash: %w", err)
	}
	if out.EndingCash, err = money.Sum(in.BeginningCash, out.NetChange); err != nil {
		return CashFlowStatement{}, fmt.Errorf("ending cash: %w", err)
	}
	return out, nil
}
