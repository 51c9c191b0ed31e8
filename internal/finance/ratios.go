package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func quotient(name string, num, den decimal.Decimal) (decimal.Decimal, error) {
	if den.IsZero() {
		return decimal.Zero, fmt.Errorf("%s: %w", name, ErrDivisionByZero)
	}
	return num.Div(den), nil
}

func CurrentRatio(currentAssets, currentLiabilities decimal.Decimal) (decimal.Decimal, error) {
	return quotient("current ratio", currentAssets, currentLiabilities)
}

func QuickRatio(currentAssets, inventory, currentLiabilities decimal.Decimal) (decimal.Decimal, error) {
	return quotient("quick ratio", currentAssets.Sub(inventory), currentLiabilities)
}

func CashRatio(cash, currentLiabilities decimal.Decimal) (decimal.Decimal, error) {
	return quotient("cash ratio", cash, currentLiabilities)
}

func DebtToEquity(totalDebt, totalEquity decimal.Decimal) (decimal.Decimal, error) {
	return quotient("debt to equity", totalDebt, totalEquity)
}

func DebtRatio(totalDebt, totalAssets decimal.Decimal) (decimal.Decimal, error) {
	return quotient("debt ratio", totalDebt, totalAssets)
}

func NetProfitMargin(netIncome, revenue decimal.Decimal) (decimal.Decimal, error) {
	return quotient("net profit margin", netIncome, revenue)
}

func ReturnOnAssets(netIncome, totalAssets decimal.Decimal) (decimal.Decimal, error) {
	return quotient("return on assets", netIncome, totalAssets)
}

func ReturnOnEquity(netIncome, totalEquity decimal.Decimal) (decimal.Decimal, error) {
	return quotient("return on equity", netIncome, totalEquity)
}

func GrossMargin(revenue, cogs decimal.Decimal) (decimal.Decimal, error) {
	return quotient("gross margin", revenue.Sub(cogs), revenue)
}

type LiquidityInput struct {
	CurrentAssets      decimal.Decimal
	CurrentLiabilities decimal.Decimal
	Inventory          decimal.Decimal
	Cash               decimal.Decimal
}

type LiquidityRatios struct {
	Current decimal.Decimal
	Quick   decimal.Decimal
	Cash    decimal.Decimal
}

func Liquidity(in LiquidityInput) (LiquidityRatios, error) {
	var out LiquidityRatios
	var err error
	if out.Current, err = CurrentRatio(in.CurrentAssets, in.CurrentLiabilities); err != nil {
		return LiquidityRatios{}, err
	}
	if out.Quick, err = QuickRatio(in.CurrentAssets, in.Inventory, in.CurrentLiabilities); err != nil {
		return LiquidityRatios{}, err
	}
	if out.Cash, err = CashRatio(in.Cash, in.CurrentLiabilities); err != nil {
		return LiquidityRatios{}, err
	}
	return out, nil
}

type SolvencyInput struct {
	TotalDebt   decimal.Decimal
	TotalEquity decimal.Decimal
	TotalAssets decimal.Decimal
}

type SolvencyRatios struct {
	DebtToEquity decimal.Decimal
	DebtRatio    decimal.Decimal
}

func Solvency(in SolvencyInput) (SolvencyRatios, error) {
	var out SolvencyRatios
	var err error
	if out.DebtToEquity, err = DebtToEquity(in.TotalDebt, in.TotalEquity); err != nil {
		return SolvencyRatios{}, err
	}
	if out.DebtRatio, err = DebtRatio(in.TotalDebt, in.TotalAssets); err != nil {
		return SolvencyRatios{}, err
	}
	return out, nil
}

type ProfitabilityInput struct {
	NetIncome   decimal.Decimal
	Revenue     decimal.Decimal
	TotalAssets decimal.Decimal
	TotalEquity decimal.Decimal
}

type ProfitabilityRatios struct {
	NetProfitMargin decimal.Decimal
	ReturnOnAssets  decimal.Decimal
	ReturnOnEquity  decimal.Decimal
}

func Profitability(in ProfitabilityInput) (ProfitabilityRatios, error) {
	var out ProfitabilityRatios
	var err error
	if out.NetProfitMargin, err = NetProfitMargin(in.NetIncome, in.Revenue); err != nil {
		return ProfitabilityRatios{}, err
	}
	if out.ReturnOnAssets, err = ReturnOnAssets(in.NetIncome, in.TotalAssets); err != nil {
		return ProfitabilityRatios{}, err
	}
	if out.ReturnOnEquity, err = ReturnOnEquity(in.NetIncome, in.TotalEquity); err != nil {
		return ProfitabilityRatios{}, err
	}
	return out, nil
}
