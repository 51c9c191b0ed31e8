package finance

import "github.com/shopspring/decimal"

// ROI is (gain − cost) / cost as a fraction.
func ROI(gain, cost decimal.Decimal) (decimal.Decimal, error) {
	return quotient("roi", gain.Sub(cost), cost)
}

type ProfitMarginResult struct {
	Revenue     decimal.Decimal
	Cost        decimal.Decimal
	GrossProfit decimal.Decimal
	Margin      decimal.Decimal
}

func ProfitMargin(revenue, cost decimal.Decimal) (ProfitMarginResult, error) {
	profit := revenue.Sub(cost)
	margin, err := quotient("profit margin", profit, revenue)
	if err != nil {
		return ProfitMarginResult{}, err
	}
	return ProfitMarginResult{Revenue: revenue, Cost: cost, GrossProfit: profit, Margin: margin}, nil
}
