package taxengine

import (
	"github.com/shopspring/decimal"

	"officebot/pkg/money"
)

type CorporateResult struct {
	Year          int
	TaxableProfit int64
	Turnover      int64
	// MSMEFinal is set when the final turnover tax replaced the general rate.
	MSMEFinal bool
	Base      int64
	Rate      decimal.Decimal
	Tax       int64
	// MonthlyInstallment is the PPh 25 prepayment derived from Tax.
	MonthlyInstallment int64
}

// ComputeCorporateTax applies the MSME final rate to turnover when turnover is
// known and within the limit; otherwise the general rate applies to profit.
// A turnover of 0 means unknown.
func (e *Engine) ComputeCorporateTax(profit, turnover int64, year int) (CorporateResult, error) {
	if err := checkAmounts(turnover); err != nil {
		return CorporateResult{}, err
	}
	cfg, err := e.tables.Config(year)
	if err != nil {
		return CorporateResult{}, err
	}

	out := CorporateResult{Year: year, TaxableProfit: profit, Turnover: turnover}
	if turnover > 0 && turnover <= cfg.Corporate.MSMETurnoverLimit {
		out.MSMEFinal = true
		out.Base = turnover
		out.Rate = cfg.Corporate.MSMEFinalRate
	} else {
		// losses carry no tax
		out.Base = money.NonNegative(profit)
		out.Rate = cfg.Corporate.Rate
	}
	out.Tax = money.Apply(out.Base, out.Rate)
	if !out.MSMEFinal {
		out.MonthlyInstallment = money.Round(decimal.NewFromInt(out.Tax).Div(twelve))
	}
	return out, nil
}
