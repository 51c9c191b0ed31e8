package taxengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"officebot/pkg/money"
)

// PPNResult splits an amount into its tax base (DPP) and VAT.
type PPNResult struct {
	Year  int
	Base  int64
	Rate  decimal.Decimal
	VAT   int64
	Total int64
}

// ComputePPN adds VAT to a price that excludes it.
func (e *Engine) ComputePPN(amount int64, year int) (PPNResult, error) {
	if err := checkAmounts(amount); err != nil {
		return PPNResult{}, err
	}
	cfg, err := e.tables.Config(year)
	if err != nil {
		return PPNResult{}, err
	}
	vat := money.Apply(amount, cfg.PPNRate)
	return PPNResult{Year: year, Base: amount, Rate: cfg.PPNRate, VAT: vat, Total: amount + vat}, nil
}

// ComputePPNInclusive extracts VAT from a price that already includes it:
// DPP = total / (1 + rate).
func (e *Engine) ComputePPNInclusive(total int64, year int) (PPNResult, error) {
	if err := checkAmounts(total); err != nil {
		return PPNResult{}, err
	}
	cfg, err := e.tables.Config(year)
	if err != nil {
		return PPNResult{}, err
	}
	base := money.Round(decimal.NewFromInt(total).Div(decimal.NewFromInt(1).Add(cfg.PPNRate)))
	return PPNResult{Year: year, Base: base, Rate: cfg.PPNRate, VAT: total - base, Total: total}, nil
}

type PPnBMResult struct {
	Year       int
	Base       int64
	PPNRate    decimal.Decimal
	PPN        int64
	LuxuryRate decimal.Decimal
	PPnBM      int64
	Total      int64
}

// maxLuxuryRate is the statutory ceiling for PPnBM.
var maxLuxuryRate = decimal.NewFromInt(2)

// ComputePPnBM charges PPN and luxury-goods tax on the same base.
func (e *Engine) ComputePPnBM(base int64, luxuryRate decimal.Decimal, year int) (PPnBMResult, error) {
	if err := checkAmounts(base); err != nil {
		return PPnBMResult{}, err
	}
	if luxuryRate.IsNegative() || luxuryRate.GreaterThan(maxLuxuryRate) {
		return PPnBMResult{}, fmt.Errorf("%w: luxury rate %s outside [0,2]", ErrInvalidRate, luxuryRate)
	}
	ppn, err := e.ComputePPN(base, year)
	if err != nil {
		return PPnBMResult{}, err
	}
	lux := money.Apply(base, luxuryRate)
	return PPnBMResult{
		Year:       year,
		Base:       base,
		PPNRate:    ppn.Rate,
		PPN:        ppn.VAT,
		LuxuryRate: luxuryRate,
		PPnBM:      lux,
		Total:      base + ppn.VAT + lux,
	}, nil
}
