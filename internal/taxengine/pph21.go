package taxengine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"officebot/internal/taxconfig"
	"officebot/pkg/money"
)

type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodAnnual  Period = "annual"
)

const monthsPerYear = 12

var twelve = decimal.NewFromInt(monthsPerYear)

// IncomeRecord is one employee's income for a period, in whole Rupiah.
type IncomeRecord struct {
	Gross                int64
	Period               Period
	NonTaxableAllowances int64
	BenefitsInKind       int64
	// Deductions are pension and employee BPJS contributions paid in the period.
	Deductions int64
}

func (r IncomeRecord) validate() error {
	if err := checkAmounts(r.Gross, r.NonTaxableAllowances, r.BenefitsInKind, r.Deductions); err != nil {
		return err
	}
	switch r.Period {
	case PeriodMonthly, PeriodAnnual:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, r.Period)
	}
}

func (r IncomeRecord) annualize(v int64) int64 {
	if r.Period == PeriodMonthly {
		return v * monthsPerYear
	}
	return v
}

// Segment is the slice of the taxable base that falls in one bracket.
type Segment struct {
	Layer     int
	Lower     int64
	Upper     int64
	Unbounded bool
	Taxable   int64
	Rate      decimal.Decimal
	Tax       decimal.Decimal
}

// PPh21Result holds annual figures unless the field says otherwise.
type PPh21Result struct {
	Year             int
	Category         string
	HasNPWP          bool
	GrossAnnual      int64
	TaxableGross     int64
	OccupationalCost int64
	Deductions       int64
	NetIncome        int64
	PTKP             int64
	TaxableBase      int64
	Segments         []Segment
	BracketTax       decimal.Decimal
	Surcharge        decimal.Decimal
	TotalTax         decimal.Decimal
	AnnualTax        int64
	MonthlyTax       int64
	NetAmount        int64
	EffectiveRate    decimal.Decimal
}

// ComputePPh21 computes employee income tax for one tax year.
func (e *Engine) ComputePPh21(income IncomeRecord, profile taxconfig.Profile, year int) (PPh21Result, error) {
	if err := income.validate(); err != nil {
		return PPh21Result{}, err
	}
	cfg, err := e.tables.Config(year)
	if err != nil {
		return PPh21Result{}, err
	}
	res, err := cfg.Resolve(profile)
	if err != nil {
		return PPh21Result{}, err
	}

	gross := income.annualize(income.Gross)
	taxableGross := money.NonNegative(gross + income.annualize(income.BenefitsInKind) - income.annualize(income.NonTaxableAllowances))
	occupational := money.Cap(money.Apply(taxableGross, cfg.OccupationalCost.Rate), cfg.OccupationalCost.AnnualCap)
	deductions := income.annualize(income.Deductions)
	net := money.NonNegative(taxableGross - occupational - deductions)
	taxable := money.NonNegative(net - res.PTKP)

	segments, bracketTax := ProgressiveTax(taxable, res.Brackets)
	surcharge := decimal.Zero
	if !profile.HasNPWP {
		surcharge = bracketTax.Mul(cfg.NonNPWPSurcharge)
	}
	total := bracketTax.Add(surcharge)
	annual := money.Round(total)

	effective := decimal.Zero
	if gross > 0 {
		effective = total.Div(decimal.NewFromInt(gross)).Round(6)
	}

	return PPh21Result{
		Year:             year,
		Category:         res.Category,
		HasNPWP:          profile.HasNPWP,
		GrossAnnual:      gross,
		TaxableGross:     taxableGross,
		OccupationalCost: occupational,
		Deductions:       deductions,
		NetIncome:        net,
		PTKP:             res.PTKP,
		TaxableBase:      taxable,
		Segments:         segments,
		BracketTax:       bracketTax,
		Surcharge:        surcharge,
		TotalTax:         total,
		AnnualTax:        annual,
		MonthlyTax:       money.Round(total.Div(twelve)),
		NetAmount:        gross - annual,
		EffectiveRate:    effective,
	}, nil
}

// ProgressiveTax splits taxable over the brackets. Each bracket covers
// [previous bound, bound); the top bracket has no bound. Only segments with a
// positive taxable slice are returned. The tax is exact.
func ProgressiveTax(taxable int64, brackets []taxconfig.Bracket) ([]Segment, decimal.Decimal) {
	var segments []Segment
	total := decimal.Zero
	var lower int64
	for i, b := range brackets {
		if taxable <= lower {
			break
		}
		upper := taxable
		if !b.Unbounded && b.UpperBound < taxable {
			upper = b.UpperBound
		}
		slice := upper - lower
		tax := decimal.NewFromInt(slice).Mul(b.Rate)
		segments = append(segments, Segment{
			Layer:     i + 1,
			Lower:     lower,
			Upper:     b.UpperBound,
			Unbounded: b.Unbounded,
			Taxable:   slice,
			Rate:      b.Rate,
			Tax:       tax,
		})
		total = total.Add(tax)
		if b.Unbounded {
			break
		}
		lower = b.UpperBound
	}
	return segments, total
}
