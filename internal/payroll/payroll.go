// Package payroll computes monthly take-home pay: overtime, BPJS and PPh 21.
package payroll

import (
	"github.com/shopspring/decimal"

	"officebot/internal/taxconfig"
	"officebot/internal/taxengine"
	"officebot/pkg/money"
)

// WarningNegativeNetPay is attached when deductions exceed pay and net pay was clamped to zero.
const WarningNegativeNetPay = "NEGATIVE_NET_PAY"

type Calculator struct {
	tables taxengine.Tables
	tax    *taxengine.Engine
}

func New(tables taxengine.Tables) *Calculator {
	return &Calculator{tables: tables, tax: taxengine.New(tables)}
}

// BPJS computes the contributions for a monthly wage in the given year.
func (c *Calculator) BPJS(gross int64, year int) (BPJSResult, error) {
	if err := checkGross(gross); err != nil {
		return BPJSResult{}, err
	}
	cfg, err := c.tables.Config(year)
	if err != nil {
		return BPJSResult{}, err
	}
	lines, employee, employer := Contributions(gross, cfg.BPJS)
	return BPJSResult{Year: year, Gross: gross, Lines: lines, Employee: employee, Employer: employer}, nil
}

type NetPay struct {
	Year         int
	Gross        int64
	Overtime     int64
	BPJS         []BPJSLine
	BPJSEmployee int64
	BPJSEmployer int64
	PPh21        taxengine.PPh21Result
	MonthlyPPh21 int64
	NetPay       int64
	Warnings     []string
}

// ComputeNetPay works out one month's take-home pay with overtime paid at a
// flat multiplier. The employee BPJS share is deducted before PPh 21.
func (c *Calculator) ComputeNetPay(gross int64, overtimeHours, overtimeRate decimal.Decimal, profile taxconfig.Profile, year int) (NetPay, error) {
	overtime, err := Overtime(gross, overtimeHours, overtimeRate)
	if err != nil {
		return NetPay{}, err
	}
	return c.NetPayWithOvertime(gross, overtime, profile, year)
}

// NetPayWithOvertime is ComputeNetPay for overtime pay worked out elsewhere,
// e.g. by StatutoryOvertime.
func (c *Calculator) NetPayWithOvertime(gross, overtime int64, profile taxconfig.Profile, year int) (NetPay, error) {
	if overtime < 0 {
		return NetPay{}, taxengine.ErrNegativeAmount
	}
	if _, err := money.Sum(gross, overtime); err != nil {
		return NetPay{}, err
	}
	bpjs, err := c.BPJS(gross, year)
	if err != nil {
		return NetPay{}, err
	}
	pph21, err := c.tax.ComputePPh21(taxengine.IncomeRecord{
		Gross:      gross + overtime,
		Period:     taxengine.PeriodMonthly,
		Deductions: bpjs.Employee,
	}, profile, year)
	if err != nil {
		return NetPay{}, err
	}

	out := NetPay{
		Year:         year,
		Gross:        gross,
		Overtime:     overtime,
		BPJS:         bpjs.Lines,
		BPJSEmployee: bpjs.Employee,
		BPJSEmployer: bpjs.Employer,
		PPh21:        pph21,
		MonthlyPPh21: pph21.MonthlyTax,
	}
	net := gross + overtime - bpjs.Employee - pph21.MonthlyTax
	if net < 0 {
		out.Warnings = append(out.Warnings, WarningNegativeNetPay)
	}
	out.NetPay = money.NonNegative(net)
	return out, nil
}
