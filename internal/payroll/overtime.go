package payroll

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"officebot/internal/taxengine"
	"officebot/pkg/money"
)

// HourlyDivisor turns a monthly wage into the hourly overtime base (Kepmenakertrans 102/2004).
const HourlyDivisor = 173

var (
	ErrNegativeHours     = errors.New("overtime hours must not be negative")
	ErrInvalidMultiplier = errors.New("overtime multiplier must not be negative")
)

var (
	divisor      = decimal.NewFromInt(HourlyDivisor)
	workdayTiers = []tier{{hours: 1, rate: "1.5"}, {rate: "2"}}
	restDayTiers = []tier{{hours: 7, rate: "2"}, {hours: 1, rate: "3"}, {rate: "4"}}
)

type tier struct {
	hours int64 // 0 on the last tier
	rate  string
}

func checkGross(gross int64) error {
	if gross < 0 {
		return taxengine.ErrNegativeAmount
	}
	return money.Check(gross)
}

// HourlyRate is gross / 173, exact.
func HourlyRate(gross int64) decimal.Decimal {
	return decimal.NewFromInt(gross).Div(divisor)
}

// Overtime pays hours at a flat multiplier of the hourly rate.
func Overtime(gross int64, hours, multiplier decimal.Decimal) (int64, error) {
	if err := checkGross(gross); err != nil {
		return 0, err
	}
	if hours.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegativeHours, hours)
	}
	if multiplier.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidMultiplier, multiplier)
	}
	return money.Checked(hours.Mul(multiplier).Mul(HourlyRate(gross)))
}

type OvertimeTier struct {
	Hours      decimal.Decimal
	Multiplier decimal.Decimal
}

type OvertimeResult struct {
	Gross         int64
	RestDay       bool
	HourlyRate    decimal.Decimal
	Hours         decimal.Decimal
	Tiers         []OvertimeTier
	WeightedHours decimal.Decimal
	Pay           int64
}

// StatutoryOvertime applies the tiered multipliers for one day of overtime.
// Workday: 1.5× for the first hour, 2× after. Rest day: 2× for hours 1–7,
// 3× for hour 8, 4× beyond.
func StatutoryOvertime(gross int64, hours decimal.Decimal, restDay bool) (OvertimeResult, error) {
	if err := checkGross(gross); err != nil {
		return OvertimeResult{}, err
	}
	if hours.IsNegative() {
		return OvertimeResult{}, fmt.Errorf("%w: %s", ErrNegativeHours, hours)
	}

	tiers := workdayTiers
	if restDay {
		tiers = restDayTiers
	}

	out := OvertimeResult{Gross: gross, RestDay: restDay, HourlyRate: HourlyRate(gross), Hours: hours}
	weighted := decimal.Zero
	left := hours
	for i, t := range tiers {
		if !left.IsPositive() {
			break
		}
		h := left
		if i < len(tiers)-1 {
			h = decimal.Min(left, decimal.NewFromInt(t.hours))
		}
		m := decimal.RequireFromString(t.rate)
		out.Tiers = append(out.Tiers, OvertimeTier{Hours: h, Multiplier: m})
		weighted = weighted.Add(h.Mul(m))
		left = left.Sub(h)
	}
	out.WeightedHours = weighted
	pay, err := money.Checked(weighted.Mul(out.HourlyRate))
	if err != nil {
		return OvertimeResult{}, err
	}
	out.Pay = pay
	return out, nil
}
