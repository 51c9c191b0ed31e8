// Package money holds the Rupiah rounding rule shared by the calculators:
// whole Rupiah, half rounded up (away from zero).
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAmount bounds every Rupiah figure the calculators accept: Rp 1 kuadriliun.
// Twelve months of several bounded figures still fit in int64.
const MaxAmount int64 = 1_000_000_000_000_000

var ErrAmountTooLarge = errors.New("amount exceeds Rp 1.000.000.000.000.000")

var (
	hundred = decimal.NewFromInt(100)
	maxDec  = decimal.NewFromInt(MaxAmount)
)

// Round converts an exact amount to whole Rupiah.
func Round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// Apply returns amount × rate rounded to whole Rupiah.
func Apply(amount int64, rate decimal.Decimal) int64 {
	return Round(decimal.NewFromInt(amount).Mul(rate))
}

// Cap limits amount to limit. A limit of 0 means no limit.
func Cap(amount, limit int64) int64 {
	if limit > 0 && amount > limit {
		return limit
	}
	return amount
}

// NonNegative clamps v at zero.
func NonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Percent renders a fraction such as 0.05 as 5.
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// InRange reports whether d lies within ±MaxAmount.
func InRange(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(maxDec)
}

// Checked is Round for results that must stay within ±MaxAmount.
func Checked(d decimal.Decimal) (int64, error) {
	if !InRange(d) {
		return 0, fmt.Errorf("%w: %s", ErrAmountTooLarge, d.Round(0))
	}
	return Round(d), nil
}

// Check rejects any value beyond ±MaxAmount.
func Check(values ...int64) error {
	for _, v := range values {
		if v > MaxAmount || v < -MaxAmount {
			return fmt.Errorf("%w: %d", ErrAmountTooLarge, v)
		}
	}
	return nil
}

// Sum adds bounded values and fails once the running total leaves ±MaxAmount.
func Sum(values ...int64) (int64, error) {
	var total int64
	for _, v := range values {
		if err := Check(v); err != nil {
			return 0, err
		}
		total += v
		if err := Check(total); err != nil {
			return 0, err
		}
	}
	return total, nil
}
