package finance

import (
	"fmt"

	"github.com/shopspring/decimal"

	"officebot/pkg/money"
)

type BreakEvenResult struct {
	FixedCosts         decimal.Decimal
	PricePerUnit       decimal.Decimal
	VariableCost       decimal.Decimal
	ContributionMargin decimal.Decimal
	// MarginRatio is the contribution margin as a fraction of price.
	MarginRatio decimal.Decimal
	Units       decimal.Decimal
	// UnitsRoundedUp is the whole number of units needed to cover fixed costs.
	UnitsRoundedUp int64
	Revenue        decimal.Decimal
}

// BreakEven returns the unit volume where revenue equals total cost:
// fixed / (price − variable).
func BreakEven(fixed, price, variable decimal.Decimal) (BreakEvenResult, error) {
	if fixed.IsNegative() || price.IsNegative() || variable.IsNegative() {
		return BreakEvenResult{}, ErrNegativeAmount
	}
	margin := price.Sub(variable)
	if !margin.IsPositive() {
		return BreakEvenResult{}, fmt.Errorf("%w: price %s, variable cost %s", ErrInvalidMargin, price, variable)
	}
	units := fixed.Div(margin)
	if !money.InRange(units.Ceil()) {
		return BreakEvenResult{}, fmt.Errorf("%w: %s units", money.ErrAmountTooLarge, units.Ceil())
	}
	return BreakEvenResult{
		FixedCosts:         fixed,
		PricePerUnit:       price,
		VariableCost:       variable,
		ContributionMargin: margin,
		MarginRatio:        margin.Div(price),
		Units:              units,
		UnitsRoundedUp:     units.Ceil().IntPart(),
		Revenue:            units.Mul(price),
	}, nil
}
