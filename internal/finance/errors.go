// Package finance holds stateless business formulas: break-even, ROI,
// depreciation schedules, financial ratios and statement summaries.
package finance

import "errors"

var (
	ErrInvalidMargin     = errors.New("price must be greater than variable cost")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidUsefulLife = errors.New("useful life must be between 1 and 600 periods")
	ErrInvalidRate       = errors.New("rate must be in (0, 1]")
	ErrInvalidSalvage    = errors.New("salvage value must be between 0 and cost")
	ErrNegativeAmount    = errors.New("amount must not be negative")
)
