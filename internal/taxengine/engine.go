// Package taxengine computes Indonesian taxes from a tax-year snapshot.
// Every function is pure given its inputs and the table it reads.
package taxengine

import (
	"errors"

	"officebot/internal/taxconfig"
	"officebot/pkg/money"
)

var (
	ErrUnknownServiceCategory = errors.New("unknown service category")
	ErrNegativeAmount         = errors.New("amount must not be negative")
	ErrInvalidPeriod          = errors.New("invalid income period")
	ErrInvalidRate            = errors.New("invalid rate")
)

// Tables supplies one tax year. *taxconfig.Registry and *taxconfig.Store both satisfy it.
type Tables interface {
	Config(year int) (taxconfig.Config, error)
}

type Engine struct {
	tables Tables
}

func New(tables Tables) *Engine {
	return &Engine{tables: tables}
}

// checkAmounts accepts figures in [0, money.MaxAmount].
func checkAmounts(values ...int64) error {
	for _, v := range values {
		if v < 0 {
			return ErrNegativeAmount
		}
	}
	return money.Check(values...)
}
