package taxengine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"officebot/pkg/money"
)

type ServiceCategory string

const (
	CategoryServices  ServiceCategory = "services"
	CategoryRent      ServiceCategory = "rent"
	CategoryDividends ServiceCategory = "dividends"
	CategoryInterest  ServiceCategory = "interest"
	CategoryRoyalties ServiceCategory = "royalties"
	CategoryPrizes    ServiceCategory = "prizes"
)

var pph23Rates = map[ServiceCategory]decimal.Decimal{
	CategoryServices:  decimal.RequireFromString("0.02"),
	CategoryRent:      decimal.RequireFromString("0.02"),
	CategoryDividends: decimal.RequireFromString("0.15"),
	CategoryInterest:  decimal.RequireFromString("0.15"),
	CategoryRoyalties: decimal.RequireFromString("0.15"),
	CategoryPrizes:    decimal.RequireFromString("0.15"),
}

var categoryAliases = map[string]ServiceCategory{
	"jasa":    CategoryServices,
	"sewa":    CategoryRent,
	"dividen": CategoryDividends,
	"bunga":   CategoryInterest,
	"royalti": CategoryRoyalties,
	"hadiah":  CategoryPrizes,
}

// ParseServiceCategory accepts the English code or its Indonesian name.
func ParseServiceCategory(s string) (ServiceCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	c := ServiceCategory(key)
	if _, ok := pph23Rates[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceCategory, s)
	}
	return c, nil
}

// PPh23Rate returns the withholding rate for a category.
func PPh23Rate(c ServiceCategory) (decimal.Decimal, error) {
	r, ok := pph23Rates[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownServiceCategory, c)
	}
	return r, nil
}

type PPh23Result struct {
	Category ServiceCategory
	Gross    int64
	Rate     decimal.Decimal
	Tax      int64
	Net      int64
}

// ComputePPh23 computes withholding tax on a payment to a domestic taxpayer.
func ComputePPh23(amount int64, category ServiceCategory) (PPh23Result, error) {
	if err := checkAmounts(amount); err != nil {
		return PPh23Result{}, err
	}
	rate, err := PPh23Rate(category)
	if err != nil {
		return PPh23Result{}, err
	}
	tax := money.Apply(amount, rate)
	return PPh23Result{
		Category: category,
		Gross:    amount,
		Rate:     rate,
		Tax:      tax,
		Net:      amount - tax,
	}, nil
}
