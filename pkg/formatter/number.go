// Package formatter renders values the way Indonesian documents print them.
package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencySymbol = "Rp"

var ErrInvalidAmount = errors.New("invalid rupiah amount")

var printer = message.NewPrinter(language.Indonesian)

// FormatNumber groups thousands with "." and uses "," for decimals: 1.500.000,50.
func FormatNumber(d decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	r := d.Round(int32(decimals))
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	whole := r.Truncate(0)
	out := sign + printer.Sprintf("%d", whole.IntPart())
	if decimals > 0 {
		frac := r.Sub(whole).StringFixed(int32(decimals)) // "0.50"
		out += "," + frac[2:]
	}
	return out
}

// FormatRupiah renders whole Rupiah: "Rp 1.500.000".
func FormatRupiah(amount int64) string {
	return withSymbol(decimal.NewFromInt(amount), 0)
}

// FormatRupiahDecimal always shows two decimals: "Rp 1.500.000,50".
func FormatRupiahDecimal(d decimal.Decimal) string {
	return withSymbol(d, 2)
}

func withSymbol(d decimal.Decimal, decimals int) string {
	s := FormatNumber(d.Abs(), decimals)
	if d.Round(int32(decimals)).IsNegative() {
		return "-" + CurrencySymbol + " " + s
	}
	return CurrencySymbol + " " + s
}

// FormatPercent renders a fraction as a percentage: 0.15 → "15,00%".
func FormatPercent(rate decimal.Decimal, decimals int) string {
	return FormatNumber(rate.Shift(2), decimals) + "%"
}

var multipliers = []struct {
	suffix string
	factor int64
}{
	{"triliun", 1_000_000_000_000},
	{"miliar", 1_000_000_000},
	{"juta", 1_000_000},
	{"ribu", 1_000},
	{"jt", 1_000_000},
	{"rb", 1_000},
	{"t", 1_000_000_000_000},
	{"m", 1_000_000_000},
	{"k", 1_000},
}

// ParseRupiah reads "Rp 1.500.000,50", "1500000" or shorthand such as "10jt",
// "1,5M" and "250rb".
func ParseRupiah(s string) (decimal.Decimal, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	neg := false
	if rest, ok := strings.CutPrefix(v, "-"); ok {
		neg, v = true, strings.TrimSpace(rest)
	}
	for _, prefix := range []string{"rp.", "rp", "idr"} {
		if rest, ok := strings.CutPrefix(v, prefix); ok {
			v = strings.TrimSpace(rest)
			break
		}
	}
	v = strings.ReplaceAll(v, " ", "")

	factor := int64(1)
	for _, m := range multipliers {
		if rest, ok := strings.CutSuffix(v, m.suffix); ok && rest != "" {
			v, factor = rest, m.factor
			break
		}
	}

	if factor > 1 {
		v = shorthandNumber(v)
	} else {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	}
	if v == "" || strings.HasPrefix(v, "-") || strings.HasPrefix(v, "+") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	d = d.Mul(decimal.NewFromInt(factor))
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// shorthandNumber normalizes the number in front of a suffix. "," is the
// decimal point; "." groups thousands when every group after it has three
// digits ("1.500jt") and is a decimal point otherwise ("2.5jt").
func shorthandNumber(v string) string {
	if whole, frac, ok := strings.Cut(v, ","); ok {
		return strings.ReplaceAll(whole, ".", "") + "." + frac
	}
	groups := strings.Split(v, ".")
	if len(groups) == 1 {
		return v
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return v
		}
	}
	return strings.Join(groups, "")
}
