package formatter

import "strings"

var (
	ones   = []string{"", "satu", "dua", "tiga", "empat", "lima", "enam", "tujuh", "delapan", "sembilan"}
	scales = []string{"", "ribu", "juta", "miliar", "triliun", "kuadriliun", "kuintiliun"}
)

// Terbilang spells an amount in Indonesian words for invoices and receipts:
// 1500000 → "satu juta lima ratus ribu rupiah".
func Terbilang(amount int64) string {
	if amount == 0 {
		return "nol rupiah"
	}
	n := uint64(amount)
	prefix := ""
	if amount < 0 {
		prefix = "minus "
		n = uint64(-(amount + 1)) + 1
	}

	var groups []uint64
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var words []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		switch {
		case g == 0:
			continue
		case g == 1 && i == 1:
			words = append(words, "seribu")
		case i == 0:
			words = append(words, belowThousand(g))
		default:
			words = append(words, belowThousand(g)+" "+scales[i])
		}
	}
	return prefix + strings.Join(words, " ") + " rupiah"
}

func belowThousand(n uint64) string {
	var parts []string
	if h := n / 100; h > 0 {
		if h == 1 {
			parts = append(parts, "seratus")
		} else {
			parts = append(parts, ones[h]+" ratus")
		}
	}
	n %= 100
	switch {
	case n == 0:
	case n == 10:
		parts = append(parts, "sepuluh")
	case n == 11:
		parts = append(parts, "sebelas")
	case n < 10:
		parts = append(parts, ones[n])
	case n < 20:
		parts = append(parts, ones[n-10]+" belas")
	default:
		tens := ones[n/10] + " puluh"
		if n%10 != 0 {
			tens += " " + ones[n%10]
		}
		parts = append(parts, tens)
	}
	return strings.Join(parts, " ")
}
