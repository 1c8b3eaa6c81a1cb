package snapshot

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Money formats a dollar amount with thousands separators and cents
func Money(v float64) string {
	if v < 0 {
		return "-$" + grouped(-v, 2)
	}
	return "$" + grouped(v, 2)
}

// Percent formats a percentage with two decimals
func Percent(v float64) string {
	return grouped(v, 2) + "%"
}

// Number formats v with thousands separators and fixed decimals
func Number(v float64, places int32) string {
	return grouped(v, places)
}

func grouped(v float64, places int32) string {
	d := decimal.NewFromFloat(v).Round(places)
	neg := d.IsNegative()

	whole, frac, _ := strings.Cut(d.Abs().StringFixed(places), ".")
	if n, ok := new(big.Int).SetString(whole, 10); ok {
		whole = humanize.BigComma(n)
	}

	out := whole
	if places > 0 {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// label turns a snake_case key into a display label
func label(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
