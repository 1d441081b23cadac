// Package money formatea montos en rupias con la agrupación india (12,34,567.5).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Prefijos de moneda: el PDF usa "Rs." porque las fuentes estándar no traen el glifo ₹.
const (
	PrefixPDF  = "Rs. "
	PrefixHTML = "₹"
)

// FormatINR devuelve "Rs. " + monto con agrupación india.
func FormatINR(amount decimal.Decimal) string {
	return format(PrefixPDF, amount)
}

// FormatRupee devuelve "₹" + monto con agrupación india (vista de impresión).
func FormatRupee(amount decimal.Decimal) string {
	return format(PrefixHTML, amount)
}

func format(prefix string, amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	s := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	out := prefix + sign + GroupIndian(intPart)
	if frac != "" {
		out += "." + frac
	}
	return out
}

// GroupIndian inserta comas en un entero sin signo: los últimos tres dígitos
// forman un grupo y el resto va de dos en dos.
// Ej: "1234567" → "12,34,567", "999" → "999".
func GroupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head, tail := digits[:n-3], digits[n-3:]
	var b strings.Builder
	b.Grow(n + n/2)
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
