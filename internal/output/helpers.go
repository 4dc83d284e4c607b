package output

import (
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as currency with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	s := amount.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	return sign + "$" + intPart + frac
}

// FormatPercentage formats a decimal as a one-decimal percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(1) + "%"
}
