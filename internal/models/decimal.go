package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDecimal renders d with at least one fractional digit ("50.0", "12.75").
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
