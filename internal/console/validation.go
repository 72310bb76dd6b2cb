package console

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// DoneSentinel ends the item loop of a sale or restock.
const DoneSentinel = "done"

type ValidationError struct {
	Field       string
	Description string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Description)
}

// ValidateName accepts any non-empty text that is not just digits and spaces.
func ValidateName(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", &ValidationError{Field: field, Description: "cannot be empty"}
	}
	if isNumeric(strings.ReplaceAll(s, " ", "")) {
		return "", &ValidationError{Field: field, Description: "must be text, not a number"}
	}
	return s, nil
}

func ValidatePositiveInt(field, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: field, Description: "must be a whole number"}
	}
	if n <= 0 {
		return 0, &ValidationError{Field: field, Description: "must be greater than zero"}
	}
	return n, nil
}

func ValidateNonNegativeDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Description: "must be a number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Description: "cannot be negative"}
	}
	return d, nil
}

// IsDone reports whether s is the sentinel that finishes a transaction.
func IsDone(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), DoneSentinel)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !unicode.Is(unicode.No, r) {
			return false
		}
	}
	return true
}
