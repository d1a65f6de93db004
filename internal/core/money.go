package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// RoundCurrency rounds a monetary amount to 2 decimal places, half away from zero.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns part/whole*100, or zero when whole is not positive.
// Margin on a zero-revenue order is defined as 0%, not an error.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Today returns the current date as YYYY-MM-DD.
func Today() string {
	return time.Now().Format(dateLayout)
}

// YearOf extracts the calendar year from a YYYY-MM-DD date.
func YearOf(date string) (int, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.Year(), nil
}

// DateInRange reports whether date falls inside the inclusive [from, to]
// range. Empty bounds are unbounded. Dates are YYYY-MM-DD strings, so
// lexical comparison is chronological.
func DateInRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
