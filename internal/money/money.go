// Package money rounds monetary values to cents with decimal arithmetic.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places every cost is stored with.
const Places = 2

// RoundCost parses a textual cost and rounds it half-to-even to two places.
// "2.675" becomes 2.68, which binary float rounding gets wrong.
func RoundCost(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty cost")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse cost %q: %w", text, err)
	}
	return d.RoundBank(Places), nil
}

// RoundFloat rounds an approximate float by way of its shortest decimal text, never by scaling the
// float itself.
func RoundFloat(f float64) (decimal.Decimal, error) {
	return RoundCost(strconv.FormatFloat(f, 'f', -1, 64))
}

// ToStorage downcasts a rounded cost to the float column type.
func ToStorage(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Normalize is RoundCost followed by ToStorage.
func Normalize(text string) (float64, error) {
	d, err := RoundCost(text)
	if err != nil {
		return 0, err
	}
	return ToStorage(d), nil
}
