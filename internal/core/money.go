// Package core provides money parsing and handling utilities.
//
// Stores hand loosely typed numeric columns to ParseAmount once, at ingestion;
// everything downstream works on decimal.Decimal and never re-parses.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var half = decimal.New(5, -1)

// ParseAmount converts a raw column value to a decimal amount.
//
// Empty or non-numeric input yields zero instead of an error, so a bad row
// degrades to "no money" rather than failing the whole request.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34
//	ParseAmount(" 7 ")   -> 7
//	ParseAmount("")      -> 0
//	ParseAmount("abc")   -> 0
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Round rounds d to the given number of decimal places, with halves going
// toward positive infinity (2.5 -> 3, -2.5 -> -2).
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

// Percent converts a fraction to a whole percentage using Round.
func Percent(rate decimal.Decimal) int64 {
	return Round(rate.Shift(2), 0).IntPart()
}

// Ratio returns part/whole, or zero when whole is not positive.
func Ratio(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole)
}

// Dollars formats an amount with two decimals, e.g. "$600.00".
func Dollars(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Float returns the amount as a float64 for JSON payloads.
func Float(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
