// Package format renders amounts and records for terminal output.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencySymbol = "Rs"

var printer = message.NewPrinter(language.English)

// Currency returns an amount with the currency symbol and thousands
// separators, e.g. "Rs 10,623.52" or "-Rs 5.00".
func Currency(amount float64) string {
	if amount < 0 {
		return "-" + CurrencySymbol + " " + Number(-amount)
	}
	return CurrencySymbol + " " + Number(amount)
}

// Number returns an amount with two decimals and thousands separators.
func Number(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}
