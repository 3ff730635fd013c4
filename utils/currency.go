package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ============================================================================
// CURRENCY FORMATTING
// Purely presentational: used when rendering financial-context strings for
// the AI flows and in API responses that embed display amounts.
// ============================================================================

type CurrencyInfo struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Symbol string `json:"symbol"`
}

var SupportedCurrencies = []CurrencyInfo{
	{Code: "USD", Label: "USD - United States Dollar", Symbol: "$"},
	{Code: "EUR", Label: "EUR - Euro", Symbol: "€"},
	{Code: "GBP", Label: "GBP - British Pound Sterling", Symbol: "£"},
	{Code: "JPY", Label: "JPY - Japanese Yen", Symbol: "¥"},
	{Code: "CAD", Label: "CAD - Canadian Dollar", Symbol: "CA$"},
	{Code: "AUD", Label: "AUD - Australian Dollar", Symbol: "A$"},
	{Code: "INR", Label: "INR - Indian Rupee", Symbol: "₹"},
}

const DefaultCurrency = "USD"

// IsSupportedCurrency reports whether code is one of the supported currencies.
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

func currencySymbol(code string) string {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return code + " "
}

// FormatCurrency renders an amount with its currency symbol, rounded to two
// decimal places (zero for JPY).
func FormatCurrency(amount float64, currencyCode string) string {
	places := int32(2)
	if currencyCode == "JPY" {
		places = 0
	}

	d := decimal.NewFromFloat(amount).Round(places)
	return fmt.Sprintf("%s%s", currencySymbol(currencyCode), d.StringFixed(places))
}
