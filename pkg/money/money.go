// Package money keeps receipt and budget arithmetic exact to the cent.
package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const cents = 2

// LineTotal returns quantity × unitPrice rounded to cents.
func LineTotal(quantity int, unitPrice float64) float64 {
	total := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	return total.Round(cents).InexactFloat64()
}

// Sum adds amounts without accumulating float drift.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(cents).InexactFloat64()
}

// Format renders amount in the given ISO currency, e.g. "R$10,50" for BRL.
// Unknown currency codes fall back to a plain two-decimal rendering.
func Format(amount float64, currency string) string {
	if gomoney.GetCurrency(currency) == nil {
		return decimal.NewFromFloat(amount).StringFixed(cents)
	}
	return gomoney.NewFromFloat(amount, currency).Display()
}
