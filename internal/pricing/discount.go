// Package pricing holds the pure money arithmetic of the checkout pipeline:
// per-item discounts, cart subtotals and coupon application.
package pricing

import (
	"github.com/shopspring/decimal"

	"ecommerce-platform/internal/models"
)

// MoneyPlaces is the number of decimal places every computed amount is rounded to
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// DiscountedPrice returns the unit price of an item after its own discount.
//
// A zero discount amount leaves the price untouched. FIXED subtracts the amount,
// anything else is treated as a percentage of the price. Results are rounded to
// two places and never go below zero.
func DiscountedPrice(item models.LineItem) decimal.Decimal {
	if item.DiscountAmount.IsZero() {
		return item.Price
	}

	var final decimal.Decimal
	if item.Discount == models.DiscountFixed {
		final = item.Price.Sub(item.DiscountAmount)
	} else {
		final = item.Price.Sub(percentOf(item.DiscountAmount, item.Price))
	}

	return clampZero(final.Round(MoneyPlaces))
}

// SubTotal sums the discounted prices of the items, zero for an empty cart
func SubTotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(DiscountedPrice(item))
	}
	return total
}

// percentOf returns pct/100 * amount
func percentOf(pct, amount decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred).Mul(amount)
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
