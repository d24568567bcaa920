package pricing

import (
	"github.com/shopspring/decimal"

	"ecommerce-platform/internal/models"
)

// CouponResult is the outcome of applying a coupon to a subtotal
type CouponResult struct {
	FinalPrice    decimal.Decimal
	DiscountPrice decimal.Decimal
}

// ApplyCoupon applies a coupon of the given kind and amount to subTotal.
//
// FIXED takes the amount off the subtotal. PERCENTAGE takes amount/100 of it.
// The final price never drops below zero; when it is clamped the discount is
// reduced to the subtotal so that final = subTotal - discount still holds.
func ApplyCoupon(kind models.DiscountKind, amount, subTotal decimal.Decimal) CouponResult {
	var final, discount decimal.Decimal

	if kind == models.DiscountFixed {
		final = subTotal.Sub(amount).Round(MoneyPlaces)
		discount = amount
	} else {
		off := percentOf(amount, subTotal)
		discount = off.Round(MoneyPlaces)
		final = subTotal.Sub(off).Round(MoneyPlaces)
	}

	if final.IsNegative() {
		return CouponResult{FinalPrice: decimal.Zero, DiscountPrice: subTotal}
	}

	return CouponResult{FinalPrice: final, DiscountPrice: discount}
}

// PriceCart prices a set of line items with an optional redeemable coupon.
// The coupon is ignored when the subtotal is zero.
func PriceCart(items []models.LineItem, coupon *models.Coupon) models.CartPrice {
	subTotal := SubTotal(items)
	price := models.CartPrice{
		SubTotal: subTotal,
		Total:    subTotal,
		Discount: decimal.Zero,
	}

	if coupon == nil || !subTotal.IsPositive() {
		return price
	}

	applied := ApplyCoupon(coupon.Type, coupon.Amount, subTotal)
	price.Total = applied.FinalPrice
	price.Discount = applied.DiscountPrice
	return price
}

// ToSubunits converts an amount to the currency's smallest unit (paise for INR)
func ToSubunits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
