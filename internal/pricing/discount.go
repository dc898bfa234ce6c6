package pricing

import domain "github.com/topupid/checkout-api/internal/entity"

// Discount computes the promo discount against the item subtotal (the fee
// is never part of the discount base). Only called after Evaluate returned
// eligible.
func Discount(promo domain.PromoCode, subtotal int64) int64 {
	var d int64
	switch promo.Kind {
	case domain.DiscountPercentage:
		d = domain.PercentOf(subtotal, promo.DiscountBps)
		if promo.MaxDiscountAmount > 0 {
			d = domain.MinAmount(d, promo.MaxDiscountAmount)
		}
	case domain.DiscountFlat:
		d = domain.MinAmount(promo.DiscountAmount, subtotal)
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
