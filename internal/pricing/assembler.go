package pricing

import (
	domain "github.com/topupid/checkout-api/internal/entity"
)

// Quote is the assembler output: the breakdown plus, when a promo was
// supplied, the eligibility verdict. Callers must surface an ineligible
// reason rather than silently pricing without the discount.
type Quote struct {
	Breakdown domain.PriceBreakdown
	Promo     *domain.PromoCode
	Reason    domain.Reason
}

func (q Quote) PromoApplied() bool {
	return q.Promo != nil && q.Reason == domain.ReasonNone
}

// Assemble is the single place all four breakdown numbers are computed.
// Both the inquiry quote and anything re-deriving a price must go through
// it so quoted and charged amounts cannot drift.
//
// Channel bounds apply to subtotal+fee, pre-discount: a discount never
// rescues an order from a channel minimum.
func Assemble(item domain.Item, quantity int, ch domain.PaymentChannel, promo *domain.PromoCode, octx OrderContext, usage domain.UsageCounters) (Quote, error) {
	subtotal := item.Subtotal(quantity)
	fee := Fee(subtotal, ch)

	if !ch.WithinBounds(subtotal + fee) {
		return Quote{}, domain.ErrChannelUnavailable
	}

	q := Quote{Promo: promo}
	var discount int64
	if promo != nil {
		octx.AmountBeforeDiscount = subtotal
		q.Reason = Evaluate(*promo, octx, usage)
		if q.Reason == domain.ReasonNone {
			discount = Discount(*promo, subtotal)
		}
	}

	q.Breakdown = domain.PriceBreakdown{
		Subtotal: subtotal,
		Discount: discount,
		Fee:      fee,
		Total:    subtotal - discount + fee,
	}
	return q, nil
}
