package pricing

import domain "github.com/topupid/checkout-api/internal/entity"

// Fee computes the payment channel fee on amount. Pure; malformed channel
// records are a caller precondition and yield the closest sane value.
func Fee(amount int64, ch domain.PaymentChannel) int64 {
	switch ch.FeeType {
	case domain.FeeFixed:
		return ch.FeeAmount
	case domain.FeePercentage:
		return domain.PercentOf(amount, ch.FeeBps)
	case domain.FeeMixed:
		return ch.FeeAmount + domain.PercentOf(amount, ch.FeeBps)
	}
	return 0
}
