package kafka

import (
	"context"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

// PaymentStatusHandler applies gateway settlement results to orders that
// were committed on an externally funded channel. Balance-funded orders
// are already PAID at commit time and never transition here.
type PaymentStatusHandler struct {
	Orders usecase.OrderRepo
	Cache  usecase.OrderCache // optional
}

func NewPaymentStatusHandler(orders usecase.OrderRepo, cache usecase.OrderCache) *PaymentStatusHandler {
	return &PaymentStatusHandler{Orders: orders, Cache: cache}
}

func (h *PaymentStatusHandler) Handle(ctx context.Context, ev usecase.PaymentStatusChangedMsg) error {
	var to domain.Status
	switch ev.Status {
	case "SUCCESS":
		to = domain.StatusPaid
	default:
		to = domain.StatusFailed
	}

	// Guarded transition: only a PENDING order moves, so replayed or
	// out-of-order gateway events cannot flip a settled order.
	moved, err := h.Orders.UpdateStatusIf(ctx, ev.InvoiceNumber, domain.StatusPending, to)
	if err != nil {
		return err
	}
	if moved && h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.InvoiceNumber, string(to))
	}
	return nil
}
