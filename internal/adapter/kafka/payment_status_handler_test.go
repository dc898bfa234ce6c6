package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

type fakeOrders struct {
	status map[string]domain.Status
}

func (f *fakeOrders) GetByInvoice(ctx context.Context, invoice string) (*domain.Order, error) {
	st, ok := f.status[invoice]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &domain.Order{InvoiceNumber: invoice, Status: st}, nil
}

func (f *fakeOrders) UpdateStatus(ctx context.Context, invoice string, to domain.Status) error {
	f.status[invoice] = to
	return nil
}

func (f *fakeOrders) UpdateStatusIf(ctx context.Context, invoice string, from, to domain.Status) (bool, error) {
	if f.status[invoice] != from {
		return false, nil
	}
	f.status[invoice] = to
	return true, nil
}

var _ usecase.OrderRepo = (*fakeOrders)(nil)

func TestPaymentStatusHandler(t *testing.T) {
	t.Run("success settles pending order", func(t *testing.T) {
		orders := &fakeOrders{status: map[string]domain.Status{"INV1": domain.StatusPending}}
		h := NewPaymentStatusHandler(orders, nil)

		err := h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
			InvoiceNumber: "INV1", Status: "SUCCESS",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, orders.status["INV1"])
	})

	t.Run("non-success fails pending order", func(t *testing.T) {
		orders := &fakeOrders{status: map[string]domain.Status{"INV1": domain.StatusPending}}
		h := NewPaymentStatusHandler(orders, nil)

		err := h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
			InvoiceNumber: "INV1", Status: "EXPIRED",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, orders.status["INV1"])
	})

	t.Run("replayed event cannot flip a settled order", func(t *testing.T) {
		orders := &fakeOrders{status: map[string]domain.Status{"INV1": domain.StatusPaid}}
		h := NewPaymentStatusHandler(orders, nil)

		err := h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
			InvoiceNumber: "INV1", Status: "FAILED",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, orders.status["INV1"])
	})
}
