package queue

import (
	"context"

	"github.com/topupid/checkout-api/internal/usecase"
)

// FulfillmentGateway is the port to the delivery/payment gateway that
// actually tops up the game account or forwards the charge. Fire and
// forget from the engine's perspective; outcomes come back on Kafka.
type FulfillmentGateway interface {
	Dispatch(ctx context.Context, msg usecase.OrderCommittedMsg) error
}

// FulfillmentHandler forwards committed orders to the gateway.
type FulfillmentHandler struct {
	GW FulfillmentGateway
}

func NewFulfillmentHandler(gw FulfillmentGateway) *FulfillmentHandler {
	return &FulfillmentHandler{GW: gw}
}

// HandleCommitted is wired through queue.JSONHandler[usecase.OrderCommittedMsg].
func (h *FulfillmentHandler) HandleCommitted(ctx context.Context, msg usecase.OrderCommittedMsg) error {
	return h.GW.Dispatch(ctx, msg)
}
