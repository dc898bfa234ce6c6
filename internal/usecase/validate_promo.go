package usecase

import (
	"context"
	"time"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/pricing"
)

type ValidatePromoInput struct {
	PromoCode   string
	ItemCode    string
	ChannelCode string
	Quantity    int
	Region      string
	UserID      string
	DeviceID    string
	IPAddress   string
}

type ValidatePromoOutput struct {
	Eligible bool
	Reason   domain.Reason
	Discount int64
}

// ValidatePromo is the read-only preview: it answers "would this code
// apply, and for how much" without issuing a token or touching counters.
type ValidatePromo struct {
	catalog CatalogRepo
	promos  PromoRepo
	usage   UsageRepo
	now     func() time.Time
}

func NewValidatePromo(catalog CatalogRepo, promos PromoRepo, usage UsageRepo) *ValidatePromo {
	return &ValidatePromo{catalog: catalog, promos: promos, usage: usage, now: time.Now}
}

func (uc *ValidatePromo) Execute(ctx context.Context, in ValidatePromoInput) (ValidatePromoOutput, error) {
	if in.PromoCode == "" || in.ItemCode == "" || !domain.ValidQuantity(in.Quantity) {
		return ValidatePromoOutput{}, domain.NewValidationError("promoCode", "promoCode, itemCode and a valid quantity are required")
	}
	now := uc.now().UTC()

	promo, err := uc.promos.GetPromo(ctx, in.PromoCode)
	if err != nil {
		return ValidatePromoOutput{}, err
	}
	if promo == nil {
		return ValidatePromoOutput{Eligible: false, Reason: domain.ReasonPromoNotFound}, nil
	}

	item, err := uc.catalog.GetItem(ctx, in.ItemCode)
	if err != nil {
		return ValidatePromoOutput{}, err
	}
	if item == nil {
		return ValidatePromoOutput{}, domain.ErrSKUNotFound
	}

	counters, err := uc.usage.Counters(ctx, promo.Code, in.UserID, in.DeviceID, in.IPAddress, now)
	if err != nil {
		return ValidatePromoOutput{}, err
	}

	subtotal := item.Subtotal(in.Quantity)
	reason := pricing.Evaluate(*promo, pricing.OrderContext{
		ProductCode:          in.ItemCode,
		PaymentCode:          in.ChannelCode,
		Region:               in.Region,
		AmountBeforeDiscount: subtotal,
		UserID:               in.UserID,
		DeviceID:             in.DeviceID,
		IPAddress:            in.IPAddress,
		Now:                  now,
	}, counters)
	if reason != domain.ReasonNone {
		return ValidatePromoOutput{Eligible: false, Reason: reason}, nil
	}
	return ValidatePromoOutput{Eligible: true, Discount: pricing.Discount(*promo, subtotal)}, nil
}
