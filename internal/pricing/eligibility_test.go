package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/topupid/checkout-api/internal/entity"
)

// A Wednesday inside the promo window.
var wednesday = time.Date(2025, time.June, 11, 10, 0, 0, 0, time.UTC)

func activePromo() domain.PromoCode {
	return domain.PromoCode{
		Code:           "JUNE10",
		Kind:           domain.DiscountPercentage,
		DiscountBps:    1000,
		MinOrderAmount: 50000,
		StartAt:        wednesday.AddDate(0, 0, -7),
		ExpiredAt:      wednesday.AddDate(0, 0, 7),
		IsActive:       true,
	}
}

func baseCtx() OrderContext {
	return OrderContext{
		ProductCode:          "ML-86DM",
		PaymentCode:          "QRIS",
		Region:               "ID",
		AmountBeforeDiscount: 100000,
		UserID:               "u-1",
		DeviceID:             "d-1",
		IPAddress:            "10.0.0.1",
		Now:                  wednesday,
	}
}

func TestEvaluateEligible(t *testing.T) {
	got := Evaluate(activePromo(), baseCtx(), domain.UsageCounters{})
	assert.Equal(t, domain.ReasonNone, got)
}

func TestEvaluateRuleOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.PromoCode, *OrderContext, *domain.UsageCounters)
		want    domain.Reason
	}{
		{
			name:   "inactive",
			mutate: func(p *domain.PromoCode, _ *OrderContext, _ *domain.UsageCounters) { p.IsActive = false },
			want:   domain.ReasonPromoNotActive,
		},
		{
			name: "not started",
			mutate: func(p *domain.PromoCode, _ *OrderContext, _ *domain.UsageCounters) {
				p.StartAt = wednesday.AddDate(0, 0, 1)
			},
			want: domain.ReasonPromoNotStarted,
		},
		{
			name: "expired",
			mutate: func(p *domain.PromoCode, _ *OrderContext, _ *domain.UsageCounters) {
				p.ExpiredAt = wednesday.AddDate(0, 0, -1)
			},
			want: domain.ReasonPromoExpired,
		},
		{
			name: "region restricted",
			mutate: func(p *domain.PromoCode, _ *OrderContext, _ *domain.UsageCounters) {
				p.Regions = []string{"MY", "SG"}
			},
			want: domain.ReasonRegionNotApplicable,
		},
		{
			name: "weekend only",
			mutate: func(p *domain.PromoCode, _ *OrderContext, _ *domain.UsageCounters) {
				p.DaysAvailable = []time.Weekday{time.Saturday, time.Sunday}
			},
			want: domain.ReasonDayNotApplicable,
		},
		{
			name: "product restricted",
			mutate: func(p *domain.PromoCode, _ *OrderContext, _ *domain.UsageCounters) {
				p.Products = []string{"FF-100DM"}
			},
			want: domain.ReasonProductNotApplicable,
		},
		{
			name: "channel restricted",
			mutate: func(p *domain.PromoCode, _ *OrderContext, _ *domain.UsageCounters) {
				p.PaymentChannels = []string{"VA-BCA"}
			},
			want: domain.ReasonPaymentNotApplicable,
		},
		{
			name: "min order amount",
			mutate: func(_ *domain.PromoCode, c *OrderContext, _ *domain.UsageCounters) {
				c.AmountBeforeDiscount = 40000
			},
			want: domain.ReasonMinAmountNotMet,
		},
		{
			name: "global quota",
			mutate: func(p *domain.PromoCode, _ *OrderContext, u *domain.UsageCounters) {
				p.MaxUsageTotal = 100
				u.Total = 100
			},
			want: domain.ReasonUsageLimitExceeded,
		},
		{
			name: "daily quota",
			mutate: func(p *domain.PromoCode, _ *OrderContext, u *domain.UsageCounters) {
				p.MaxUsagePerDay = 10
				u.Today = 10
			},
			want: domain.ReasonDailyUsageLimitExceeded,
		},
		{
			name: "user quota",
			mutate: func(p *domain.PromoCode, _ *OrderContext, u *domain.UsageCounters) {
				p.MaxUsagePerUser = 1
				u.ByUser = 1
			},
			want: domain.ReasonUserUsageLimitExceeded,
		},
		{
			name: "device quota",
			mutate: func(p *domain.PromoCode, _ *OrderContext, u *domain.UsageCounters) {
				p.MaxUsagePerDevice = 2
				u.ByDevice = 2
			},
			want: domain.ReasonDeviceUsageLimitExceed,
		},
		{
			name: "ip quota",
			mutate: func(p *domain.PromoCode, _ *OrderContext, u *domain.UsageCounters) {
				p.MaxUsagePerIP = 3
				u.ByIP = 3
			},
			want: domain.ReasonIPUsageLimitExceeded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo, octx, usage := activePromo(), baseCtx(), domain.UsageCounters{}
			tt.mutate(&promo, &octx, &usage)
			assert.Equal(t, tt.want, Evaluate(promo, octx, usage))
		})
	}
}

// Earlier rules win: an expired, region-restricted promo reports expiry.
func TestEvaluateShortCircuit(t *testing.T) {
	promo := activePromo()
	promo.ExpiredAt = wednesday.AddDate(0, 0, -1)
	promo.Regions = []string{"MY"}
	assert.Equal(t, domain.ReasonPromoExpired, Evaluate(promo, baseCtx(), domain.UsageCounters{}))
}

func TestEvaluateZeroLimitsUnlimited(t *testing.T) {
	usage := domain.UsageCounters{Total: 9999, Today: 9999, ByUser: 9999, ByDevice: 9999, ByIP: 9999}
	assert.Equal(t, domain.ReasonNone, Evaluate(activePromo(), baseCtx(), usage))
}

// Guest checkout: a per-user limit with no user identity cannot bind.
func TestEvaluateGuestSkipsActorLimits(t *testing.T) {
	promo := activePromo()
	promo.MaxUsagePerUser = 1
	octx := baseCtx()
	octx.UserID = ""
	assert.Equal(t, domain.ReasonNone, Evaluate(promo, octx, domain.UsageCounters{ByUser: 5}))
}
