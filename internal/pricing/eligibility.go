package pricing

import (
	"time"

	domain "github.com/topupid/checkout-api/internal/entity"
)

// OrderContext is everything the eligibility chain looks at besides the
// promo record itself. Actor identifiers may be empty for guests; a limit
// without an identifier to bind to passes.
type OrderContext struct {
	ProductCode          string
	PaymentCode          string
	Region               string
	AmountBeforeDiscount int64
	UserID               string
	DeviceID             string
	IPAddress            string
	Now                  time.Time
}

// Evaluate runs the ordered rule chain and short-circuits on the first
// failure. Order is fixed: clients show the first failing reason and expect
// the same one for the same state.
func Evaluate(promo domain.PromoCode, octx OrderContext, usage domain.UsageCounters) domain.Reason {
	if !promo.IsActive {
		return domain.ReasonPromoNotActive
	}
	if octx.Now.Before(promo.StartAt) {
		return domain.ReasonPromoNotStarted
	}
	if octx.Now.After(promo.ExpiredAt) {
		return domain.ReasonPromoExpired
	}
	if !promo.AllowsRegion(octx.Region) {
		return domain.ReasonRegionNotApplicable
	}
	if !promo.AllowsDay(octx.Now.Weekday()) {
		return domain.ReasonDayNotApplicable
	}
	if !promo.AllowsProduct(octx.ProductCode) {
		return domain.ReasonProductNotApplicable
	}
	if !promo.AllowsChannel(octx.PaymentCode) {
		return domain.ReasonPaymentNotApplicable
	}
	if octx.AmountBeforeDiscount < promo.MinOrderAmount {
		return domain.ReasonMinAmountNotMet
	}
	if promo.MaxUsageTotal > 0 && usage.Total >= promo.MaxUsageTotal {
		return domain.ReasonUsageLimitExceeded
	}
	if promo.MaxUsagePerDay > 0 && usage.Today >= promo.MaxUsagePerDay {
		return domain.ReasonDailyUsageLimitExceeded
	}
	if promo.MaxUsagePerUser > 0 && octx.UserID != "" && usage.ByUser >= promo.MaxUsagePerUser {
		return domain.ReasonUserUsageLimitExceeded
	}
	if promo.MaxUsagePerDevice > 0 && octx.DeviceID != "" && usage.ByDevice >= promo.MaxUsagePerDevice {
		return domain.ReasonDeviceUsageLimitExceed
	}
	if promo.MaxUsagePerIP > 0 && octx.IPAddress != "" && usage.ByIP >= promo.MaxUsagePerIP {
		return domain.ReasonIPUsageLimitExceeded
	}
	return domain.ReasonNone
}
