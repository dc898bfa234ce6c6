package domain

// Reason is why a promo could not be applied. These codes are stable:
// clients key user-facing messages off them.
type Reason string

const (
	ReasonNone                    Reason = ""
	ReasonPromoNotFound           Reason = "PROMO_NOT_FOUND"
	ReasonPromoNotActive          Reason = "PROMO_NOT_ACTIVE"
	ReasonPromoNotStarted         Reason = "PROMO_NOT_STARTED"
	ReasonPromoExpired            Reason = "PROMO_EXPIRED"
	ReasonRegionNotApplicable     Reason = "REGION_NOT_APPLICABLE"
	ReasonDayNotApplicable        Reason = "DAY_NOT_APPLICABLE"
	ReasonProductNotApplicable    Reason = "PRODUCT_NOT_APPLICABLE"
	ReasonPaymentNotApplicable    Reason = "PAYMENT_NOT_APPLICABLE"
	ReasonMinAmountNotMet         Reason = "MIN_AMOUNT_NOT_MET"
	ReasonUsageLimitExceeded      Reason = "USAGE_LIMIT_EXCEEDED"
	ReasonDailyUsageLimitExceeded Reason = "DAILY_USAGE_LIMIT_EXCEEDED"
	ReasonUserUsageLimitExceeded  Reason = "USER_USAGE_LIMIT_EXCEEDED"
	ReasonDeviceUsageLimitExceed  Reason = "DEVICE_USAGE_LIMIT_EXCEEDED"
	ReasonIPUsageLimitExceeded    Reason = "IP_USAGE_LIMIT_EXCEEDED"
)
