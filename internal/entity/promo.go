package domain

import "time"

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "PERCENTAGE"
	DiscountFlat       DiscountKind = "FLAT"
)

// PromoCode is the full promotion record as loaded from the promo registry.
// Empty applicability sets mean "no restriction"; zero usage limits mean
// "unlimited".
type PromoCode struct {
	Code              string
	Kind              DiscountKind
	DiscountBps       int64 // percentage kind, basis points (1000 = 10%)
	DiscountAmount    int64 // flat kind
	MaxDiscountAmount int64 // 0 = uncapped
	MinOrderAmount    int64
	StartAt           time.Time
	ExpiredAt         time.Time
	DaysAvailable     []time.Weekday
	Products          []string
	PaymentChannels   []string
	Regions           []string
	MaxUsageTotal     int64
	MaxUsagePerUser   int64
	MaxUsagePerDevice int64
	MaxUsagePerIP     int64
	MaxUsagePerDay    int64
	IsActive          bool
}

func (p PromoCode) AllowsDay(d time.Weekday) bool {
	if len(p.DaysAvailable) == 0 {
		return true
	}
	for _, w := range p.DaysAvailable {
		if w == d {
			return true
		}
	}
	return false
}

func (p PromoCode) AllowsProduct(code string) bool {
	return inSetOrEmpty(p.Products, code)
}

func (p PromoCode) AllowsChannel(code string) bool {
	return inSetOrEmpty(p.PaymentChannels, code)
}

func (p PromoCode) AllowsRegion(region string) bool {
	return inSetOrEmpty(p.Regions, region)
}

func inSetOrEmpty(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// UsageCounters are aggregate redemption counts for one promo, read from
// the usage store before quoting. The authoritative check happens again
// under the commit transaction.
type UsageCounters struct {
	Total    int64
	Today    int64
	ByUser   int64
	ByDevice int64
	ByIP     int64
}
