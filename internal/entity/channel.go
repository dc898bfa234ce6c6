package domain

type FeeType string

const (
	FeeFixed      FeeType = "FIXED"
	FeePercentage FeeType = "PERCENTAGE"
	FeeMixed      FeeType = "MIXED"
)

type FundedBy string

const (
	FundedExternal FundedBy = "EXTERNAL"
	FundedBalance  FundedBy = "INTERNAL_BALANCE"
)

type OrderType string

const (
	OrderPurchase OrderType = "PURCHASE"
	OrderDeposit  OrderType = "DEPOSIT"
)

// PaymentChannel describes one way to pay. MinAmount/MaxAmount bound the
// pre-discount total (subtotal + fee); a zero MaxAmount means unbounded.
type PaymentChannel struct {
	Code             string
	Name             string
	FeeType          FeeType
	FeeAmount        int64
	FeeBps           int64 // fee percentage in basis points (70 = 0.7%)
	MinAmount        int64
	MaxAmount        int64
	SupportsPurchase bool
	SupportsDeposit  bool
	RequiresAuth     bool
	FundedBy         FundedBy
	IsActive         bool
}

func (c PaymentChannel) Supports(t OrderType) bool {
	switch t {
	case OrderPurchase:
		return c.SupportsPurchase
	case OrderDeposit:
		return c.SupportsDeposit
	}
	return false
}

// WithinBounds reports whether amount falls inside [MinAmount, MaxAmount].
func (c PaymentChannel) WithinBounds(amount int64) bool {
	if amount < c.MinAmount {
		return false
	}
	if c.MaxAmount > 0 && amount > c.MaxAmount {
		return false
	}
	return true
}
