package domain

// PriceBreakdown is the one shape every quote and every persisted order
// carries. Total = Subtotal - Discount + Fee, never negative.
type PriceBreakdown struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Fee      int64 `json:"fee"`
	Total    int64 `json:"total"`
}

func (b PriceBreakdown) Consistent() bool {
	return b.Total == b.Subtotal-b.Discount+b.Fee &&
		b.Total >= 0 &&
		b.Discount >= 0 &&
		b.Discount <= b.Subtotal &&
		b.Fee >= 0
}
