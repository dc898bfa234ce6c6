package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/topupid/checkout-api/internal/entity"
)

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		promo    domain.PromoCode
		subtotal int64
		want     int64
	}{
		{
			name:     "percentage capped",
			promo:    domain.PromoCode{Kind: domain.DiscountPercentage, DiscountBps: 1000, MaxDiscountAmount: 5000},
			subtotal: 100000, // 10% = 10000, cap 5000
			want:     5000,
		},
		{
			name:     "percentage under cap",
			promo:    domain.PromoCode{Kind: domain.DiscountPercentage, DiscountBps: 1000, MaxDiscountAmount: 5000},
			subtotal: 30000,
			want:     3000,
		},
		{
			name:     "percentage uncapped when cap is zero",
			promo:    domain.PromoCode{Kind: domain.DiscountPercentage, DiscountBps: 2500},
			subtotal: 200000,
			want:     50000,
		},
		{
			name:     "flat clamped to subtotal",
			promo:    domain.PromoCode{Kind: domain.DiscountFlat, DiscountAmount: 15000},
			subtotal: 10000,
			want:     10000,
		},
		{
			name:     "flat below subtotal",
			promo:    domain.PromoCode{Kind: domain.DiscountFlat, DiscountAmount: 2000},
			subtotal: 10000,
			want:     2000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.promo, tt.subtotal)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, tt.subtotal)
		})
	}
}
