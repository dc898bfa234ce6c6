package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/topupid/checkout-api/internal/entity"
)

func TestFee(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		channel domain.PaymentChannel
		want    int64
	}{
		{
			name:    "fixed fee ignores amount",
			amount:  300000,
			channel: domain.PaymentChannel{FeeType: domain.FeeFixed, FeeAmount: 4000},
			want:    4000,
		},
		{
			name:    "percentage rounds half up",
			amount:  10001, // 0.7% = 70.007
			channel: domain.PaymentChannel{FeeType: domain.FeePercentage, FeeBps: 70},
			want:    70,
		},
		{
			name:    "percentage exact",
			amount:  100000,
			channel: domain.PaymentChannel{FeeType: domain.FeePercentage, FeeBps: 150}, // 1.5%
			want:    1500,
		},
		{
			name:    "mixed adds both parts",
			amount:  100000,
			channel: domain.PaymentChannel{FeeType: domain.FeeMixed, FeeAmount: 1000, FeeBps: 100},
			want:    2000,
		},
		{
			name:    "zero amount",
			amount:  0,
			channel: domain.PaymentChannel{FeeType: domain.FeePercentage, FeeBps: 250},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fee(tt.amount, tt.channel))
		})
	}
}

func TestFeeMonotonic(t *testing.T) {
	ch := domain.PaymentChannel{FeeType: domain.FeeMixed, FeeAmount: 500, FeeBps: 85}
	prev := int64(-1)
	for amount := int64(0); amount <= 2_000_000; amount += 17_351 {
		fee := Fee(amount, ch)
		assert.GreaterOrEqual(t, fee, int64(0))
		assert.GreaterOrEqual(t, fee, prev, "fee must not decrease as amount grows")
		prev = fee
	}
}

func TestPercentOfRoundHalfUp(t *testing.T) {
	// 5000 * 0.25% = 12.5 -> 13
	assert.Equal(t, int64(13), domain.PercentOf(5000, 25))
	// 4999 * 0.25% = 12.4975 -> 12
	assert.Equal(t, int64(12), domain.PercentOf(4999, 25))
}
