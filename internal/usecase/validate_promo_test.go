package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/topupid/checkout-api/internal/entity"
)

func newValidatePromoUC(reg *fakeRegistry) *ValidatePromo {
	uc := NewValidatePromo(reg, reg, reg)
	uc.now = func() time.Time { return inquiryNow }
	return uc
}

func TestValidatePromoEligible(t *testing.T) {
	uc := newValidatePromoUC(testRegistry())

	out, err := uc.Execute(context.Background(), ValidatePromoInput{
		PromoCode:   "JUNE10",
		ItemCode:    "ML-86DM",
		ChannelCode: "VA-BCA",
		Quantity:    1,
		Region:      "ID",
		UserID:      "u-1",
	})
	require.NoError(t, err)

	assert.True(t, out.Eligible)
	// 10% of 150000 = 15000, capped at 5000
	assert.Equal(t, int64(5000), out.Discount)
}

func TestValidatePromoNotFoundIsAResultNotAnError(t *testing.T) {
	uc := newValidatePromoUC(testRegistry())

	out, err := uc.Execute(context.Background(), ValidatePromoInput{
		PromoCode: "GHOST", ItemCode: "ML-86DM", Quantity: 1,
	})
	require.NoError(t, err)
	assert.False(t, out.Eligible)
	assert.Equal(t, domain.ReasonPromoNotFound, out.Reason)
}

func TestValidatePromoQuotaFromCounters(t *testing.T) {
	reg := testRegistry()
	p := reg.promos["JUNE10"]
	p.MaxUsagePerUser = 2
	reg.promos["JUNE10"] = p
	reg.counters = domain.UsageCounters{ByUser: 2}
	uc := newValidatePromoUC(reg)

	out, err := uc.Execute(context.Background(), ValidatePromoInput{
		PromoCode: "JUNE10", ItemCode: "ML-86DM", Quantity: 1, Region: "ID", UserID: "u-1",
	})
	require.NoError(t, err)
	assert.False(t, out.Eligible)
	assert.Equal(t, domain.ReasonUserUsageLimitExceeded, out.Reason)
}
