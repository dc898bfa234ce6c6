package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/topupid/checkout-api/internal/entity"
)

type commitHarness struct {
	reg    *fakeRegistry
	tokens *fakeTokenRepo
	store  *fakeCommitStore
	uc     *CommitOrder
}

func newCommitHarness(t *testing.T) *commitHarness {
	t.Helper()
	reg := testRegistry()
	tokens := newFakeTokenRepo()
	store := newFakeCommitStore(tokens)
	uc := NewCommitOrder(tokens, reg, reg, reg, store, nil)
	uc.now = func() time.Time { return inquiryNow }
	return &commitHarness{reg: reg, tokens: tokens, store: store, uc: uc}
}

func (h *commitHarness) issueToken(t *testing.T, in InquiryInput) string {
	t.Helper()
	iq := newInquiryUC(h.reg, h.tokens, newFakeIdem())
	out, err := iq.Execute(context.Background(), in)
	require.NoError(t, err)
	return out.Token
}

func TestCommitHappyPath(t *testing.T) {
	h := newCommitHarness(t)
	token := h.issueToken(t, validInput())

	out, err := h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.InvoiceNumber)
	assert.Equal(t, domain.StatusPending, out.Status) // external channel awaits gateway
	assert.Equal(t, int64(304000), out.Breakdown.Total)

	require.Len(t, h.store.orders, 1)
	assert.Equal(t, out.Breakdown, h.store.orders[0].Breakdown, "committed breakdown is the frozen quote")
}

func TestCommitUnknownToken(t *testing.T) {
	h := newCommitHarness(t)
	_, err := h.uc.Execute(context.Background(), CommitInput{Token: "nope"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestCommitExpiredToken(t *testing.T) {
	h := newCommitHarness(t)
	token := h.issueToken(t, validInput())

	h.uc.now = func() time.Time { return inquiryNow.Add(domain.TokenTTL + time.Minute) }
	_, err := h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

// Scenario: second commit of the same token fails and creates no second
// order.
func TestCommitSecondAttemptRejected(t *testing.T) {
	h := newCommitHarness(t)
	token := h.issueToken(t, validInput())

	_, err := h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	require.NoError(t, err)

	_, err = h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrTokenAlreadyUsed)
	assert.Len(t, h.store.orders, 1)
}

// N concurrent commits of one token: exactly one success.
func TestCommitExactlyOnceUnderRace(t *testing.T) {
	h := newCommitHarness(t)
	token := h.issueToken(t, validInput())

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
		}(i)
	}
	wg.Wait()

	var ok, used int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrTokenAlreadyUsed):
			used++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, used)
	assert.Len(t, h.store.orders, 1)
}

func TestCommitBalanceChannel(t *testing.T) {
	h := newCommitHarness(t)
	h.store.balances["u-1"] = 500000

	in := validInput()
	in.ChannelCode = "BALANCE"
	token := h.issueToken(t, in)

	out, err := h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPaid, out.Status)
	assert.Equal(t, int64(500000-300000), h.store.balances["u-1"])
}

func TestCommitInsufficientBalance(t *testing.T) {
	h := newCommitHarness(t)
	h.store.balances["u-1"] = 1000

	in := validInput()
	in.ChannelCode = "BALANCE"
	token := h.issueToken(t, in)

	_, err := h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Empty(t, h.store.orders)

	// nothing consumed: the same token can be retried after topping up
	h.store.balances["u-1"] = 500000
	_, err = h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	assert.NoError(t, err)
}

func TestCommitDriftItemGone(t *testing.T) {
	h := newCommitHarness(t)
	token := h.issueToken(t, validInput())

	it := h.reg.items["ML-86DM"]
	it.IsAvailable = false
	h.reg.items["ML-86DM"] = it

	_, err := h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	assert.ErrorIs(t, err, domain.ErrSKUNotFound)
	assert.Empty(t, h.store.orders)
}

func TestCommitDriftPromoDeactivated(t *testing.T) {
	h := newCommitHarness(t)

	in := validInput()
	in.PromoCode = "JUNE10"
	token := h.issueToken(t, in)

	p := h.reg.promos["JUNE10"]
	p.IsActive = false
	h.reg.promos["JUNE10"] = p

	_, err := h.uc.Execute(context.Background(), CommitInput{Token: token, UserID: "u-1"})
	var pe *domain.PromoError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, domain.ReasonPromoNotActive, pe.Reason)
}

// Per-user quota enforced at commit time: the quota re-check under the
// write rejects the second token even though both were quoted eligible.
func TestCommitQuotaRecheckedUnderWrite(t *testing.T) {
	h := newCommitHarness(t)
	p := h.reg.promos["JUNE10"]
	p.MaxUsagePerUser = 1
	h.reg.promos["JUNE10"] = p

	in := validInput()
	in.PromoCode = "JUNE10"
	tok1 := h.issueToken(t, in)
	tok2 := h.issueToken(t, in)

	_, err := h.uc.Execute(context.Background(), CommitInput{Token: tok1, UserID: "u-1"})
	require.NoError(t, err)

	_, err = h.uc.Execute(context.Background(), CommitInput{Token: tok2, UserID: "u-1"})
	var pe *domain.PromoError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, domain.ReasonUserUsageLimitExceeded, pe.Reason)
	assert.Len(t, h.store.orders, 1)
}
