package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/topupid/checkout-api/internal/entity"
)

type CommitInput struct {
	Token string
	// UserID from the caller's session; must match the draft for
	// balance-funded channels.
	UserID string
}

type CommitOutput struct {
	InvoiceNumber string
	Breakdown     domain.PriceBreakdown
	Status        domain.Status
}

// CommitOrder redeems a validation token exactly once and turns the frozen
// quote into a persisted order. The token's breakdown is written as-is:
// the price quoted is the price charged.
type CommitOrder struct {
	tokens   TokenRepo
	catalog  CatalogRepo
	channels ChannelRepo
	promos   PromoRepo
	store    CommitStore
	cache    OrderCache
	now      func() time.Time
}

func NewCommitOrder(tokens TokenRepo, catalog CatalogRepo, channels ChannelRepo, promos PromoRepo, store CommitStore, cache OrderCache) *CommitOrder {
	return &CommitOrder{
		tokens:   tokens,
		catalog:  catalog,
		channels: channels,
		promos:   promos,
		store:    store,
		cache:    cache,
		now:      time.Now,
	}
}

func (uc *CommitOrder) Execute(ctx context.Context, in CommitInput) (CommitOutput, error) {
	if in.Token == "" {
		return CommitOutput{}, domain.ErrInvalidToken
	}
	now := uc.now().UTC()

	tok, draft, err := uc.tokens.GetByID(ctx, in.Token)
	if err != nil {
		return CommitOutput{}, err
	}
	if tok == nil || draft == nil {
		return CommitOutput{}, domain.ErrInvalidToken
	}
	if tok.Consumed() {
		return CommitOutput{}, domain.ErrTokenAlreadyUsed
	}
	if tok.Expired(now) {
		return CommitOutput{}, domain.ErrTokenExpired
	}

	// Drift guard: anything that went inactive between inquiry and commit
	// rejects the commit before the token is consumed, so the client can
	// simply re-inquire.
	item, err := uc.catalog.GetItem(ctx, draft.ItemCode)
	if err != nil {
		return CommitOutput{}, err
	}
	if item == nil || !item.IsAvailable {
		return CommitOutput{}, domain.ErrSKUNotFound
	}
	ch, err := uc.channels.GetChannel(ctx, draft.ChannelCode)
	if err != nil {
		return CommitOutput{}, err
	}
	if ch == nil || !ch.IsActive {
		return CommitOutput{}, domain.ErrChannelUnavailable
	}
	var promo *domain.PromoCode
	if draft.PromoCode != "" {
		promo, err = uc.promos.GetPromo(ctx, draft.PromoCode)
		if err != nil {
			return CommitOutput{}, err
		}
		if promo == nil || !promo.IsActive {
			return CommitOutput{}, &domain.PromoError{Reason: domain.ReasonPromoNotActive}
		}
	}

	var debitUser string
	status := domain.StatusPending
	if ch.FundedBy == domain.FundedBalance {
		if draft.UserID == "" || (in.UserID != "" && in.UserID != draft.UserID) {
			return CommitOutput{}, domain.ErrAuthenticationRequired
		}
		debitUser = draft.UserID
		// balance debit settles payment inside the commit transaction
		status = domain.StatusPaid
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		InvoiceNumber: newInvoiceNumber(now),
		UserID:        draft.UserID,
		DeviceID:      draft.DeviceID,
		IPAddress:     draft.IPAddress,
		ItemCode:      draft.ItemCode,
		Quantity:      draft.Quantity,
		ChannelCode:   draft.ChannelCode,
		PromoCode:     draft.PromoCode,
		Phone:         draft.Phone,
		Email:         draft.Email,
		Region:        draft.Region,
		Breakdown:     tok.Breakdown,
		Status:        status,
		TokenID:       tok.ID,
		CreatedAt:     now,
	}

	err = uc.store.Commit(ctx, CommitParams{
		TokenID:     tok.ID,
		Order:       order,
		Promo:       promo,
		DebitUserID: debitUser,
		Now:         now,
	})
	if err != nil {
		return CommitOutput{}, err
	}

	if uc.cache != nil {
		_ = uc.cache.SetStatus(ctx, order.InvoiceNumber, string(order.Status))
	}
	return CommitOutput{
		InvoiceNumber: order.InvoiceNumber,
		Breakdown:     order.Breakdown,
		Status:        order.Status,
	}, nil
}

func newInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "INV" + now.Format("20060102") + "-" + suffix
}
