package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/mail"
	"regexp"
	"time"

	"github.com/google/uuid"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/pricing"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

type InquiryInput struct {
	ItemCode       string
	Quantity       int
	ChannelCode    string
	PromoCode      string
	Phone          string
	Email          string
	Region         string
	UserID         string
	DeviceID       string
	IPAddress      string
	IdempotencyKey string
}

type InquiryOutput struct {
	Token     string
	Breakdown domain.PriceBreakdown
	ExpiresAt time.Time
}

// CreateInquiry prices an order draft and issues a single-use validation
// token bound to the exact breakdown. No balance, counter, or order state
// is touched here.
type CreateInquiry struct {
	catalog  CatalogRepo
	channels ChannelRepo
	promos   PromoRepo
	usage    UsageRepo
	tokens   TokenRepo
	idem     IdempotencyStore
	tokenTTL time.Duration
	now      func() time.Time
}

func NewCreateInquiry(catalog CatalogRepo, channels ChannelRepo, promos PromoRepo, usage UsageRepo, tokens TokenRepo, idem IdempotencyStore, tokenTTL time.Duration) *CreateInquiry {
	if tokenTTL <= 0 {
		tokenTTL = domain.TokenTTL
	}
	return &CreateInquiry{
		catalog:  catalog,
		channels: channels,
		promos:   promos,
		usage:    usage,
		tokens:   tokens,
		idem:     idem,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

func (uc *CreateInquiry) Execute(ctx context.Context, in InquiryInput) (InquiryOutput, error) {
	if err := validateInquiryInput(in); err != nil {
		return InquiryOutput{}, err
	}
	now := uc.now().UTC()

	// Fast path: same idempotency key returns the earlier quote while its
	// token is still live.
	scope := idemScope(in)
	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, scope, in.IdempotencyKey); ok {
			tok, _, err := uc.tokens.GetByID(ctx, id)
			if err == nil && tok != nil && !tok.Consumed() && !tok.Expired(now) {
				return InquiryOutput{Token: tok.ID, Breakdown: tok.Breakdown, ExpiresAt: tok.ExpiresAt}, nil
			}
		}
		ok, err := uc.idem.TryLock(ctx, scope, in.IdempotencyKey)
		if err != nil {
			return InquiryOutput{}, err
		}
		if !ok {
			return InquiryOutput{}, domain.ErrDuplicateInquiry
		}
	}

	item, err := uc.catalog.GetItem(ctx, in.ItemCode)
	if err != nil {
		return InquiryOutput{}, err
	}
	if item == nil {
		return InquiryOutput{}, domain.ErrSKUNotFound
	}
	if !item.IsAvailable {
		return InquiryOutput{}, domain.NewValidationError("itemCode", "item is not available")
	}

	ch, err := uc.channels.GetChannel(ctx, in.ChannelCode)
	if err != nil {
		return InquiryOutput{}, err
	}
	if ch == nil {
		return InquiryOutput{}, domain.ErrChannelNotFound
	}
	if !ch.IsActive || !ch.Supports(item.OrderType) {
		return InquiryOutput{}, domain.ErrChannelUnavailable
	}
	if ch.RequiresAuth && in.UserID == "" {
		return InquiryOutput{}, domain.ErrAuthenticationRequired
	}

	var promo *domain.PromoCode
	var counters domain.UsageCounters
	if in.PromoCode != "" {
		promo, err = uc.promos.GetPromo(ctx, in.PromoCode)
		if err != nil {
			return InquiryOutput{}, err
		}
		if promo == nil {
			return InquiryOutput{}, &domain.PromoError{Reason: domain.ReasonPromoNotFound}
		}
		counters, err = uc.usage.Counters(ctx, promo.Code, in.UserID, in.DeviceID, in.IPAddress, now)
		if err != nil {
			return InquiryOutput{}, err
		}
	}

	octx := pricing.OrderContext{
		ProductCode: in.ItemCode,
		PaymentCode: in.ChannelCode,
		Region:      in.Region,
		UserID:      in.UserID,
		DeviceID:    in.DeviceID,
		IPAddress:   in.IPAddress,
		Now:         now,
	}
	quote, err := pricing.Assemble(*item, in.Quantity, *ch, promo, octx, counters)
	if err != nil {
		return InquiryOutput{}, err
	}
	if promo != nil && !quote.PromoApplied() {
		// never apply a silent zero discount
		return InquiryOutput{}, &domain.PromoError{Reason: quote.Reason}
	}

	draft := OrderDraft{
		ItemCode:    in.ItemCode,
		Quantity:    in.Quantity,
		ChannelCode: in.ChannelCode,
		PromoCode:   in.PromoCode,
		OrderType:   item.OrderType,
		Phone:       in.Phone,
		Email:       in.Email,
		Region:      in.Region,
		UserID:      in.UserID,
		DeviceID:    in.DeviceID,
		IPAddress:   in.IPAddress,
	}
	tok := &domain.ValidationToken{
		ID:          uuid.NewString(),
		ContextHash: hashDraft(draft),
		Breakdown:   quote.Breakdown,
		IssuedAt:    now,
		ExpiresAt:   now.Add(uc.tokenTTL),
	}
	if err := uc.tokens.Create(ctx, tok, draft); err != nil {
		return InquiryOutput{}, err
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, scope, in.IdempotencyKey, tok.ID)
	}
	return InquiryOutput{Token: tok.ID, Breakdown: tok.Breakdown, ExpiresAt: tok.ExpiresAt}, nil
}

func validateInquiryInput(in InquiryInput) error {
	fields := map[string]string{}
	if in.ItemCode == "" {
		fields["itemCode"] = "required"
	}
	if in.ChannelCode == "" {
		fields["channelCode"] = "required"
	}
	if !domain.ValidQuantity(in.Quantity) {
		fields["quantity"] = "must be between 1 and 10"
	}
	if in.Phone == "" {
		fields["phone"] = "required"
	} else if !phonePattern.MatchString(in.Phone) {
		fields["phone"] = "malformed phone number"
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			fields["email"] = "malformed email address"
		}
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func idemScope(in InquiryInput) string {
	switch {
	case in.UserID != "":
		return in.UserID
	case in.DeviceID != "":
		return in.DeviceID
	default:
		return in.IPAddress
	}
}

// hashDraft is the order-context hash the token is bound to.
func hashDraft(d OrderDraft) string {
	b, _ := json.Marshal(d)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
