package usecase

import (
	"context"
	"time"

	domain "github.com/topupid/checkout-api/internal/entity"
)

// Registry reads. Lookups return (nil, nil) when the code is unknown so
// callers can map misses to their own error codes.
type CatalogRepo interface {
	GetItem(ctx context.Context, code string) (*domain.Item, error)
}

type ChannelRepo interface {
	GetChannel(ctx context.Context, code string) (*domain.PaymentChannel, error)
}

type PromoRepo interface {
	GetPromo(ctx context.Context, code string) (*domain.PromoCode, error)
}

// UsageRepo reads aggregate redemption counters as of now. Read-committed
// is enough here; the commit transaction re-checks quotas under the write.
type UsageRepo interface {
	Counters(ctx context.Context, promoCode, userID, deviceID, ip string, now time.Time) (domain.UsageCounters, error)
}

// TokenRepo persists validation tokens with their frozen breakdown and the
// order draft they were quoted for.
type TokenRepo interface {
	Create(ctx context.Context, tok *domain.ValidationToken, draft OrderDraft) error
	GetByID(ctx context.Context, id string) (*domain.ValidationToken, *OrderDraft, error)
}

// OrderDraft is the immutable order context an inquiry was priced against.
type OrderDraft struct {
	ItemCode    string           `json:"itemCode"`
	Quantity    int              `json:"quantity"`
	ChannelCode string           `json:"channelCode"`
	PromoCode   string           `json:"promoCode,omitempty"`
	OrderType   domain.OrderType `json:"orderType"`
	Phone       string           `json:"phone"`
	Email       string           `json:"email,omitempty"`
	Region      string           `json:"region"`
	UserID      string           `json:"userId,omitempty"`
	DeviceID    string           `json:"deviceId,omitempty"`
	IPAddress   string           `json:"ipAddress,omitempty"`
}

// CommitParams is everything the commit transaction needs. Promo is nil
// when no code was applied; DebitUserID is set only for balance-funded
// channels.
type CommitParams struct {
	TokenID     string
	Order       *domain.Order
	Promo       *domain.PromoCode
	DebitUserID string
	Now         time.Time
}

// CommitStore runs the entire commit as one transaction: consume token,
// debit balance, increment usage counters under their quota guards, insert
// the order and its outbox event. All-or-nothing.
type CommitStore interface {
	Commit(ctx context.Context, p CommitParams) error
}

type OrderRepo interface {
	GetByInvoice(ctx context.Context, invoice string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, invoice string, to domain.Status) error
	UpdateStatusIf(ctx context.Context, invoice string, from, to domain.Status) (bool, error)
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type OrderCache interface {
	SetStatus(ctx context.Context, invoice string, status string) error
	GetStatus(ctx context.Context, invoice string) (string, bool, error)
}
