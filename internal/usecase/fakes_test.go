package usecase

import (
	"context"
	"sync"
	"time"

	domain "github.com/topupid/checkout-api/internal/entity"
)

type fakeRegistry struct {
	items    map[string]domain.Item
	channels map[string]domain.PaymentChannel
	promos   map[string]domain.PromoCode
	counters domain.UsageCounters
}

func (f *fakeRegistry) GetItem(_ context.Context, code string) (*domain.Item, error) {
	if it, ok := f.items[code]; ok {
		return &it, nil
	}
	return nil, nil
}

func (f *fakeRegistry) GetChannel(_ context.Context, code string) (*domain.PaymentChannel, error) {
	if ch, ok := f.channels[code]; ok {
		return &ch, nil
	}
	return nil, nil
}

func (f *fakeRegistry) GetPromo(_ context.Context, code string) (*domain.PromoCode, error) {
	if p, ok := f.promos[code]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeRegistry) Counters(_ context.Context, _, _, _, _ string, _ time.Time) (domain.UsageCounters, error) {
	return f.counters, nil
}

type tokenRow struct {
	tok   domain.ValidationToken
	draft OrderDraft
}

type fakeTokenRepo struct {
	mu   sync.Mutex
	rows map[string]*tokenRow
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{rows: map[string]*tokenRow{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, tok *domain.ValidationToken, draft OrderDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[tok.ID] = &tokenRow{tok: *tok, draft: draft}
	return nil
}

func (f *fakeTokenRepo) GetByID(_ context.Context, id string) (*domain.ValidationToken, *OrderDraft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, nil, nil
	}
	tok, draft := row.tok, row.draft
	return &tok, &draft, nil
}

// fakeCommitStore mimics the transactional store: conditional token
// consumption is the serialization point, exactly as the SQL store does it
// with UPDATE ... WHERE consumed_at IS NULL.
type fakeCommitStore struct {
	mu       sync.Mutex
	tokens   *fakeTokenRepo
	balances map[string]int64
	orders   []domain.Order
	usage    map[string]int64 // per-user counts keyed promo|user
}

func newFakeCommitStore(tokens *fakeTokenRepo) *fakeCommitStore {
	return &fakeCommitStore{tokens: tokens, balances: map[string]int64{}, usage: map[string]int64{}}
}

func (f *fakeCommitStore) Commit(_ context.Context, p CommitParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens.mu.Lock()
	defer f.tokens.mu.Unlock()

	row, ok := f.tokens.rows[p.TokenID]
	if !ok {
		return domain.ErrInvalidToken
	}
	if row.tok.ConsumedAt != nil {
		return domain.ErrTokenAlreadyUsed
	}
	if p.Now.After(row.tok.ExpiresAt) {
		return domain.ErrTokenExpired
	}
	if p.DebitUserID != "" {
		if f.balances[p.DebitUserID] < p.Order.Breakdown.Total {
			return domain.ErrInsufficientBalance
		}
		f.balances[p.DebitUserID] -= p.Order.Breakdown.Total
	}
	if p.Promo != nil {
		key := p.Promo.Code + "|" + p.Order.UserID
		if p.Promo.MaxUsagePerUser > 0 && f.usage[key] >= p.Promo.MaxUsagePerUser {
			return &domain.PromoError{Reason: domain.ReasonUserUsageLimitExceeded}
		}
		f.usage[key]++
	}
	now := p.Now
	row.tok.ConsumedAt = &now
	f.orders = append(f.orders, *p.Order)
	return nil
}

type fakeIdem struct {
	mu     sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{locks: map[string]bool{}, values: map[string]string{}}
}

func (f *fakeIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := scope + ":" + key
	if f.locks[k] {
		return false, nil
	}
	f.locks[k] = true
	return true, nil
}

func (f *fakeIdem) Remember(_ context.Context, scope, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[scope+":"+key] = value
	return nil
}

func (f *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[scope+":"+key]
	return v, ok, nil
}
