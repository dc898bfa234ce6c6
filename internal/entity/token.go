package domain

import "time"

// TokenTTL is how long a quoted price stays committable.
const TokenTTL = 15 * time.Minute

// ValidationToken binds a frozen breakdown to the order context it was
// quoted for. Exactly one commit may consume it; the conditional update on
// consumed_at is the serialization point.
type ValidationToken struct {
	ID          string
	ContextHash string
	Breakdown   PriceBreakdown
	IssuedAt    time.Time
	ExpiresAt   time.Time
	ConsumedAt  *time.Time
}

func (t ValidationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t ValidationToken) Consumed() bool {
	return t.ConsumedAt != nil
}
