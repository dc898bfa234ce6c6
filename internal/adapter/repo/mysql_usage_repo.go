package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

const (
	actorUser   = "user"
	actorDevice = "device"
	actorIP     = "ip"
)

// MySQLUsageRepo holds promo redemption counters in three aggregates:
// a global row, a per-day row, and per-actor rows (user/device/ip).
// Reads are plain read-committed; increments run inside the commit
// transaction with the row locked.
type MySQLUsageRepo struct{ db *sql.DB }

func NewMySQLUsageRepo(db *sql.DB) *MySQLUsageRepo { return &MySQLUsageRepo{db: db} }

func (r *MySQLUsageRepo) Counters(ctx context.Context, promoCode, userID, deviceID, ip string, now time.Time) (domain.UsageCounters, error) {
	var c domain.UsageCounters

	err := r.db.QueryRowContext(ctx,
		`SELECT used_count FROM promo_usage_total WHERE promo_code = ?`, promoCode,
	).Scan(&c.Total)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return c, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT used_count FROM promo_usage_daily WHERE promo_code = ? AND usage_date = ?`,
		promoCode, now.Format("2006-01-02"),
	).Scan(&c.Today)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return c, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT actor_kind, used_count FROM promo_usage_actor
WHERE promo_code = ?
  AND ((actor_kind = ? AND actor_id = ?)
    OR (actor_kind = ? AND actor_id = ?)
    OR (actor_kind = ? AND actor_id = ?))`,
		promoCode, actorUser, userID, actorDevice, deviceID, actorIP, ip)
	if err != nil {
		return c, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int64
		if err := rows.Scan(&kind, &n); err != nil {
			return c, err
		}
		switch kind {
		case actorUser:
			c.ByUser = n
		case actorDevice:
			c.ByDevice = n
		case actorIP:
			c.ByIP = n
		}
	}
	return c, rows.Err()
}

// IncrementTx bumps every relevant counter under its quota guard, all
// inside the caller's transaction. A failed guard returns the matching
// ineligibility reason so the whole commit rolls back.
func (r *MySQLUsageRepo) IncrementTx(ctx context.Context, tx *sql.Tx, promo domain.PromoCode, userID, deviceID, ip string, now time.Time) error {
	if err := incrementGuarded(ctx, tx,
		`INSERT IGNORE INTO promo_usage_total (promo_code, used_count) VALUES (?, 0)`,
		[]any{promo.Code},
		`SELECT used_count FROM promo_usage_total WHERE promo_code = ? FOR UPDATE`,
		[]any{promo.Code},
		`UPDATE promo_usage_total SET used_count = used_count + 1 WHERE promo_code = ?`,
		[]any{promo.Code},
		promo.MaxUsageTotal, domain.ReasonUsageLimitExceeded,
	); err != nil {
		return err
	}

	day := now.Format("2006-01-02")
	if err := incrementGuarded(ctx, tx,
		`INSERT IGNORE INTO promo_usage_daily (promo_code, usage_date, used_count) VALUES (?, ?, 0)`,
		[]any{promo.Code, day},
		`SELECT used_count FROM promo_usage_daily WHERE promo_code = ? AND usage_date = ? FOR UPDATE`,
		[]any{promo.Code, day},
		`UPDATE promo_usage_daily SET used_count = used_count + 1 WHERE promo_code = ? AND usage_date = ?`,
		[]any{promo.Code, day},
		promo.MaxUsagePerDay, domain.ReasonDailyUsageLimitExceeded,
	); err != nil {
		return err
	}

	actors := []struct {
		kind   string
		id     string
		max    int64
		reason domain.Reason
	}{
		{actorUser, userID, promo.MaxUsagePerUser, domain.ReasonUserUsageLimitExceeded},
		{actorDevice, deviceID, promo.MaxUsagePerDevice, domain.ReasonDeviceUsageLimitExceed},
		{actorIP, ip, promo.MaxUsagePerIP, domain.ReasonIPUsageLimitExceeded},
	}
	for _, a := range actors {
		if a.id == "" {
			continue
		}
		if err := incrementGuarded(ctx, tx,
			`INSERT IGNORE INTO promo_usage_actor (promo_code, actor_kind, actor_id, used_count) VALUES (?, ?, ?, 0)`,
			[]any{promo.Code, a.kind, a.id},
			`SELECT used_count FROM promo_usage_actor WHERE promo_code = ? AND actor_kind = ? AND actor_id = ? FOR UPDATE`,
			[]any{promo.Code, a.kind, a.id},
			`UPDATE promo_usage_actor SET used_count = used_count + 1 WHERE promo_code = ? AND actor_kind = ? AND actor_id = ?`,
			[]any{promo.Code, a.kind, a.id},
			a.max, a.reason,
		); err != nil {
			return err
		}
	}
	return nil
}

// incrementGuarded is the read-modify-write: ensure the row exists, lock
// it, re-check the quota under the lock, then bump. Zero max means
// unlimited.
func incrementGuarded(ctx context.Context, tx *sql.Tx, ensureQ string, ensureArgs []any, lockQ string, lockArgs []any, bumpQ string, bumpArgs []any, max int64, reason domain.Reason) error {
	if _, err := tx.ExecContext(ctx, ensureQ, ensureArgs...); err != nil {
		return err
	}
	var used int64
	if err := tx.QueryRowContext(ctx, lockQ, lockArgs...).Scan(&used); err != nil {
		return err
	}
	if max > 0 && used >= max {
		return &domain.PromoError{Reason: reason}
	}
	_, err := tx.ExecContext(ctx, bumpQ, bumpArgs...)
	return err
}

var _ usecase.UsageRepo = (*MySQLUsageRepo)(nil)
