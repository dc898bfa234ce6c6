package repo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

type MySQLPromoRepo struct{ db *sql.DB }

func NewMySQLPromoRepo(db *sql.DB) *MySQLPromoRepo { return &MySQLPromoRepo{db: db} }

func (r *MySQLPromoRepo) GetPromo(ctx context.Context, code string) (*domain.PromoCode, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT code, discount_kind, discount_bps, discount_amount, max_discount_amount,
       min_order_amount, start_at, expired_at, days_available,
       max_usage_total, max_usage_per_user, max_usage_per_device,
       max_usage_per_ip, max_usage_per_day, is_active
FROM promo_codes WHERE code = ?`, code)

	var p domain.PromoCode
	var kind, days string
	err := row.Scan(
		&p.Code, &kind, &p.DiscountBps, &p.DiscountAmount, &p.MaxDiscountAmount,
		&p.MinOrderAmount, &p.StartAt, &p.ExpiredAt, &days,
		&p.MaxUsageTotal, &p.MaxUsagePerUser, &p.MaxUsagePerDevice,
		&p.MaxUsagePerIP, &p.MaxUsagePerDay, &p.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	p.Kind = domain.DiscountKind(kind)
	p.DaysAvailable = parseDays(days)

	if p.Products, err = r.applicability(ctx, p.Code, "product"); err != nil {
		return nil, err
	}
	if p.PaymentChannels, err = r.applicability(ctx, p.Code, "channel"); err != nil {
		return nil, err
	}
	if p.Regions, err = r.applicability(ctx, p.Code, "region"); err != nil {
		return nil, err
	}
	return &p, nil
}

// applicability rows restrict a promo to specific products, channels, or
// regions; no rows means no restriction.
func (r *MySQLPromoRepo) applicability(ctx context.Context, promoCode, kind string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT target_code FROM promo_applicability WHERE promo_code = ? AND kind = ?`, promoCode, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// days_available is a comma-joined list of weekday numbers (0=Sunday),
// empty meaning every day.
func parseDays(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}

var _ usecase.PromoRepo = (*MySQLPromoRepo)(nil)
