package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

type MySQLTokenRepo struct{ db *sql.DB }

func NewMySQLTokenRepo(db *sql.DB) *MySQLTokenRepo { return &MySQLTokenRepo{db: db} }

func (r *MySQLTokenRepo) Create(ctx context.Context, tok *domain.ValidationToken, draft usecase.OrderDraft) error {
	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO validation_tokens
  (id, context_hash, subtotal, discount, fee, total, draft_json, issued_at, expires_at, consumed_at)
VALUES (?,?,?,?,?,?,?,?,?,NULL)`,
		tok.ID, tok.ContextHash,
		tok.Breakdown.Subtotal, tok.Breakdown.Discount, tok.Breakdown.Fee, tok.Breakdown.Total,
		draftJSON, tok.IssuedAt, tok.ExpiresAt,
	)
	return err
}

func (r *MySQLTokenRepo) GetByID(ctx context.Context, id string) (*domain.ValidationToken, *usecase.OrderDraft, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, context_hash, subtotal, discount, fee, total, draft_json, issued_at, expires_at, consumed_at
FROM validation_tokens WHERE id = ?`, id)

	var tok domain.ValidationToken
	var draftJSON []byte
	var consumedAt sql.NullTime
	err := row.Scan(
		&tok.ID, &tok.ContextHash,
		&tok.Breakdown.Subtotal, &tok.Breakdown.Discount, &tok.Breakdown.Fee, &tok.Breakdown.Total,
		&draftJSON, &tok.IssuedAt, &tok.ExpiresAt, &consumedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if consumedAt.Valid {
		t := consumedAt.Time
		tok.ConsumedAt = &t
	}
	var draft usecase.OrderDraft
	if err := json.Unmarshal(draftJSON, &draft); err != nil {
		return nil, nil, err
	}
	return &tok, &draft, nil
}

// ConsumeTx flips consumed_at exactly once; the conditional update is the
// serialization point for concurrent commits of the same token.
func (r *MySQLTokenRepo) ConsumeTx(ctx context.Context, tx *sql.Tx, id string, now time.Time) error {
	res, err := tx.ExecContext(ctx, `
UPDATE validation_tokens SET consumed_at = ?
WHERE id = ? AND consumed_at IS NULL AND expires_at > ?`, now, id, now)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	// Nothing updated: classify why.
	var expiresAt time.Time
	var consumedAt sql.NullTime
	err = tx.QueryRowContext(ctx,
		`SELECT expires_at, consumed_at FROM validation_tokens WHERE id = ?`, id,
	).Scan(&expiresAt, &consumedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrInvalidToken
	case err != nil:
		return err
	case consumedAt.Valid:
		return domain.ErrTokenAlreadyUsed
	default:
		return domain.ErrTokenExpired
	}
}

var _ usecase.TokenRepo = (*MySQLTokenRepo)(nil)
