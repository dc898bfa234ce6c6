package repo

import (
	"context"
	"database/sql"

	domain "github.com/topupid/checkout-api/internal/entity"
)

type MySQLBalanceRepo struct{ db *sql.DB }

func NewMySQLBalanceRepo(db *sql.DB) *MySQLBalanceRepo { return &MySQLBalanceRepo{db: db} }

// DebitTx performs the atomic check-and-debit inside the commit
// transaction. The availability predicate in the WHERE clause makes
// concurrent debits serialize on the balance row.
func (r *MySQLBalanceRepo) DebitTx(ctx context.Context, tx *sql.Tx, userID string, amount int64) error {
	res, err := tx.ExecContext(ctx, `
UPDATE balances SET available = available - ?, updated_at = NOW()
WHERE user_id = ? AND available >= ?`, amount, userID, amount)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

func (r *MySQLBalanceRepo) Available(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT available FROM balances WHERE user_id = ?`, userID,
	).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}
