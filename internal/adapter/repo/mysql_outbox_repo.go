package repo

import (
	"context"
	"database/sql"
	"time"
)

// OutboxRow is one undelivered event.
type OutboxRow struct {
	ID      int64
	Channel string
	Payload []byte
}

type MySQLOutboxRepo struct{ db *sql.DB }

func NewMySQLOutboxRepo(db *sql.DB) *MySQLOutboxRepo { return &MySQLOutboxRepo{db: db} }

// InsertTx enqueues an event in the same transaction as the state change
// it describes; the publisher drains it later.
func (r *MySQLOutboxRepo) InsertTx(ctx context.Context, tx *sql.Tx, channel string, payload []byte) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO outbox (channel, payload, status, retry_count, next_attempt_at, created_at)
VALUES (?, ?, 'PENDING', 0, NOW(), NOW())`, channel, payload)
	return err
}

func (r *MySQLOutboxRepo) FetchPending(ctx context.Context, limit int) ([]OutboxRow, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, channel, payload FROM outbox
WHERE status = 'PENDING' AND next_attempt_at <= NOW()
ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutboxRow
	for rows.Next() {
		var r OutboxRow
		if err := rows.Scan(&r.ID, &r.Channel, &r.Payload); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (r *MySQLOutboxRepo) MarkSent(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox SET status = 'SENT', sent_at = NOW() WHERE id = ?`, id)
	return err
}

// MarkRetry pushes the next attempt out with a linear backoff on the retry
// count.
func (r *MySQLOutboxRepo) MarkRetry(ctx context.Context, id int64, backoff time.Duration) error {
	_, err := r.db.ExecContext(ctx, `
UPDATE outbox SET retry_count = retry_count + 1,
       next_attempt_at = DATE_ADD(NOW(), INTERVAL ? SECOND)
WHERE id = ?`, int(backoff.Seconds()), id)
	return err
}
