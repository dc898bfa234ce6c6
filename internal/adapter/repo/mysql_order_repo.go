package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// InsertTx writes the committed order with its frozen breakdown inside the
// commit transaction.
func (r *MySQLOrderRepo) InsertTx(ctx context.Context, tx *sql.Tx, o *domain.Order) error {
	_, err := tx.ExecContext(ctx, `
INSERT INTO orders
  (id, invoice_number, user_id, device_id, ip_address, item_code, quantity,
   channel_code, promo_code, phone, email, region,
   subtotal, discount, fee, total, status, token_id, created_at, updated_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,NOW())`,
		o.ID, o.InvoiceNumber, o.UserID, o.DeviceID, o.IPAddress, o.ItemCode, o.Quantity,
		o.ChannelCode, o.PromoCode, o.Phone, o.Email, o.Region,
		o.Breakdown.Subtotal, o.Breakdown.Discount, o.Breakdown.Fee, o.Breakdown.Total,
		string(o.Status), o.TokenID, o.CreatedAt,
	)
	return err
}

func (r *MySQLOrderRepo) GetByInvoice(ctx context.Context, invoice string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, invoice_number, user_id, device_id, ip_address, item_code, quantity,
       channel_code, promo_code, phone, email, region,
       subtotal, discount, fee, total, status, token_id, created_at
FROM orders WHERE invoice_number = ?`, invoice)

	var o domain.Order
	var status string
	err := row.Scan(
		&o.ID, &o.InvoiceNumber, &o.UserID, &o.DeviceID, &o.IPAddress, &o.ItemCode, &o.Quantity,
		&o.ChannelCode, &o.PromoCode, &o.Phone, &o.Email, &o.Region,
		&o.Breakdown.Subtotal, &o.Breakdown.Discount, &o.Breakdown.Fee, &o.Breakdown.Total,
		&status, &o.TokenID, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	o.Status = domain.Status(status)
	return &o, nil
}

func (r *MySQLOrderRepo) UpdateStatus(ctx context.Context, invoice string, to domain.Status) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW() WHERE invoice_number = ?`,
		string(to), invoice)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// UpdateStatusIf is a guarded transition; rows == 0 means not found or the
// order already left fromStatus.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, invoice string, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status = ?, updated_at = NOW()
WHERE invoice_number = ? AND status = ?`,
		string(to), invoice, string(from))
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
