package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/topupid/checkout-api/internal/entity"
	"github.com/topupid/checkout-api/internal/usecase"
)

type MySQLChannelRepo struct{ db *sql.DB }

func NewMySQLChannelRepo(db *sql.DB) *MySQLChannelRepo { return &MySQLChannelRepo{db: db} }

func (r *MySQLChannelRepo) GetChannel(ctx context.Context, code string) (*domain.PaymentChannel, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT code, name, fee_type, fee_amount, fee_bps, min_amount, max_amount,
       supports_purchase, supports_deposit, requires_auth, funded_by, is_active
FROM payment_channels WHERE code = ?`, code)

	var ch domain.PaymentChannel
	var feeType, fundedBy string
	err := row.Scan(
		&ch.Code, &ch.Name, &feeType, &ch.FeeAmount, &ch.FeeBps,
		&ch.MinAmount, &ch.MaxAmount,
		&ch.SupportsPurchase, &ch.SupportsDeposit,
		&ch.RequiresAuth, &fundedBy, &ch.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	ch.FeeType = domain.FeeType(feeType)
	ch.FundedBy = domain.FundedBy(fundedBy)
	return &ch, nil
}

var _ usecase.ChannelRepo = (*MySQLChannelRepo)(nil)
