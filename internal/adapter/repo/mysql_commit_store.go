package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/topupid/checkout-api/internal/usecase"
)

const outboxChannelOrderCommitted = "checkout.order.committed.v1"

// MySQLCommitStore runs the whole commit as one transaction: token
// consumption, balance debit, usage increments, order insert, outbox
// insert. Any business failure rolls the lot back, leaving the token
// unconsumed so the client can retry or re-inquire.
type MySQLCommitStore struct {
	db       *sql.DB
	tokens   *MySQLTokenRepo
	usage    *MySQLUsageRepo
	orders   *MySQLOrderRepo
	balances *MySQLBalanceRepo
	outbox   *MySQLOutboxRepo
}

func NewMySQLCommitStore(db *sql.DB, tokens *MySQLTokenRepo, usage *MySQLUsageRepo, orders *MySQLOrderRepo, balances *MySQLBalanceRepo, outbox *MySQLOutboxRepo) *MySQLCommitStore {
	return &MySQLCommitStore{db: db, tokens: tokens, usage: usage, orders: orders, balances: balances, outbox: outbox}
}

func (s *MySQLCommitStore) Commit(ctx context.Context, p usecase.CommitParams) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin commit tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Token first: it is the serialization point for this commit.
	if err := s.tokens.ConsumeTx(ctx, tx, p.TokenID, p.Now); err != nil {
		return err
	}

	if p.DebitUserID != "" {
		if err := s.balances.DebitTx(ctx, tx, p.DebitUserID, p.Order.Breakdown.Total); err != nil {
			return err
		}
	}

	if p.Promo != nil {
		o := p.Order
		if err := s.usage.IncrementTx(ctx, tx, *p.Promo, o.UserID, o.DeviceID, o.IPAddress, p.Now); err != nil {
			return err
		}
	}

	if err := s.orders.InsertTx(ctx, tx, p.Order); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	payload, err := json.Marshal(usecase.OrderCommittedMsg{
		InvoiceNumber: p.Order.InvoiceNumber,
		UserID:        p.Order.UserID,
		ItemCode:      p.Order.ItemCode,
		Quantity:      p.Order.Quantity,
		ChannelCode:   p.Order.ChannelCode,
		Total:         p.Order.Breakdown.Total,
		Status:        string(p.Order.Status),
	})
	if err != nil {
		return err
	}
	if err := s.outbox.InsertTx(ctx, tx, outboxChannelOrderCommitted, payload); err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

var _ usecase.CommitStore = (*MySQLCommitStore)(nil)
