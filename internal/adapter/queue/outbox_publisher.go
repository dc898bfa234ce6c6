package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/topupid/checkout-api/internal/adapter/repo"
	"github.com/topupid/checkout-api/internal/logging"
)

// OutboxPublisher drains the transactional outbox into RabbitMQ. Rows are
// written in the same transaction as the order, so a crash between commit
// and publish only delays the event, never loses it.
type OutboxPublisher struct {
	outbox   *repo.MySQLOutboxRepo
	producer *RabbitProducer
	interval time.Duration
	batch    int
}

func NewOutboxPublisher(outbox *repo.MySQLOutboxRepo, producer *RabbitProducer, interval time.Duration) *OutboxPublisher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &OutboxPublisher{outbox: outbox, producer: producer, interval: interval, batch: 100}
}

// Run blocks until ctx is done. Call in a goroutine.
func (p *OutboxPublisher) Run(ctx context.Context) {
	l := logging.New("outbox")
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.drain(ctx, l)
		}
	}
}

func (p *OutboxPublisher) drain(ctx context.Context, l *slog.Logger) {
	rows, err := p.outbox.FetchPending(ctx, p.batch)
	if err != nil {
		l.Error("fetch pending", "err", err.Error())
		return
	}
	for _, row := range rows {
		if err := p.producer.Publish(ctx, row.Payload); err != nil {
			l.Error("publish", "id", row.ID, "err", err.Error())
			_ = p.outbox.MarkRetry(ctx, row.ID, 30*time.Second)
			continue
		}
		if err := p.outbox.MarkSent(ctx, row.ID); err != nil {
			// next sweep re-sends; the consumer side is idempotent
			l.Error("mark sent", "id", row.ID, "err", err.Error())
		}
	}
}
