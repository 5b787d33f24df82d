// Package notify carries live vote updates between instances over
// PostgreSQL LISTEN/NOTIFY.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/election-backend/internal/adapter/postgres"
	"github.com/heartmarshall/election-backend/internal/domain"
)

// Publisher sends live updates with pg_notify.
type Publisher struct {
	pool    *pgxpool.Pool
	channel string
}

// NewPublisher creates a Publisher for the given channel.
func NewPublisher(pool *pgxpool.Pool, channel string) *Publisher {
	return &Publisher{pool: pool, channel: channel}
}

// Publish sends one update. Inside a transaction the notification is
// delivered on commit.
func (p *Publisher) Publish(ctx context.Context, update domain.LiveUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshal live update: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, p.pool).Exec(ctx, `SELECT pg_notify($1, $2)`, p.channel, string(payload)); err != nil {
		return fmt.Errorf("pg_notify %s: %w", p.channel, err)
	}
	return nil
}

// Listener receives live updates from a channel and hands them to a sink.
type Listener struct {
	pool    *pgxpool.Pool
	channel string
	log     *slog.Logger
	backoff time.Duration

	connected atomic.Bool
}

// NewListener creates a Listener for the given channel.
func NewListener(pool *pgxpool.Pool, channel string, log *slog.Logger) *Listener {
	return &Listener{
		pool:    pool,
		channel: channel,
		log:     log.With("component", "notify_listener"),
		backoff: time.Second,
	}
}

// Run listens until ctx is cancelled, reconnecting after connection errors.
// It returns nil on cancellation.
func (l *Listener) Run(ctx context.Context, sink func(domain.LiveUpdate)) error {
	for {
		err := l.listen(ctx, sink)
		if ctx.Err() != nil {
			return nil
		}
		l.log.WarnContext(ctx, "live listener disconnected, retrying",
			slog.String("channel", l.channel),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.backoff):
		}
	}
}

// Connected reports whether the listener currently holds an active LISTEN.
func (l *Listener) Connected() bool {
	return l.connected.Load()
}

func (l *Listener) listen(ctx context.Context, sink func(domain.LiveUpdate)) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	l.connected.Store(true)
	defer l.connected.Store(false)
	l.log.InfoContext(ctx, "listening for live updates", slog.String("channel", l.channel))

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// The connection is mid-wait; drop it rather than return it to the pool.
				_ = conn.Conn().Close(context.Background())
			}
			return fmt.Errorf("wait for notification: %w", err)
		}

		var update domain.LiveUpdate
		if err := json.Unmarshal([]byte(n.Payload), &update); err != nil {
			l.log.WarnContext(ctx, "malformed live update",
				slog.String("payload", n.Payload),
				slog.String("error", err.Error()),
			)
			continue
		}
		sink(update)
	}
}
