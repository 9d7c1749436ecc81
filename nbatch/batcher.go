package nbatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/juchiast/neovide/nchan"
	"github.com/juchiast/neovide/nevent"
)

// Config is the configuration for a [Batcher].
type Config struct {
	// How often [*Batcher.Run] flushes queued items.
	// Must be positive.
	Interval time.Duration

	// Source of ticks for Run.
	// If nil, the wall clock is used.
	Clock clock.Clock
}

// validate panics if there are any illegal settings in the configuration.
func (c Config) validate() {
	var panicErrs error

	if c.Interval <= 0 {
		panicErrs = errors.Join(
			panicErrs,
			errors.New("Config.Interval must be positive"),
		)
	}

	if panicErrs != nil {
		panic(panicErrs)
	}
}

// Batcher queues items of type T and publishes them as a []T.
type Batcher[T any] struct {
	log *slog.Logger

	in nchan.Sender[T]

	// Guards draining pending, which only supports one reader,
	// and keeps concurrent flushes in order.
	mu      sync.Mutex
	pending *nchan.Receiver[T]

	out nchan.LoggingSender[[]T]

	ticker *clock.Ticker
}

// New returns a Batcher that publishes []T through a.
// The batch channel is created immediately,
// so batches published before a consumer registers for []T are kept.
func New[T any](log *slog.Logger, a *nevent.Aggregator, cfg Config) *Batcher[T] {
	cfg.validate()

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	in, pending := nchan.New[T]()

	return &Batcher[T]{
		log: log,

		in:      in,
		pending: pending,

		out: nevent.SenderFor[[]T](a),

		// Created here rather than in Run,
		// so that a tick is not missed if Run starts late.
		ticker: clk.Ticker(cfg.Interval),
	}
}

// Queue adds v to the next batch. It never blocks.
func (b *Batcher[T]) Queue(v T) error {
	return b.in.Send(v)
}

// Pending reports the number of queued items.
func (b *Batcher[T]) Pending() int {
	return b.pending.Len()
}

// SendBatch publishes every queued item as one slice, in queue order.
// The slice is published even if it is empty.
func (b *Batcher[T]) SendBatch() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := make([]T, 0, b.pending.Len())
	for {
		v, ok := b.pending.TryRecv()
		if !ok {
			break
		}
		batch = append(batch, v)
	}

	return b.out.Send(batch)
}

// Run flushes queued items on every tick of the configured interval,
// skipping ticks when nothing is queued.
// When ctx is canceled, Run flushes any remaining items and returns.
func (b *Batcher[T]) Run(ctx context.Context) {
	defer b.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if b.pending.Len() > 0 {
				b.flush()
			}
			return

		case <-b.ticker.C:
			if b.pending.Len() == 0 {
				continue
			}
			b.flush()
		}
	}
}

func (b *Batcher[T]) flush() {
	if err := b.SendBatch(); err != nil {
		b.log.Warn("Failed to send batch", "err", err)
	}
}
