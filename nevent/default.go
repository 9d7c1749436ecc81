package nevent

import (
	"log/slog"
	"sync"

	"github.com/juchiast/neovide/nchan"
	"github.com/prometheus/client_golang/prometheus"
)

var defaultAggregator = sync.OnceValue(func() *Aggregator {
	return New(
		slog.Default().With("sys", "event_aggregator"),
		Config{Registerer: prometheus.DefaultRegisterer},
	)
})

// Default returns the process-wide Aggregator,
// creating it on first use.
// It logs through the [slog.Default] logger in effect at that time,
// and registers its metrics with [prometheus.DefaultRegisterer].
func Default() *Aggregator {
	return defaultAggregator()
}

// Publish sends v through the [Default] aggregator.
// See [Send].
func Publish[T any](v T) error {
	return Send(Default(), v)
}

// Subscribe claims the receiver for T from the [Default] aggregator.
// It panics if called twice for the same T in one process.
// See [Register].
func Subscribe[T any]() *nchan.Receiver[T] {
	return Register[T](Default())
}

// PublisherFor returns the [Default] aggregator's sender for T.
// See [SenderFor].
func PublisherFor[T any]() nchan.LoggingSender[T] {
	return SenderFor[T](Default())
}
