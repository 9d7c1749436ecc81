// Package nchan contains the channel primitives used by the event aggregator.
//
// The [Sender] and [Receiver] pair form an unbounded,
// multi-producer, single-consumer queue.
// Sends never block, and a Receiver can be used in a select statement
// through [*Receiver.Ready].
//
// [LoggingSender] decorates a Sender so that every value sent
// is written to a [log/slog.Logger] at [LevelTrace],
// which makes traffic through the aggregator observable
// without touching the producers or the consumer.
package nchan
