package nevent

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/juchiast/neovide/nchan"
	"github.com/prometheus/client_golang/prometheus"
)

// Aggregator routes values to a single consumer per value type.
//
// Both maps are keyed by the [reflect.Type] of the payload.
// A senders entry always holds an [nchan.LoggingSender] for that type,
// and an unclaimed entry holds the matching *[nchan.Receiver]
// until a consumer calls [Register].
type Aggregator struct {
	log *slog.Logger

	m *metrics

	mu sync.Mutex

	senders   map[reflect.Type]any
	unclaimed map[reflect.Type]any

	closed bool
}

// Config is the configuration for an [Aggregator].
type Config struct {
	// Where to register the aggregator's metrics.
	// If nil, metrics are not collected.
	Registerer prometheus.Registerer
}

// New returns a new, empty Aggregator.
func New(log *slog.Logger, cfg Config) *Aggregator {
	return &Aggregator{
		log: log,

		m: newMetrics(cfg.Registerer),

		senders:   make(map[reflect.Type]any),
		unclaimed: make(map[reflect.Type]any),
	}
}

// Send publishes v to the consumer of type T.
//
// If nothing has been sent or registered for T yet,
// the channel is created and v is queued
// until a consumer calls [Register].
// Send never blocks on the consumer.
//
// If the consumer has closed its receiver,
// Send returns an [nchan.SendError] holding v.
// After [*Aggregator.Close], Send returns [ErrClosed].
func Send[T any](a *Aggregator, v T) error {
	key := reflect.TypeFor[T]()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return ErrClosed
	}

	// The first value for a type goes through the same wrapped sender
	// as every later value.
	err := senderLocked[T](a, key).Send(v)
	a.m.ObserveSend(key, err)
	return err
}

// SenderFor returns the sender for type T,
// creating the channel if necessary.
//
// The returned sender may be retained and used directly
// by a frequent publisher, avoiding the aggregator's lock.
// Values sent through it are delivered exactly as with [Send],
// but they are not counted in the aggregator's metrics.
// If a is closed, the returned sender is already closed.
func SenderFor[T any](a *Aggregator) nchan.LoggingSender[T] {
	key := reflect.TypeFor[T]()

	a.mu.Lock()
	defer a.mu.Unlock()

	return senderLocked[T](a, key)
}

// Register claims the receiver for type T.
//
// If values were already sent for T,
// the returned receiver yields them first, in order.
//
// Register panics with an [AlreadyRegisteredError]
// if called more than once for the same T on the same Aggregator.
// If a is closed, the returned receiver reports [nchan.ErrClosed]
// once any queued values are drained.
func Register[T any](a *Aggregator) *nchan.Receiver[T] {
	key := reflect.TypeFor[T]()

	a.mu.Lock()
	defer a.mu.Unlock()

	if e, ok := a.unclaimed[key]; ok {
		delete(a.unclaimed, key)

		rx, ok := e.(*nchan.Receiver[T])
		if !ok {
			panic(fmt.Errorf(
				"BUG: unclaimed receiver for %s has type %T", key, e,
			))
		}

		a.m.ObserveClaim(true)
		a.log.Debug("Claimed queued channel", "type", nchan.QualifiedName(key), "queued", rx.Len())
		return rx
	}

	if _, ok := a.senders[key]; ok {
		panic(AlreadyRegisteredError{Type: nchan.QualifiedName(key)})
	}

	tx, rx := nchan.New[T]()
	if a.closed {
		tx.Close()
	}
	a.senders[key] = nchan.AttachTyped(a.log, tx)

	a.m.ObserveClaim(false)
	a.log.Debug("Registered channel", "type", nchan.QualifiedName(key))
	return rx
}

// Close closes every sender held by a.
// Consumers receive any values still queued
// and then [nchan.ErrClosed].
//
// It is safe to call Close more than once.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true

	for _, e := range a.senders {
		e.(interface{ Close() }).Close()
	}

	a.log.Debug("Closed event aggregator", "channels", len(a.senders))
}

// senderLocked returns the sender for key,
// creating the channel and leaving its receiver unclaimed
// if no sender exists yet.
// The caller must hold a.mu.
func senderLocked[T any](a *Aggregator, key reflect.Type) nchan.LoggingSender[T] {
	if e, ok := a.senders[key]; ok {
		tx, ok := e.(nchan.LoggingSender[T])
		if !ok {
			// Only possible if two types shared a key.
			panic(fmt.Errorf(
				"BUG: sender for %s has type %T", key, e,
			))
		}
		return tx
	}

	tx, rx := nchan.New[T]()
	if a.closed {
		// Consumers of a late channel still see ErrClosed after draining.
		tx.Close()
	}
	ls := nchan.AttachTyped(a.log, tx)
	a.senders[key] = ls
	a.unclaimed[key] = rx

	a.m.ObserveCreate()
	a.log.Debug("Created channel before registration", "type", nchan.QualifiedName(key))
	return ls
}
