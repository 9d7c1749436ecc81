package ntest

import (
	"context"
	"testing"
	"time"

	"github.com/juchiast/neovide/nchan"
)

// ScheduleDelay is how long the helpers wait
// for another goroutine to make progress.
// It is generous so that tests stay reliable under -race on slow machines.
const ScheduleDelay = 2 * time.Second

// ShortDelay bounds the checks that expect nothing to happen.
const ShortDelay = 20 * time.Millisecond

// ReceiveSoon receives a value from ch,
// failing the test if nothing arrives within [ScheduleDelay].
func ReceiveSoon[T any](t testing.TB, ch <-chan T) T {
	t.Helper()

	timer := time.NewTimer(ScheduleDelay)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatalf("timed out receiving from channel")
	}

	panic("unreachable")
}

// SendSoon sends v on ch,
// failing the test if the send cannot complete within [ScheduleDelay].
func SendSoon[T any](t testing.TB, ch chan<- T, v T) {
	t.Helper()

	timer := time.NewTimer(ScheduleDelay)
	defer timer.Stop()

	select {
	case ch <- v:
	case <-timer.C:
		t.Fatalf("timed out sending to channel")
	}
}

// IsSending fails the test if ch is not immediately readable.
func IsSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
	default:
		t.Fatalf("expected channel to be readable")
	}
}

// NotSending fails the test if ch becomes readable within [ShortDelay].
func NotSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	timer := time.NewTimer(ShortDelay)
	defer timer.Stop()

	select {
	case <-ch:
		t.Fatalf("expected channel not to be readable")
	case <-timer.C:
	}
}

// RecvSoon receives the next value from r,
// failing the test if none arrives within [ScheduleDelay].
func RecvSoon[T any](t testing.TB, r *nchan.Receiver[T]) T {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ScheduleDelay)
	defer cancel()

	v, err := r.Recv(ctx)
	if err != nil {
		t.Fatalf("failed to receive value: %v", err)
	}
	return v
}

// NotReceiving fails the test if r has a value queued.
func NotReceiving[T any](t testing.TB, r *nchan.Receiver[T]) {
	t.Helper()

	if v, ok := r.TryRecv(); ok {
		t.Fatalf("expected no value, got %v", v)
	}
}
