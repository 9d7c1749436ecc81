package nchan

import (
	"context"
	"sync"
	"sync/atomic"
)

// node is one link in the queue.
// The ready channel is closed once val and next are assigned,
// so a reader can safely read them after observing the close.
type node[T any] struct {
	ready chan struct{}
	next  *node[T]
	val   T
}

func newNode[T any]() *node[T] {
	return &node[T]{
		ready: make(chan struct{}),
	}
}

// set must only be called once per node, while holding the queue lock.
func (n *node[T]) set(v T) {
	n.val = v
	n.next = newNode[T]()
	close(n.ready)
}

// queue is the state shared by every copy of a Sender and its Receiver.
type queue[T any] struct {
	mu sync.Mutex

	// The empty node that the next send will populate.
	tail *node[T]

	rxClosed bool
	txClosed bool

	// Closed alongside setting txClosed.
	txDone chan struct{}

	// Number of values sent but not yet received.
	n atomic.Int64
}

// New returns a connected Sender and Receiver.
func New[T any]() (Sender[T], *Receiver[T]) {
	head := newNode[T]()
	q := &queue[T]{
		tail:   head,
		txDone: make(chan struct{}),
	}

	return Sender[T]{q: q}, &Receiver[T]{q: q, head: head}
}

// Sender is the write half of an unbounded queue.
//
// Sender values may be copied freely;
// every copy refers to the same queue.
// The zero value is not usable.
type Sender[T any] struct {
	q *queue[T]
}

// Send appends v to the queue without blocking.
//
// If the Receiver has been closed, Send returns a [SendError]
// holding v, and v is not enqueued.
// After [Sender.Close], Send returns [ErrClosed].
func (s Sender[T]) Send(v T) error {
	s.q.mu.Lock()
	defer s.q.mu.Unlock()

	if s.q.txClosed {
		return ErrClosed
	}

	if s.q.rxClosed {
		return SendError[T]{Value: v}
	}

	// Count first so Len never goes negative
	// when the receiver observes the value immediately.
	s.q.n.Add(1)
	s.q.tail.set(v)
	s.q.tail = s.q.tail.next

	return nil
}

// Close indicates that no further values will be sent.
// The Receiver may still drain any values already queued.
//
// Close applies to every copy of s, and it is safe to call more than once.
func (s Sender[T]) Close() {
	s.q.mu.Lock()
	defer s.q.mu.Unlock()

	if s.q.txClosed {
		return
	}

	s.q.txClosed = true
	close(s.q.txDone)
}

// Receiver is the read half of an unbounded queue.
//
// A Receiver belongs to a single consumer goroutine
// and its methods must not be called concurrently.
type Receiver[T any] struct {
	q *queue[T]

	head *node[T]

	closed bool
}

// Recv blocks until a value is available and returns it.
//
// If the senders have been closed, Recv keeps returning queued values
// until the queue is empty, and then returns [ErrClosed].
// If ctx is canceled first, Recv returns the context's cause.
// A value that is already available is always preferred
// over a canceled context.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	if r.closed {
		return zero, ErrClosed
	}

	select {
	case <-r.head.ready:
		return r.advance(), nil
	default:
	}

	select {
	case <-r.head.ready:
		return r.advance(), nil

	case <-r.q.txDone:
		// A final send may have completed just before the close.
		select {
		case <-r.head.ready:
			return r.advance(), nil
		default:
			return zero, ErrClosed
		}

	case <-ctx.Done():
		return zero, context.Cause(ctx)
	}
}

// TryRecv returns the next value if one is immediately available.
func (r *Receiver[T]) TryRecv() (T, bool) {
	var zero T
	if r.closed {
		return zero, false
	}

	select {
	case <-r.head.ready:
		return r.advance(), true
	default:
		return zero, false
	}
}

// Ready returns a channel that is closed when
// the next call to [*Receiver.TryRecv] will succeed.
// The returned channel changes after every successful receive,
// so Ready must be called again on each iteration of a select loop.
//
// After [*Receiver.Close], Ready returns a nil channel.
func (r *Receiver[T]) Ready() <-chan struct{} {
	if r.closed {
		return nil
	}
	return r.head.ready
}

// Done returns a channel that is closed when the senders are closed.
// Values may still be queued when Done is closed.
func (r *Receiver[T]) Done() <-chan struct{} {
	return r.q.txDone
}

// Len reports the number of values queued and not yet received.
func (r *Receiver[T]) Len() int {
	return int(r.q.n.Load())
}

// Close detaches the Receiver from its queue.
// Any queued values are discarded,
// and every later send fails with a [SendError].
func (r *Receiver[T]) Close() {
	if r.closed {
		return
	}
	r.closed = true

	r.q.mu.Lock()
	r.q.rxClosed = true
	r.q.mu.Unlock()

	// Release the queued values to the garbage collector.
	r.head = nil
	r.q.n.Store(0)
}

func (r *Receiver[T]) advance() T {
	v := r.head.val
	r.head = r.head.next
	r.q.n.Add(-1)
	return v
}
