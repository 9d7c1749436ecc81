package nchan

import "errors"

var (
	// ErrClosed is returned from [*Receiver.Recv]
	// once the senders have been closed and every queued value has been received,
	// or after the Receiver itself has been closed.
	// It is also returned from sends after [Sender.Close].
	ErrClosed = errors.New("channel closed")

	// ErrReceiverClosed is the error wrapped by [SendError].
	ErrReceiverClosed = errors.New("receiver closed")
)

// SendError is returned from a send when the receiving side has been closed.
// The value that could not be delivered is handed back to the caller.
//
// SendError unwraps to [ErrReceiverClosed].
type SendError[T any] struct {
	Value T
}

func (e SendError[T]) Error() string {
	return "send failed: " + ErrReceiverClosed.Error()
}

func (e SendError[T]) Unwrap() error {
	return ErrReceiverClosed
}
