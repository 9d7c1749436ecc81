package nevent

import "errors"

// ErrClosed is returned from [Send] after [*Aggregator.Close].
var ErrClosed = errors.New("event aggregator closed")

// AlreadyRegisteredError is the panic value
// when [Register] is called a second time for the same type.
type AlreadyRegisteredError struct {
	Type string
}

func (e AlreadyRegisteredError) Error() string {
	return "event type already registered: " + e.Type
}
