package nchan

import (
	"context"
	"log/slog"
	"reflect"
	"strconv"

	"github.com/davecgh/go-spew/spew"
)

// LevelTrace is the level at which [LoggingSender] records every value.
// It is below [slog.LevelDebug], so handlers must opt in to see it.
const LevelTrace = slog.LevelDebug - 4

var renderConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Render returns the debug rendering of v used in trace logs.
func Render(v any) string {
	return renderConfig.Sprintf("%+v", v)
}

// TypeName returns the name of T as used for channel labels.
// See [QualifiedName].
func TypeName[T any]() string {
	return QualifiedName(reflect.TypeFor[T]())
}

// QualifiedName returns the name of t with named types
// qualified by their full import path,
// so that types from packages with the same short name stay distinct.
//
// Composite types are named from their elements:
// a slice of example.com/a.Item is "[]example.com/a.Item".
func QualifiedName(t reflect.Type) string {
	if t.Name() != "" {
		if t.PkgPath() == "" {
			// Predeclared types such as int or error.
			return t.Name()
		}
		return t.PkgPath() + "." + t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + QualifiedName(t.Elem())
	case reflect.Slice:
		return "[]" + QualifiedName(t.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(t.Len()) + "]" + QualifiedName(t.Elem())
	case reflect.Map:
		return "map[" + QualifiedName(t.Key()) + "]" + QualifiedName(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + QualifiedName(t.Elem())
		case reflect.SendDir:
			return "chan<- " + QualifiedName(t.Elem())
		default:
			return "chan " + QualifiedName(t.Elem())
		}
	default:
		// Unnamed structs, funcs and interfaces.
		return t.String()
	}
}

// LoggingSender wraps a [Sender] and logs every sent value at [LevelTrace].
//
// Like Sender, a LoggingSender may be copied freely;
// copies share the underlying queue and label.
type LoggingSender[T any] struct {
	tx  Sender[T]
	log *slog.Logger

	// Empty means the label is derived from T on demand.
	name string
}

// Attach wraps tx with a LoggingSender labeled name.
// If name is empty, the label is the name of T.
func Attach[T any](log *slog.Logger, tx Sender[T], name string) LoggingSender[T] {
	return LoggingSender[T]{
		tx:   tx,
		log:  log,
		name: name,
	}
}

// AttachTyped wraps tx with a LoggingSender labeled with the name of T.
// The name is only computed when a trace record is actually written.
func AttachTyped[T any](log *slog.Logger, tx Sender[T]) LoggingSender[T] {
	return LoggingSender[T]{
		tx:  tx,
		log: log,
	}
}

// Name returns the label used in log records.
func (s LoggingSender[T]) Name() string {
	if s.name != "" {
		return s.name
	}
	return TypeName[T]()
}

// Send logs v and forwards it unchanged to the wrapped Sender.
// The rendering of v is skipped entirely when trace logging is disabled.
//
// Send fails exactly when the wrapped Sender fails,
// in which case the returned [SendError] holds v.
func (s LoggingSender[T]) Send(v T) error {
	ctx := context.Background()
	if s.log.Enabled(ctx, LevelTrace) {
		s.log.Log(ctx, LevelTrace, "Send", "channel", s.Name(), "value", Render(v))
	}

	return s.tx.Send(v)
}

// Close closes the wrapped Sender.
func (s LoggingSender[T]) Close() {
	s.tx.Close()
}

// Unwrap returns the underlying Sender, bypassing the logging.
func (s LoggingSender[T]) Unwrap() Sender[T] {
	return s.tx
}
