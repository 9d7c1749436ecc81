// Package nevent contains the [Aggregator], a type-indexed event bus.
//
// Any goroutine may publish a value of any type with [Send],
// without registering a topic first.
// Exactly one consumer per type claims the receiving side with [Register],
// and it observes every value sent for that type in order,
// including values sent before it registered.
//
// Because Go methods cannot declare type parameters,
// the operations are package-level generic functions
// that take the Aggregator as their first argument.
// [Publish] and [Subscribe] operate on the process-wide [Default] aggregator.
//
// The channel for a type is created on first use from either side
// and lives as long as the Aggregator.
// Values pass through an [nchan.LoggingSender],
// so all traffic can be observed by enabling [nchan.LevelTrace] logging.
package nevent
