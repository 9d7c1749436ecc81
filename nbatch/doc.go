// Package nbatch contains [Batcher], which collects items
// and publishes them through an [nevent.Aggregator] as one slice.
//
// A producer that emits many small items per frame can queue them
// cheaply with [*Batcher.Queue], and the consumer of []T
// receives them grouped, in order, once per flush.
package nbatch
