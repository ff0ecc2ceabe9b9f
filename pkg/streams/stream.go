// Package streams provides generic, pull-based stream iterators.
//
// A Stream produces items on demand: nothing happens until the consumer asks for the next item,
// and each request may block for as long as the underlying producer needs. This is the shape of a
// lazy sequence whose elements are expensive or slow to produce, such as values that only become
// available after a timed wait.
//
// # Sources
//
// A Stream can be backed by a channel (New), for producers that already run on their own
// goroutine, or by a function (FromFunc), for producers that do their work synchronously in the
// consumer's goroutine. Function-backed streams need no intermediate goroutine or channel.
//
//	s := streams.FromFunc(func(ctx context.Context) (int, bool, error) {
//		return next(ctx)
//	})
//	items, err := s.Exhaust(ctx)
//
// # Cancellation
//
// Every pull takes a context. A pull that is blocked waiting for the producer returns the
// context's error as soon as the context is done.
package streams

import (
	"context"
)

// Stream represents a lazy, pull-based iterator over a sequence of items of type T.
//
// A Stream wraps a function closure. This closure, when called, produces the next item in the
// sequence. Streams are created from a source (New, FromFunc) and then chained together using
// transformation functions like Map.
//
// The zero value of a Stream is not useful and will panic if Next() is called.
type Stream[T any] struct {
	// next returns the next item, a boolean indicating if the item is valid, and an error if the
	// item could not be produced.
	next func(ctx context.Context) (T, bool, error)
}

// New creates a new Stream from a read-only channel.
//
// The returned Stream will produce items until the source channel is closed and drained.
func New[T any](sourceChan <-chan T) *Stream[T] {
	return &Stream[T]{
		next: func(ctx context.Context) (T, bool, error) {
			select {
			case <-ctx.Done():
				var zero T
				return zero, false, ctx.Err()
			case val, ok := <-sourceChan:
				return val, ok, nil
			}
		},
	}
}

// FromFunc creates a new Stream backed by the given function.
//
// The function is called once per pull, in the consumer's goroutine. It must return ok=false once
// the sequence is over, and keep doing so on every later call.
func FromFunc[T any](next func(ctx context.Context) (T, bool, error)) *Stream[T] {
	return &Stream[T]{next: next}
}

// Map returns a new Stream that applies the conversion function `conv` to each item from a source
// Stream.
//
// This is a lazy operation. The conversion function is not called until the returned Stream is
// pulled.
func Map[T, U any](sourceStream *Stream[T], conv func(T) U) *Stream[U] {
	return &Stream[U]{
		next: func(ctx context.Context) (U, bool, error) {
			// Pull the next item from the upstream source stream.
			val, ok, err := sourceStream.NextContext(ctx)
			if err != nil || !ok {
				var zeroU U
				return zeroU, false, err
			}
			return conv(val), true, nil
		},
	}
}

// NextContext produces the next item from the stream.
//
// The `ok` flag is true if an item was produced, and false if the stream is exhausted. A non-nil
// error means the item could not be produced, for example because ctx is done.
func (s *Stream[T]) NextContext(ctx context.Context) (T, bool, error) {
	return s.next(ctx)
}

// Next produces the next item from the stream without the possibility of cancellation.
//
// Next cannot report errors: a producer error ends the stream as if it were exhausted. Callers
// that must tell the two apart use NextContext.
func (s *Stream[T]) Next() (T, bool) {
	val, ok, err := s.next(context.Background())
	if err != nil {
		var zero T
		return zero, false
	}
	return val, ok
}

// Exhaust pulls every remaining item from the stream.
//
// On error it returns a nil slice and the error. Items pulled before the error are discarded.
func (s *Stream[T]) Exhaust(ctx context.Context) ([]T, error) {
	var items []T
	for {
		item, ok, err := s.next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}

// All is a more convenient way of looping over the Stream for Go 1.23+
//
// Iteration stops at the end of the stream or at the first error, and the error is lost. Use
// Exhaust or NextContext when a failed producer must be reported.
func (s *Stream[T]) All(yield func(T) bool) {
	for {
		item, ok := s.Next()
		if !ok {
			return
		}

		if !yield(item) {
			return
		}
	}
}
