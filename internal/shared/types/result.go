package types

// Result carries either a successful payload or a soft failure message.
//
// Soft failures are ordinary return values: the call itself succeeded, the
// filesystem operation did not. Hard failures travel as Go errors instead.
type Result[T any] struct {
	value   T
	message string
	soft    bool
}

// Ok wraps a successful payload
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// SoftError wraps a soft failure message. An empty message is replaced so
// callers can always rely on a non-empty description.
func SoftError[T any](message string) Result[T] {
	if message == "" {
		message = "unknown error"
	}
	return Result[T]{message: message, soft: true}
}

// IsSoftError reports whether the result is the soft failure variant
func (r Result[T]) IsSoftError() bool {
	return r.soft
}

// Value returns the payload; the zero value for soft failures
func (r Result[T]) Value() T {
	return r.value
}

// Message returns the soft failure message; empty for Ok results
func (r Result[T]) Message() string {
	return r.message
}

// Payload returns the value to encode for a caller: the payload itself, or a
// SoftErrorBody for soft failures.
func (r Result[T]) Payload() interface{} {
	if r.soft {
		return SoftErrorBody{Error: r.message}
	}
	return r.value
}
