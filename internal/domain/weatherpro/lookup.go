package weatherpro

// Lookup is the outcome of an auxiliary call that must never fail the request.
// A degraded lookup carries the reason in Err; the caller picks the fallback.
type Lookup[T any] struct {
	Value    T
	Degraded bool
	Err      error
}

func found[T any](value T) Lookup[T] {
	return Lookup[T]{Value: value}
}

func degraded[T any](err error) Lookup[T] {
	return Lookup[T]{Degraded: true, Err: err}
}

// Or returns the value, or fallback when the lookup degraded.
func (l Lookup[T]) Or(fallback T) T {
	if l.Degraded {
		return fallback
	}
	return l.Value
}
