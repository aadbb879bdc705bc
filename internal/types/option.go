package types

// Option is a value that may be absent. A lookup that matched nothing is
// represented as None rather than as an error.
type Option[T any] struct {
	Value T    `json:"value"`
	Valid bool `json:"valid"`
}

func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// OrElse returns the value, or def when absent.
func (o Option[T]) OrElse(def T) T {
	if !o.Valid {
		return def
	}
	return o.Value
}
