package entity

// Optional carries a value together with an explicit presence flag.
// The zero value is "absent", which is different from a present zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrElse returns the value when set, otherwise fallback.
func (o Optional[T]) OrElse(fallback T) T {
	if o.Set {
		return o.Value
	}

	return fallback
}
