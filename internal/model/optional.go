package model

// Optional marks a field of a partial update. The zero value means the field
// was omitted; Some(v) means it should be written, even if v is a zero value.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional carrying v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}
