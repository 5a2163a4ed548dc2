package iconik

import (
	"bytes"
	"encoding/json"
)

// Optional is a field that tracks whether the caller assigned it. An
// Optional starts out unset; Set assigns a value and Null assigns an
// explicit JSON null. The distinction matters for PATCH bodies, where an
// unset field must be omitted so the server keeps its current value, while
// an explicit null clears it.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Set returns an Optional holding v.
func Set[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that serialises as an explicit JSON null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// Get returns the value and whether it was assigned a non-null value.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// IsSet reports whether the caller assigned the field, including to null.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsNull reports whether the field was explicitly assigned null.
func (o Optional[T]) IsNull() bool {
	return o.null
}

// MarshalJSON implements json.Marshaler. Unset fields marshal as null;
// callers wanting them omitted go through Dump.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*o = Optional[T]{set: true, null: true}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Optional[T]{value: v, set: true}
	return nil
}

// presence is the capability the dump machinery uses to detect Optional
// fields without knowing their type parameter.
type presence interface {
	presenceState() (value any, set bool, null bool)
}

func (o Optional[T]) presenceState() (any, bool, bool) {
	return o.value, o.set, o.null
}
