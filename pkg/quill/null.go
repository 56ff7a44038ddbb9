package quill

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
)

// nullState distinguishes the three states a column-backed field can be in.
type nullState int8

const (
	stateUnset nullState = iota // never provided; omitted from JSON output
	stateNull                   // explicitly absent; serialized as null, bound as SQL NULL
	stateValue                  // present with a value
)

// Null is the tri-state wrapper every attributed entity field is stored in.
// The zero value is the unset state, so a default-constructed entity is
// all-unset and comparable against the empty entity.
//
// Unset and Null are deliberately distinct: "omit from output" and "present
// as null" are separate contracts, and partial updates only bind fields that
// left the unset state.
type Null[T any] struct {
	state nullState
	value T
}

// NullOf returns a Null holding value in the present state.
func NullOf[T any](value T) Null[T] {
	return Null[T]{state: stateValue, value: value}
}

// Absent returns a Null in the explicit-absence state.
func Absent[T any]() Null[T] {
	return Null[T]{state: stateNull}
}

// Undefined returns a Null in the unset state.
func Undefined[T any]() Null[T] {
	return Null[T]{}
}

// IsSet reports whether the wrapper holds a value.
func (n Null[T]) IsSet() bool { return n.state == stateValue }

// IsNull reports whether the wrapper is in the explicit-absence state.
func (n Null[T]) IsNull() bool { return n.state == stateNull }

// IsUnset reports whether the wrapper was never provided.
func (n Null[T]) IsUnset() bool { return n.state == stateUnset }

// IsZero reports whether the wrapper is unset. It exists so the json
// "omitzero" option drops unset fields from any external representation.
func (n Null[T]) IsZero() bool { return n.state == stateUnset }

// Get returns the inner value and whether it is present.
func (n Null[T]) Get() (T, bool) {
	return n.value, n.state == stateValue
}

// OrZero returns the inner value, or the zero value of T when the wrapper
// is unset or null.
func (n Null[T]) OrZero() T {
	if n.state == stateValue {
		return n.value
	}
	var zero T
	return zero
}

// OrElse returns the inner value, or fallback when no value is present.
func (n Null[T]) OrElse(fallback T) T {
	if n.state == stateValue {
		return n.value
	}
	return fallback
}

// Ptr returns a pointer to a copy of the inner value, or nil when no value
// is present.
func (n Null[T]) Ptr() *T {
	if n.state != stateValue {
		return nil
	}
	v := n.value
	return &v
}

var jsonNull = []byte("null")

// MarshalJSON serializes the value state as the value and both empty states
// as null. Callers tag fields with ",omitzero" so the unset state never
// reaches the output at all.
func (n Null[T]) MarshalJSON() ([]byte, error) {
	if n.state != stateValue {
		return jsonNull, nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON maps an explicit null to the absence state and any value to
// the present state. A missing key never calls this, leaving the field unset.
func (n *Null[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*n = Absent[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = NullOf(v)
	return nil
}

// Value implements driver.Valuer so a Null can be bound directly as a
// statement parameter. Both empty states bind SQL NULL.
func (n Null[T]) Value() (driver.Value, error) {
	if n.state != stateValue {
		return nil, nil
	}
	return driver.Value(any(n.value)), nil
}
