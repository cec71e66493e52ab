// Package patch carries partial-update fields decoded from JSON bodies.
package patch

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes three states of a JSON field: absent (Set false),
// explicit null (Set true, Value nil) and a value.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// IsNull reports an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.Set && n.Value == nil
}

// Apply copies the field into dst when it was present in the payload.
func (n Nullable[T]) Apply(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}

// Assign sets a non-nullable destination when src is present.
func Assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
