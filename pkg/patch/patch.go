// Package patch models tri-state patch fields: a field in a patch body is
// either absent (leave the stored value alone), explicitly null (clear it) or
// a concrete value (replace it). A plain pointer cannot distinguish the first
// two, so each optional field is decoded into a Field.
package patch

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Field is one tri-state patch field. The zero value means "absent".
type Field[T any] struct {
	set   bool
	null  bool
	value T
}

// NewValue returns a field carrying a concrete replacement value.
func NewValue[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

// NewNull returns a field that explicitly clears the stored value.
func NewNull[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

// IsSet reports whether the field was present in the patch at all.
func (f Field[T]) IsSet() bool { return f.set }

// IsNull reports whether the field was present as an explicit null.
func (f Field[T]) IsNull() bool { return f.set && f.null }

// Get returns the concrete value and whether one was provided.
func (f Field[T]) Get() (T, bool) {
	if !f.set || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

var nullLiteral = []byte("null")

// UnmarshalJSON is only invoked for keys present in the body, which is exactly
// the presence signal Field needs: absent keys leave the zero value behind.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.set = true
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return nullLiteral, nil
	}
	return json.Marshal(f.value)
}
