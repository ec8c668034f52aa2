package datatable

import (
	"fmt"

	"github.com/google/uuid"
)

// StringKey is an identity that optionally wraps a string. Keys built
// from the same string are equal; keys built without one are unique.
// The zero StringKey equals no constructed key, including the key for "".
// StringKey is comparable and may be used as a map key.
type StringKey struct {
	value string
	named bool
	id    uuid.UUID
}

func stringKey(value string) StringKey {
	return StringKey{value: value, named: true}
}

func uniqueKey() StringKey {
	return StringKey{id: uuid.New()}
}

// Value returns the wrapped string and whether one was supplied.
func (k StringKey) Value() (string, bool) {
	return k.value, k.named
}

// IsZero reports whether k is the zero key.
func (k StringKey) IsZero() bool {
	return !k.named && k.id == uuid.Nil
}

// Is reports whether the key wraps exactly s.
func (k StringKey) Is(s string) bool {
	return k.named && k.value == s
}

// Less orders keys lexicographically by their string.
func (k StringKey) Less(other StringKey) bool {
	return k.value < other.value
}

// String implements fmt.Stringer.
func (k StringKey) String() string {
	if k.id != uuid.Nil {
		return fmt.Sprintf("<%s>", k.id)
	}
	return k.value
}

// RowKey identifies a row independently of its position.
type RowKey struct{ StringKey }

// ColumnKey identifies a column independently of its position.
type ColumnKey struct{ StringKey }

// RowKeyOf returns the row key for s.
func RowKeyOf(s string) RowKey { return RowKey{stringKey(s)} }

// NewRowKey returns a row key equal to no other key.
func NewRowKey() RowKey { return RowKey{uniqueKey()} }

// ColumnKeyOf returns the column key for s.
func ColumnKeyOf(s string) ColumnKey { return ColumnKey{stringKey(s)} }

// NewColumnKey returns a column key equal to no other key.
func NewColumnKey() ColumnKey { return ColumnKey{uniqueKey()} }

// CellKey identifies a cell by its row and column keys.
type CellKey struct {
	Row    RowKey
	Column ColumnKey
}
