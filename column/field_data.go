package column

import (
	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/errors"
)

// FieldData is Tabular's concrete column storage: a dense slice of data paired with a
// packed validity bitmap (LSB first) tracking missing entries. A FieldData is built once
// from ingested data and treated as immutable after it is published to a frame; mutation
// (Push, Take, Drain) requires exclusive access.
type FieldData[T any] struct {
	ctype tabular.ColumnType
	data  []T
	valid []byte
}

// New creates an empty FieldData column of the given kind
func New[T any](ctype tabular.ColumnType) *FieldData[T] {
	return &FieldData[T]{ctype: ctype}
}

// FromSlice creates a FieldData column of the given kind in which every entry exists
func FromSlice[T any](ctype tabular.ColumnType, data []T) *FieldData[T] {
	f := &FieldData[T]{
		ctype: ctype,
		data:  append([]T(nil), data...),
		valid: make([]byte, bitmapLen(len(data))),
	}
	for i := range f.valid {
		f.valid[i] = 0xff
	}
	return f
}

// FromValues creates a FieldData column of the given kind from a sequence of
// possibly-missing Values
func FromValues[T any](ctype tabular.ColumnType, values []tabular.Value[T]) *FieldData[T] {
	f := New[T](ctype)
	for _, v := range values {
		f.Push(v)
	}
	return f
}

func bitmapLen(n int) int {
	return (n + 7) / 8
}

func (f *FieldData[T]) isValid(idx int) bool {
	return f.valid[idx/8]&(1<<uint(idx%8)) != 0
}

func (f *FieldData[T]) setValid(idx int, valid bool) {
	if valid {
		f.valid[idx/8] |= 1 << uint(idx%8)
	} else {
		f.valid[idx/8] &^= 1 << uint(idx%8)
	}
}

// Type returns the kind of this column
func (f *FieldData[T]) Type() tabular.ColumnType {
	return f.ctype
}

// Len returns the number of entries in this column
func (f *FieldData[T]) Len() int {
	return len(f.data)
}

// IsEmpty returns true iff this column holds no entries
func (f *FieldData[T]) IsEmpty() bool {
	return len(f.data) == 0
}

// Get returns the (possibly missing) datum at idx
func (f *FieldData[T]) Get(idx int) (tabular.Value[T], error) {
	if idx < 0 || idx >= len(f.data) {
		return tabular.Na[T](), errors.IndexOutOfBoundsError{Index: idx, Len: len(f.data)}
	}
	if !f.isValid(idx) {
		return tabular.Na[T](), nil
	}
	return tabular.Exists(f.data[idx]), nil
}

// Push appends a datum to this column
func (f *FieldData[T]) Push(val tabular.Value[T]) {
	idx := len(f.data)
	if bitmapLen(idx+1) > len(f.valid) {
		f.valid = append(f.valid, 0)
	}
	var v T
	if val.Exists() {
		v = val.Unwrap()
	}
	f.data = append(f.data, v)
	f.setValid(idx, val.Exists())
}

// Take removes and returns the datum at idx, replacing it with NA. The slot keeps the
// zero value of the element type as a placeholder.
func (f *FieldData[T]) Take(idx int) (tabular.Value[T], error) {
	out, err := f.Get(idx)
	if err != nil {
		return out, err
	}
	var zero T
	f.data[idx] = zero
	f.setValid(idx, false)
	return out, nil
}

// Iter returns a fresh lazy iterator over this column
func (f *FieldData[T]) Iter() tabular.ValueIterator[T] {
	return Iterate[T](f)
}

// Drain returns an iterator which removes each datum as it is visited, replacing it with NA.
// Used to move values out of a column without duplicating them.
func (f *FieldData[T]) Drain() tabular.ValueIterator[T] {
	return &drainIterator[T]{data: f}
}

// ToSlice copies the existing data in this column into a new slice. If the column has
// missing entries the result is shorter than Len().
func (f *FieldData[T]) ToSlice() []T {
	return ToSlice[T](f)
}

// ToValues copies every entry, missing or existing, into a new slice
func (f *FieldData[T]) ToValues() []tabular.Value[T] {
	return ToValues[T](f)
}

// Gather copies the entries at the given indices into a fresh column
func (f *FieldData[T]) Gather(indices []int) (tabular.Column, error) {
	return f.GatherData(indices)
}

// GatherData is the typed form of Gather
func (f *FieldData[T]) GatherData(indices []int) (*FieldData[T], error) {
	for _, idx := range indices {
		if idx < 0 || idx >= len(f.data) {
			return nil, errors.LengthMismatchError{Expected: len(f.data), Actual: len(indices)}
		}
	}
	out := New[T](f.ctype)
	for _, idx := range indices {
		v, _ := f.Get(idx)
		out.Push(v)
	}
	return out, nil
}
