package column

import (
	"github.com/go-tabular/tabular"
)

// Iterate returns a fresh lazy iterator over any DataIndex. The iterator yields exactly
// data.Len() Values and never consumes or alters the column.
func Iterate[T any](data tabular.DataIndex[T]) tabular.ValueIterator[T] {
	return &dataIterator[T]{data: data}
}

type dataIterator[T any] struct {
	data tabular.DataIndex[T]
	cur  int
}

// HasNextValue returns true iff the iterator has not been exhausted
func (it *dataIterator[T]) HasNextValue() bool {
	return it.cur < it.data.Len()
}

// NextValue returns the next Value in the column
func (it *dataIterator[T]) NextValue() tabular.Value[T] {
	// cur is always within range here
	v, _ := it.data.Get(it.cur)
	it.cur++
	return v
}

// MapValues wraps an iterator, applying fn to each existing datum and passing NA through
func MapValues[T any, U any](iter tabular.ValueIterator[T], fn func(T) U) tabular.ValueIterator[U] {
	return &mapIterator[T, U]{iter: iter, fn: fn}
}

type mapIterator[T any, U any] struct {
	iter tabular.ValueIterator[T]
	fn   func(T) U
}

// HasNextValue returns true iff the underlying iterator has not been exhausted
func (it *mapIterator[T, U]) HasNextValue() bool {
	return it.iter.HasNextValue()
}

// NextValue returns the next transformed Value
func (it *mapIterator[T, U]) NextValue() tabular.Value[U] {
	return tabular.MapValue(it.iter.NextValue(), it.fn)
}

type drainIterator[T any] struct {
	data tabular.DataIndexMut[T]
	cur  int
}

// HasNextValue returns true iff the iterator has not been exhausted
func (it *drainIterator[T]) HasNextValue() bool {
	return it.cur < it.data.Len()
}

// NextValue removes and returns the next Value in the column
func (it *drainIterator[T]) NextValue() tabular.Value[T] {
	v, _ := it.data.Take(it.cur)
	it.cur++
	return v
}

// ToSlice collects the existing data of a DataIndex into a new slice, skipping missing
// entries
func ToSlice[T any](data tabular.DataIndex[T]) []T {
	out := make([]T, 0, data.Len())
	for it := data.Iter(); it.HasNextValue(); {
		if v := it.NextValue(); v.Exists() {
			out = append(out, v.Unwrap())
		}
	}
	return out
}

// ToValues collects every entry of a DataIndex, missing or existing, into a new slice
func ToValues[T any](data tabular.DataIndex[T]) []tabular.Value[T] {
	out := make([]tabular.Value[T], 0, data.Len())
	for it := data.Iter(); it.HasNextValue(); {
		out = append(out, it.NextValue())
	}
	return out
}
