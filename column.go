package tabular

// ValueIterator is a generalized interface for lazily iterating over the Values in a column.
// Iterators are finite and restartable: obtaining a fresh iterator never consumes or alters
// the underlying column.
type ValueIterator[T any] interface {
	HasNextValue() bool
	NextValue() Value[T]
}

// DataIndex is the uniform read contract for a single typed column of data
type DataIndex[T any] interface {
	Get(idx int) (Value[T], error) // Get returns the (possibly missing) datum at idx
	Len() int                      // Len returns the number of entries in this column
	IsEmpty() bool                 // IsEmpty returns true iff Len() == 0
	Iter() ValueIterator[T]        // Iter returns a fresh lazy iterator over this column
	ToSlice() []T                  // ToSlice copies existing data only; may be shorter than Len()
	ToValues() []Value[T]          // ToValues copies every entry, missing or existing
}

// DataIndexMut is the read/write contract for a single typed column of data. Mutation
// requires exclusive access to the underlying storage.
type DataIndexMut[T any] interface {
	DataIndex[T]
	Push(val Value[T])              // Push appends a datum to this column
	Take(idx int) (Value[T], error) // Take removes and returns the datum at idx, replacing it with NA
	Drain() ValueIterator[T]        // Drain iterates every datum, removing each as it is visited
}

// Column is the untyped facade over a typed column, used wherever mixed column kinds are
// carried together (frames, views, join materialization). Typed access goes through a
// type switch over the closed set of column kinds.
type Column interface {
	Type() ColumnType                     // Type returns the kind of this column
	Len() int                             // Len returns the number of entries in this column
	IsEmpty() bool                        // IsEmpty returns true iff Len() == 0
	Gather(indices []int) (Column, error) // Gather copies the entries at the given indices into a fresh column
}
