package tabular

import (
	"cmp"
	"fmt"
	"math"
)

// Value represents a single datum within a column: either a concrete value, or missing (NA).
// The zero Value is NA.
type Value[T any] struct {
	val    T
	exists bool
}

// Exists wraps a concrete datum in a Value
func Exists[T any](val T) Value[T] {
	return Value[T]{val: val, exists: true}
}

// Na produces a missing Value
func Na[T any]() Value[T] {
	return Value[T]{}
}

// Exists returns true iff this Value holds a concrete datum
func (v Value[T]) Exists() bool {
	return v.exists
}

// IsNa returns true iff this Value is missing
func (v Value[T]) IsNa() bool {
	return !v.exists
}

// Unwrap returns the underlying datum, panicking if it is missing. Callers should
// test Exists first, or use Or.
func (v Value[T]) Unwrap() T {
	if !v.exists {
		panic("tabular: Unwrap called on a missing Value")
	}
	return v.val
}

// Or returns the underlying datum, or def if this Value is missing
func (v Value[T]) Or(def T) T {
	if !v.exists {
		return def
	}
	return v.val
}

// String returns a textual representation of this Value
func (v Value[T]) String() string {
	if !v.exists {
		return "NA"
	}
	return fmt.Sprintf("%v", v.val)
}

// MapValue applies fn to the datum of an existing Value, passing a missing Value through
func MapValue[T any, U any](v Value[T], fn func(T) U) Value[U] {
	if !v.exists {
		return Na[U]()
	}
	return Exists(fn(v.val))
}

// ValuesEqual returns true iff both Values are missing, or both exist and hold equal data
func ValuesEqual[T comparable](left Value[T], right Value[T]) bool {
	if left.exists != right.exists {
		return false
	}
	return !left.exists || left.val == right.val
}

// CompareValues compares two Values of an ordered type, returning a negative number if
// left sorts first, zero if they are tied, and a positive number otherwise. A missing
// Value sorts before any existing one.
func CompareValues[T cmp.Ordered](left Value[T], right Value[T]) int {
	switch {
	case !left.exists && !right.exists:
		return 0
	case !left.exists:
		return -1
	case !right.exists:
		return 1
	}
	return cmp.Compare(left.val, right.val)
}

// CompareBoolValues compares two boolean Values, ordering NA before false before true
func CompareBoolValues(left Value[bool], right Value[bool]) int {
	switch {
	case !left.exists && !right.exists:
		return 0
	case !left.exists:
		return -1
	case !right.exists:
		return 1
	case left.val == right.val:
		return 0
	case !left.val:
		return -1
	}
	return 1
}

// SortFloat64s is a three-way comparison for float64 data which totalizes the IEEE-754
// partial order: NaN sorts before any non-NaN number, and NaN compares equal to NaN,
// regardless of which operand is NaN.
func SortFloat64s(left float64, right float64) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	case left == right:
		return 0
	}
	// at least one operand is NaN
	switch {
	case math.IsNaN(left) && math.IsNaN(right):
		return 0
	case math.IsNaN(left):
		return -1
	}
	return 1
}

// SortFloat64Values is a three-way comparison for float64 Values: NA sorts before NaN,
// which sorts before any non-NaN number.
func SortFloat64Values(left Value[float64], right Value[float64]) int {
	switch {
	case !left.exists && !right.exists:
		return 0
	case !left.exists:
		return -1
	case !right.exists:
		return 1
	}
	return SortFloat64s(left.val, right.val)
}

// SortFloat32s is the float32 form of SortFloat64s
func SortFloat32s(left float32, right float32) int {
	switch {
	case left < right:
		return -1
	case left > right:
		return 1
	case left == right:
		return 0
	}
	switch {
	case math.IsNaN(float64(left)) && math.IsNaN(float64(right)):
		return 0
	case math.IsNaN(float64(left)):
		return -1
	}
	return 1
}

// SortFloat32Values is the float32 form of SortFloat64Values
func SortFloat32Values(left Value[float32], right Value[float32]) int {
	switch {
	case !left.exists && !right.exists:
		return 0
	case !left.exists:
		return -1
	case !right.exists:
		return 1
	}
	return SortFloat32s(left.val, right.val)
}
