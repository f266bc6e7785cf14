package errors

import (
	"fmt"
	"strings"
)

// IndexOutOfBoundsError occurs when a column is accessed at a position beyond its length
type IndexOutOfBoundsError struct {
	Index int
	Len   int
}

// Error returns a textual representation of this IndexOutOfBoundsError
func (e IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("Index %d exceeds column length %d", e.Index, e.Len)
}

// LengthMismatchError occurs when a permutation addresses entries beyond the length of its
// target column, or when columns of unequal length are assembled into a frame
type LengthMismatchError struct {
	Expected int
	Actual   int
}

// Error returns a textual representation of this LengthMismatchError
func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("Length mismatch: expected %d, found %d", e.Expected, e.Actual)
}

// FieldNotFoundError occurs when a field name is not present in a Schema or View
type FieldNotFoundError struct {
	Name string
}

// Error returns a textual representation of this FieldNotFoundError
func (e FieldNotFoundError) Error() string {
	return fmt.Sprintf("Field %s does not exist", e.Name)
}

// FieldCollisionError occurs when merging field catalogs which share field names
type FieldCollisionError struct {
	Names []string
}

// Error returns a textual representation of this FieldCollisionError
func (e FieldCollisionError) Error() string {
	return fmt.Sprintf("Field collision: %s", strings.Join(e.Names, ", "))
}

// TypeMismatchError occurs when an operation crosses differently-kinded columns
type TypeMismatchError struct {
	Expected string
	Actual   string
}

// Error returns a textual representation of this TypeMismatchError
func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("Type mismatch: expected %s, found %s", e.Expected, e.Actual)
}

// InvalidOperationError occurs when an operation is requested in a configuration which does
// not support it
type InvalidOperationError struct {
	Op string
}

// Error returns a textual representation of this InvalidOperationError
func (e InvalidOperationError) Error() string {
	return fmt.Sprintf("Invalid operation: %s", e.Op)
}
