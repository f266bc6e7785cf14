package tabular

import (
	"fmt"
)

// ColumnType is an interface which is implemented to define a supported column kind.
// Tabular provides built-in types covering the supported scalar set. The kind set is
// closed: code which dispatches over column kinds does so with a type switch.
type ColumnType interface {
	Name() string                  // canonical name for this column kind
	ToString(v interface{}) string // produces a string representation of a value of this kind
}

// Uint64ColumnType is a column kind which stores an unsigned integer value
type Uint64ColumnType struct{}

// Name of the Uint64ColumnType kind
func (t *Uint64ColumnType) Name() string {
	return "uint64"
}

// ToString produces a string representation of a Uint64ColumnType value
func (t *Uint64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(uint64))
}

// Int64ColumnType is a column kind which stores a signed integer value
type Int64ColumnType struct{}

// Name of the Int64ColumnType kind
func (t *Int64ColumnType) Name() string {
	return "int64"
}

// ToString produces a string representation of an Int64ColumnType value
func (t *Int64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%d", v.(int64))
}

// Float64ColumnType is a column kind which stores a double-precision floating-point value
type Float64ColumnType struct{}

// Name of the Float64ColumnType kind
func (t *Float64ColumnType) Name() string {
	return "float64"
}

// ToString produces a string representation of a Float64ColumnType value
func (t *Float64ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float64))
}

// Float32ColumnType is a column kind which stores a single-precision floating-point value
type Float32ColumnType struct{}

// Name of the Float32ColumnType kind
func (t *Float32ColumnType) Name() string {
	return "float32"
}

// ToString produces a string representation of a Float32ColumnType value
func (t *Float32ColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%f", v.(float32))
}

// StringColumnType is a column kind which stores a text value
type StringColumnType struct{}

// Name of the StringColumnType kind
func (t *StringColumnType) Name() string {
	return "string"
}

// ToString produces a string representation of a StringColumnType value
func (t *StringColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%q", v.(string))
}

// BoolColumnType is a column kind which stores a boolean value
type BoolColumnType struct{}

// Name of the BoolColumnType kind
func (t *BoolColumnType) Name() string {
	return "bool"
}

// ToString produces a string representation of a BoolColumnType value
func (t *BoolColumnType) ToString(v interface{}) string {
	return fmt.Sprintf("%t", v.(bool))
}
