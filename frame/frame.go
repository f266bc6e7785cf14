package frame

import (
	"fmt"
	"log"
	"reflect"

	uuid "github.com/gofrs/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/column"
	"github.com/go-tabular/tabular/errors"
)

// Frame owns physical column storage: one typed column per schema field, all of equal
// length. A Frame is mutable only while no View references it; once published to a View
// it is shared, read-only storage. Filtering, sorting and joining produce new
// permutations or new Frames, never in-place edits of shared storage.
type Frame struct {
	id      string
	schema  tabular.Schema
	columns map[string]tabular.Column
	views   int // count of live Views referencing this Frame
}

// CreateFrame assembles a physical frame from finished typed columns. Every schema field
// must be backed by a column of the matching kind, and all columns must have equal
// length. Validation failures across fields are aggregated into a single error.
func CreateFrame(sch tabular.Schema, columns map[string]tabular.Column) (*Frame, error) {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID for Frame: %v", err)
	}
	var merr *multierror.Error
	nrows := -1
	for _, name := range sch.ColumnNames() {
		col, ok := columns[name]
		if !ok {
			merr = multierror.Append(merr, errors.FieldNotFoundError{Name: name})
			continue
		}
		colType, _ := sch.GetColumnType(name)
		if reflect.TypeOf(col.Type()) != reflect.TypeOf(colType) {
			merr = multierror.Append(merr, errors.TypeMismatchError{Expected: colType.Name(), Actual: col.Type().Name()})
			continue
		}
		if nrows < 0 {
			nrows = col.Len()
		} else if col.Len() != nrows {
			merr = multierror.Append(merr, errors.LengthMismatchError{Expected: nrows, Actual: col.Len()})
		}
	}
	for name := range columns {
		if !sch.HasColumn(name) {
			merr = multierror.Append(merr, errors.FieldNotFoundError{Name: name})
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &Frame{
		id:      id.String(),
		schema:  sch,
		columns: columns,
	}, nil
}

// ID returns the identity of this Frame, shared by every View referencing it
func (f *Frame) ID() string {
	return f.id
}

// Schema returns the schema describing this Frame's columns
func (f *Frame) Schema() tabular.Schema {
	return f.schema
}

// NumRows returns the number of rows stored in this Frame
func (f *Frame) NumRows() int {
	for _, col := range f.columns {
		return col.Len()
	}
	return 0
}

// Column returns the physical column backing a named field
func (f *Frame) Column(name string) (tabular.Column, error) {
	col, ok := f.columns[name]
	if !ok {
		return nil, errors.FieldNotFoundError{Name: name}
	}
	return col, nil
}

// Shared returns true iff at least one View references this Frame
func (f *Frame) Shared() bool {
	return f.views > 0
}

// retain records a new View referencing this Frame, ending its exclusive phase
func (f *Frame) retain() {
	f.views++
}

// AppendRow appends one row of data to this Frame. A missing or nil entry in values
// stores NA for that field. AppendRow requires exclusive access: appending to a Frame
// referenced by live Views is invalid without copying first.
func (f *Frame) AppendRow(values map[string]interface{}) error {
	if f.Shared() {
		return errors.InvalidOperationError{Op: "append to a Frame referenced by live Views"}
	}
	for name := range values {
		if !f.schema.HasColumn(name) {
			return errors.FieldNotFoundError{Name: name}
		}
	}
	// validate every entry before touching any column, so a bad row is all-or-nothing
	for _, name := range f.schema.ColumnNames() {
		v, ok := values[name]
		if !ok || v == nil {
			continue
		}
		if err := checkKind(f.columns[name], v); err != nil {
			return err
		}
	}
	for _, name := range f.schema.ColumnNames() {
		v, ok := values[name]
		pushValue(f.columns[name], v, ok && v != nil)
	}
	return nil
}

// checkKind verifies that v is assignable to col's kind
func checkKind(col tabular.Column, v interface{}) error {
	var ok bool
	switch col.(type) {
	case *column.FieldData[uint64]:
		_, ok = v.(uint64)
	case *column.FieldData[int64]:
		_, ok = v.(int64)
	case *column.FieldData[float64]:
		_, ok = v.(float64)
	case *column.FieldData[float32]:
		_, ok = v.(float32)
	case *column.FieldData[string]:
		_, ok = v.(string)
	case *column.FieldData[bool]:
		_, ok = v.(bool)
	}
	if !ok {
		return errors.TypeMismatchError{Expected: col.Type().Name(), Actual: fmt.Sprintf("%T", v)}
	}
	return nil
}

// pushValue appends v (or NA) to col. The value has already been kind-checked.
func pushValue(col tabular.Column, v interface{}, exists bool) {
	switch c := col.(type) {
	case *column.FieldData[uint64]:
		if exists {
			c.Push(tabular.Exists(v.(uint64)))
		} else {
			c.Push(tabular.Na[uint64]())
		}
	case *column.FieldData[int64]:
		if exists {
			c.Push(tabular.Exists(v.(int64)))
		} else {
			c.Push(tabular.Na[int64]())
		}
	case *column.FieldData[float64]:
		if exists {
			c.Push(tabular.Exists(v.(float64)))
		} else {
			c.Push(tabular.Na[float64]())
		}
	case *column.FieldData[float32]:
		if exists {
			c.Push(tabular.Exists(v.(float32)))
		} else {
			c.Push(tabular.Na[float32]())
		}
	case *column.FieldData[string]:
		if exists {
			c.Push(tabular.Exists(v.(string)))
		} else {
			c.Push(tabular.Na[string]())
		}
	case *column.FieldData[bool]:
		if exists {
			c.Push(tabular.Exists(v.(bool)))
		} else {
			c.Push(tabular.Na[bool]())
		}
	}
}
