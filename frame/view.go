package frame

import (
	"cmp"
	"reflect"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/column"
	"github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/schema"
)

// Field labels one entry of a View's catalog, naming the frame it reads from and the
// field within that frame
type Field struct {
	Label      string
	FrameIndex int
	FrameLabel string
}

// frameRef pairs a referenced Frame with the permutation a View applies to it
type frameRef struct {
	frame *Frame
	perm  *column.Permutation
}

// View is an ordered catalog of labeled fields over one or more Frames. A View never
// copies frame data: filtering and sorting compose permutations, and field operations
// rewrite only the catalog. Field labels are unique within a View.
type View struct {
	frames []*frameRef
	fields []Field
}

// FromFrame creates a View exposing every field of a Frame in schema order
func FromFrame(f *Frame) *View {
	f.retain()
	names := f.schema.ColumnNames()
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{Label: name, FrameIndex: 0, FrameLabel: name}
	}
	return &View{
		frames: []*frameRef{{frame: f, perm: &column.Permutation{}}},
		fields: fields,
	}
}

// derive copies this View's catalog and frame references so the copy can diverge
func (v *View) derive() *View {
	frames := make([]*frameRef, len(v.frames))
	for i, fr := range v.frames {
		fr.frame.retain()
		frames[i] = &frameRef{frame: fr.frame, perm: fr.perm.Clone()}
	}
	return &View{
		frames: frames,
		fields: append([]Field(nil), v.fields...),
	}
}

// NumRows returns the number of rows this View exposes
func (v *View) NumRows() int {
	if len(v.frames) == 0 {
		return 0
	}
	fr := v.frames[0]
	return fr.perm.LenOr(fr.frame.NumRows())
}

// NumFields returns the number of fields in this View's catalog
func (v *View) NumFields() int {
	return len(v.fields)
}

// FieldNames returns the labels of this View's catalog, in order
func (v *View) FieldNames() []string {
	names := make([]string, len(v.fields))
	for i, fld := range v.fields {
		names[i] = fld.Label
	}
	return names
}

// HasField returns true iff the View's catalog contains the given label
func (v *View) HasField(label string) bool {
	_, err := v.lookup(label)
	return err == nil
}

func (v *View) lookup(label string) (Field, error) {
	for _, fld := range v.fields {
		if fld.Label == label {
			return fld, nil
		}
	}
	return Field{}, errors.FieldNotFoundError{Name: label}
}

// SelectFields returns a View exposing only the named fields, in the given order
func (v *View) SelectFields(labels ...string) (*View, error) {
	nv := v.derive()
	fields := make([]Field, len(labels))
	for i, label := range labels {
		fld, err := v.lookup(label)
		if err != nil {
			return nil, err
		}
		fields[i] = fld
	}
	nv.fields = fields
	return nv, nil
}

// RenameField returns a View with one catalog label renamed
func (v *View) RenameField(oldLabel string, newLabel string) (*View, error) {
	if _, err := v.lookup(oldLabel); err != nil {
		return nil, err
	}
	if oldLabel != newLabel && v.HasField(newLabel) {
		return nil, errors.FieldCollisionError{Names: []string{newLabel}}
	}
	nv := v.derive()
	for i := range nv.fields {
		if nv.fields[i].Label == oldLabel {
			nv.fields[i].Label = newLabel
		}
	}
	return nv, nil
}

// Column returns the lazy, possibly permuted column behind a labeled field
func (v *View) Column(label string) (tabular.Column, error) {
	fld, err := v.lookup(label)
	if err != nil {
		return nil, err
	}
	fr := v.frames[fld.FrameIndex]
	col, err := fr.frame.Column(fld.FrameLabel)
	if err != nil {
		return nil, err
	}
	if !fr.perm.IsPermuted() {
		return col, nil
	}
	switch c := col.(type) {
	case *column.FieldData[uint64]:
		return &viewColumn[uint64]{col: c, data: c, perm: fr.perm}, nil
	case *column.FieldData[int64]:
		return &viewColumn[int64]{col: c, data: c, perm: fr.perm}, nil
	case *column.FieldData[float64]:
		return &viewColumn[float64]{col: c, data: c, perm: fr.perm}, nil
	case *column.FieldData[float32]:
		return &viewColumn[float32]{col: c, data: c, perm: fr.perm}, nil
	case *column.FieldData[string]:
		return &viewColumn[string]{col: c, data: c, perm: fr.perm}, nil
	case *column.FieldData[bool]:
		return &viewColumn[bool]{col: c, data: c, perm: fr.perm}, nil
	}
	return nil, errors.InvalidOperationError{Op: "access a column of unsupported kind " + col.Type().Name()}
}

// FieldOf returns typed access to a labeled field. The kind check happens here, at the
// access point.
func FieldOf[T any](v *View, label string) (tabular.DataIndex[T], error) {
	col, err := v.Column(label)
	if err != nil {
		return nil, err
	}
	data, ok := col.(tabular.DataIndex[T])
	if !ok {
		var zero T
		return nil, errors.TypeMismatchError{Expected: reflect.TypeOf(&zero).Elem().String(), Actual: col.Type().Name()}
	}
	return data, nil
}

// applyPerm composes view-space indices onto every referenced frame's permutation
func (v *View) applyPerm(indices []int) *View {
	nv := v.derive()
	for _, fr := range nv.frames {
		fr.perm.Update(indices)
	}
	return nv
}

// Filter returns a View keeping, in original relative order, only the rows whose value in
// the labeled field satisfies predicate
func Filter[T any](v *View, label string, predicate func(tabular.Value[T]) bool) (*View, error) {
	data, err := FieldOf[T](v, label)
	if err != nil {
		return nil, err
	}
	return v.applyPerm(column.FilterPerm(data, predicate)), nil
}

// SortBy returns a View whose rows are stably sorted by the labeled field under the
// default comparator (NA first)
func SortBy[T cmp.Ordered](v *View, label string) (*View, error) {
	data, err := FieldOf[T](v, label)
	if err != nil {
		return nil, err
	}
	return v.applyPerm(column.SortOrder(data)), nil
}

// SortByComparator returns a View whose rows are stably sorted by the labeled field under
// a caller-provided three-way comparator
func SortByComparator[T any](v *View, label string, compare func(left tabular.Value[T], right tabular.Value[T]) int) (*View, error) {
	data, err := FieldOf[T](v, label)
	if err != nil {
		return nil, err
	}
	return v.applyPerm(column.SortOrderBy(data, compare)), nil
}

// Sort returns a View stably sorted by the labeled field, dispatching on its kind.
// Floating-point fields are ordered NA < NaN < non-NaN.
func (v *View) Sort(label string) (*View, error) {
	col, err := v.Column(label)
	if err != nil {
		return nil, err
	}
	switch col.Type().(type) {
	case *tabular.Uint64ColumnType:
		return SortBy[uint64](v, label)
	case *tabular.Int64ColumnType:
		return SortBy[int64](v, label)
	case *tabular.StringColumnType:
		return SortBy[string](v, label)
	case *tabular.BoolColumnType:
		return SortByComparator(v, label, tabular.CompareBoolValues)
	case *tabular.Float64ColumnType:
		return SortByComparator(v, label, tabular.SortFloat64Values)
	case *tabular.Float32ColumnType:
		return SortByComparator(v, label, tabular.SortFloat32Values)
	}
	return nil, errors.InvalidOperationError{Op: "sort a column of unsupported kind " + col.Type().Name()}
}

// GatherRows copies the rows at the given view positions into a fresh single-frame View.
// This is the materialization step behind join output.
func (v *View) GatherRows(indices []int) (*View, error) {
	sch := schema.CreateSchema()
	cols := make(map[string]tabular.Column)
	for _, fld := range v.fields {
		col, err := v.Column(fld.Label)
		if err != nil {
			return nil, err
		}
		gathered, err := col.Gather(indices)
		if err != nil {
			return nil, err
		}
		if _, err := sch.CreateColumn(fld.Label, gathered.Type()); err != nil {
			return nil, err
		}
		cols[fld.Label] = gathered
	}
	f, err := CreateFrame(sch, cols)
	if err != nil {
		return nil, err
	}
	return FromFrame(f), nil
}

// viewColumn is the lazy facade a View hands out for a permuted field: reads map through
// the View's permutation down to the physical column.
type viewColumn[T any] struct {
	col  tabular.Column
	data tabular.DataIndex[T]
	perm *column.Permutation
}

// Type returns the kind of the underlying column
func (c *viewColumn[T]) Type() tabular.ColumnType {
	return c.col.Type()
}

// Len returns the permuted length
func (c *viewColumn[T]) Len() int {
	return c.perm.LenOr(c.data.Len())
}

// IsEmpty returns true iff Len() == 0
func (c *viewColumn[T]) IsEmpty() bool {
	return c.Len() == 0
}

// Get returns the (possibly missing) datum at the permuted position idx
func (c *viewColumn[T]) Get(idx int) (tabular.Value[T], error) {
	if idx < 0 || idx >= c.Len() {
		return tabular.Na[T](), errors.IndexOutOfBoundsError{Index: idx, Len: c.Len()}
	}
	return c.data.Get(c.perm.MapIndex(idx))
}

// Iter returns a fresh lazy iterator over the permuted column
func (c *viewColumn[T]) Iter() tabular.ValueIterator[T] {
	return column.Iterate[T](c)
}

// ToSlice copies the existing data of the permuted column into a new slice
func (c *viewColumn[T]) ToSlice() []T {
	return column.ToSlice[T](c)
}

// ToValues copies every entry of the permuted column into a new slice
func (c *viewColumn[T]) ToValues() []tabular.Value[T] {
	return column.ToValues[T](c)
}

// Gather copies the entries at the given view positions into a fresh column
func (c *viewColumn[T]) Gather(indices []int) (tabular.Column, error) {
	physical := make([]int, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= c.Len() {
			return nil, errors.LengthMismatchError{Expected: c.Len(), Actual: len(indices)}
		}
		physical[i] = c.perm.MapIndex(idx)
	}
	return c.col.Gather(physical)
}
