package schema

import (
	"reflect"
	"sort"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/errors"
)

// field records the position and kind of a named column within a Schema
type field struct {
	idx     int
	colType tabular.ColumnType
}

// Schema is a mapping from column names to column kinds and positions. It allows one to
// look up kinds by name, define new columns, rename columns, etc.
type schema struct {
	fields map[string]*field
}

// CreateSchema is a factory for Schemas
func CreateSchema() tabular.Schema {
	return &schema{
		fields: make(map[string]*field),
	}
}

// Clone returns a copy of this Schema
func (s *schema) Clone() tabular.Schema {
	newFields := make(map[string]*field)
	for k, v := range s.fields {
		newFields[k] = &field{idx: v.idx, colType: v.colType}
	}
	return &schema{fields: newFields}
}

// NumColumns returns the number of columns in this Schema
func (s *schema) NumColumns() int {
	return len(s.fields)
}

// Equals returns nil iff this and another Schema have identical names, kinds and ordering
func (s *schema) Equals(other tabular.Schema) error {
	if s.NumColumns() != other.NumColumns() {
		return errors.LengthMismatchError{Expected: s.NumColumns(), Actual: other.NumColumns()}
	}
	for name, f := range s.fields {
		otherType, err := other.GetColumnType(name)
		if err != nil {
			return err
		}
		if reflect.TypeOf(f.colType) != reflect.TypeOf(otherType) {
			return errors.TypeMismatchError{Expected: f.colType.Name(), Actual: otherType.Name()}
		}
	}
	otherNames := other.ColumnNames()
	for idx, name := range s.ColumnNames() {
		if otherNames[idx] != name {
			return errors.FieldNotFoundError{Name: name}
		}
	}
	return nil
}

// HasColumn returns true iff this Schema contains a column with the given name
func (s *schema) HasColumn(colName string) bool {
	_, ok := s.fields[colName]
	return ok
}

// GetColumnType returns the kind of a named column
func (s *schema) GetColumnType(colName string) (tabular.ColumnType, error) {
	f, ok := s.fields[colName]
	if !ok {
		return nil, errors.FieldNotFoundError{Name: colName}
	}
	return f.colType, nil
}

// CreateColumn defines a new column within the Schema
func (s *schema) CreateColumn(colName string, colType tabular.ColumnType) (tabular.Schema, error) {
	if _, ok := s.fields[colName]; ok {
		return nil, errors.FieldCollisionError{Names: []string{colName}}
	}
	s.fields[colName] = &field{idx: len(s.fields), colType: colType}
	return s, nil
}

// RenameColumn renames a column within the Schema, preserving its position and kind
func (s *schema) RenameColumn(oldName string, newName string) (tabular.Schema, error) {
	f, ok := s.fields[oldName]
	if !ok {
		return nil, errors.FieldNotFoundError{Name: oldName}
	}
	if _, ok := s.fields[newName]; ok && oldName != newName {
		return nil, errors.FieldCollisionError{Names: []string{newName}}
	}
	delete(s.fields, oldName)
	s.fields[newName] = f
	return s, nil
}

// ColumnNames returns the names in the Schema, in index order
func (s *schema) ColumnNames() []string {
	names := make([]string, 0, len(s.fields))
	for k := range s.fields {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		return s.fields[names[i]].idx < s.fields[names[j]].idx
	})
	return names
}

// ColumnTypes returns the kinds in the Schema, in index order
func (s *schema) ColumnTypes() []tabular.ColumnType {
	names := s.ColumnNames()
	types := make([]tabular.ColumnType, len(names))
	for i, name := range names {
		types[i] = s.fields[name].colType
	}
	return types
}

// ForEachColumn iterates over the columns in this Schema in index order
func (s *schema) ForEachColumn(fn func(name string, colType tabular.ColumnType) error) error {
	for _, name := range s.ColumnNames() {
		if err := fn(name, s.fields[name].colType); err != nil {
			return err
		}
	}
	return nil
}
