package tabular

// Schema is an ordered catalog of column names and kinds describing the storage of a
// frame. It allows one to look up kinds by name, define new columns, rename columns, etc.
type Schema interface {
	Clone() Schema
	NumColumns() int
	Equals(other Schema) error
	HasColumn(colName string) bool
	GetColumnType(colName string) (colType ColumnType, err error)
	CreateColumn(colName string, colType ColumnType) (newSchema Schema, err error)
	RenameColumn(oldName string, newName string) (newSchema Schema, err error)
	ColumnNames() []string                                              // column names, in index order
	ColumnTypes() []ColumnType                                          // column kinds, in index order
	ForEachColumn(fn func(name string, colType ColumnType) error) error // iterates in index order
}
