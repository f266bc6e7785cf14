package join

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/column"
	"github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/frame"
	"github.com/go-tabular/tabular/schema"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func empView(t *testing.T, deptIds []tabular.Value[uint64]) *frame.View {
	sch := schema.CreateSchema()
	sch.CreateColumn("EmpId", &tabular.Uint64ColumnType{})
	sch.CreateColumn("DeptId", &tabular.Uint64ColumnType{})
	sch.CreateColumn("EmpName", &tabular.StringColumnType{})
	f, err := frame.CreateFrame(sch, map[string]tabular.Column{
		"EmpId":   column.FromSlice(&tabular.Uint64ColumnType{}, []uint64{0, 2, 5, 6, 8, 9, 10}),
		"DeptId":  column.FromValues(&tabular.Uint64ColumnType{}, deptIds),
		"EmpName": column.FromSlice(&tabular.StringColumnType{}, []string{"Sally", "Jamie", "Bob", "Cara", "Louis", "Louise", "Ann"}),
	})
	require.Nil(t, err)
	return frame.FromFrame(f)
}

func sampleEmpView(t *testing.T) *frame.View {
	return empView(t, []tabular.Value[uint64]{
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(2)),
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(3)),
		tabular.Exists(uint64(4)),
		tabular.Exists(uint64(4)),
	})
}

func deptView(t *testing.T, deptIds []tabular.Value[uint64], deptNames []string) *frame.View {
	sch := schema.CreateSchema()
	sch.CreateColumn("DeptId", &tabular.Uint64ColumnType{})
	sch.CreateColumn("DeptName", &tabular.StringColumnType{})
	f, err := frame.CreateFrame(sch, map[string]tabular.Column{
		"DeptId":   column.FromValues(&tabular.Uint64ColumnType{}, deptIds),
		"DeptName": column.FromSlice(&tabular.StringColumnType{}, deptNames),
	})
	require.Nil(t, err)
	return frame.FromFrame(f)
}

func sampleDeptView(t *testing.T) *frame.View {
	return deptView(t, []tabular.Value[uint64]{
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(2)),
		tabular.Exists(uint64(3)),
		tabular.Exists(uint64(4)),
	}, []string{"Marketing", "Sales", "Manufacturing", "R&D"})
}

func fieldVec[T any](t *testing.T, v *frame.View, label string) []T {
	data, err := frame.FieldOf[T](v, label)
	require.Nil(t, err)
	return data.ToSlice()
}

func TestInnerEquiJoin(t *testing.T) {
	joined, err := Join(sampleEmpView(t), sampleDeptView(t), "DeptId", "DeptId", Equal)
	require.Nil(t, err)
	require.Equal(t, 7, joined.NumRows())
	// the right key carries the same values as the left key, so only one survives
	require.Equal(t, []string{"EmpId", "DeptId", "EmpName", "DeptName"}, joined.FieldNames())
	require.Equal(t, []uint64{0, 5, 6, 2, 8, 9, 10}, fieldVec[uint64](t, joined, "EmpId"))
	require.Equal(t, []uint64{1, 1, 1, 2, 3, 4, 4}, fieldVec[uint64](t, joined, "DeptId"))
	require.Equal(t, []string{"Sally", "Bob", "Cara", "Jamie", "Louis", "Louise", "Ann"}, fieldVec[string](t, joined, "EmpName"))
	require.Equal(t, []string{"Marketing", "Marketing", "Marketing", "Sales", "Manufacturing", "R&D", "R&D"}, fieldVec[string](t, joined, "DeptName"))
}

func TestInnerEquiJoinMissingRightKey(t *testing.T) {
	// dept id missing from the dept side removes the entire marketing department
	dept := deptView(t, []tabular.Value[uint64]{
		tabular.Na[uint64](),
		tabular.Exists(uint64(2)),
		tabular.Exists(uint64(3)),
		tabular.Exists(uint64(4)),
	}, []string{"Marketing", "Sales", "Manufacturing", "R&D"})

	joined, err := Join(sampleEmpView(t), dept, "DeptId", "DeptId", Equal)
	require.Nil(t, err)
	require.Equal(t, 4, joined.NumRows())
	require.Equal(t, []uint64{2, 8, 9, 10}, fieldVec[uint64](t, joined, "EmpId"))
	require.Equal(t, []uint64{2, 3, 4, 4}, fieldVec[uint64](t, joined, "DeptId"))
	require.Equal(t, []string{"Jamie", "Louis", "Louise", "Ann"}, fieldVec[string](t, joined, "EmpName"))
	require.Equal(t, []string{"Sales", "Manufacturing", "R&D", "R&D"}, fieldVec[string](t, joined, "DeptName"))
}

func TestInnerEquiJoinMissingLeftKey(t *testing.T) {
	// Bob's department isn't specified, so Bob drops out of the join
	emp := empView(t, []tabular.Value[uint64]{
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(2)),
		tabular.Na[uint64](),
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(3)),
		tabular.Exists(uint64(4)),
		tabular.Exists(uint64(4)),
	})

	joined, err := Join(emp, sampleDeptView(t), "DeptId", "DeptId", Equal)
	require.Nil(t, err)
	require.Equal(t, 6, joined.NumRows())
	require.Equal(t, []uint64{0, 6, 2, 8, 9, 10}, fieldVec[uint64](t, joined, "EmpId"))
	require.Equal(t, []uint64{1, 1, 2, 3, 4, 4}, fieldVec[uint64](t, joined, "DeptId"))
	require.Equal(t, []string{"Sally", "Cara", "Jamie", "Louis", "Louise", "Ann"}, fieldVec[string](t, joined, "EmpName"))
	require.Equal(t, []string{"Marketing", "Marketing", "Sales", "Manufacturing", "R&D", "R&D"}, fieldVec[string](t, joined, "DeptName"))
}

func TestFilterThenEquiJoin(t *testing.T) {
	dept, err := frame.Filter(sampleDeptView(t), "DeptId", func(v tabular.Value[uint64]) bool {
		return v.Exists() && v.Unwrap() != 1
	})
	require.Nil(t, err)

	joined, err := Join(sampleEmpView(t), dept, "DeptId", "DeptId", Equal)
	require.Nil(t, err)
	require.Equal(t, 4, joined.NumRows())
	require.Equal(t, []uint64{2, 8, 9, 10}, fieldVec[uint64](t, joined, "EmpId"))
	require.Equal(t, []string{"Sales", "Manufacturing", "R&D", "R&D"}, fieldVec[string](t, joined, "DeptName"))
}

func TestGreaterThanJoinWithRenamedKey(t *testing.T) {
	dept := deptView(t, []tabular.Value[uint64]{
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(2)),
	}, []string{"Marketing", "Sales"})
	dept, err := dept.RenameField("DeptId", "RDeptId")
	require.Nil(t, err)

	joined, err := Join(sampleEmpView(t), dept, "DeptId", "RDeptId", GreaterThan)
	require.Nil(t, err)
	require.Equal(t, 7, joined.NumRows())
	// distinct key labels survive unsuffixed
	require.Equal(t, 5, joined.NumFields())
	for _, id := range fieldVec[uint64](t, joined, "DeptId") {
		require.GreaterOrEqual(t, id, uint64(2))
	}
}

func TestGreaterThanEqualJoin(t *testing.T) {
	dept := deptView(t, []tabular.Value[uint64]{tabular.Exists(uint64(2))}, []string{"Sales"})
	joined, err := Join(sampleEmpView(t), dept, "DeptId", "DeptId", GreaterThanEqual)
	require.Nil(t, err)
	require.Equal(t, 4, joined.NumRows())
	// matching labels on a non-equality join keep both sides, suffixed
	require.Equal(t, []string{"EmpId", "DeptId_left", "EmpName", "DeptId_right", "DeptName"}, joined.FieldNames())
	for _, id := range fieldVec[uint64](t, joined, "DeptId_left") {
		require.GreaterOrEqual(t, id, uint64(2))
	}
}

func TestLessThanJoin(t *testing.T) {
	dept := deptView(t, []tabular.Value[uint64]{tabular.Exists(uint64(2))}, []string{"Sales"})
	joined, err := Join(sampleEmpView(t), dept, "DeptId", "DeptId", LessThan)
	require.Nil(t, err)
	require.Equal(t, 3, joined.NumRows())
	for _, id := range fieldVec[uint64](t, joined, "DeptId_left") {
		require.Equal(t, uint64(1), id)
	}
}

func TestLessThanEqualJoin(t *testing.T) {
	dept := deptView(t, []tabular.Value[uint64]{tabular.Exists(uint64(2))}, []string{"Sales"})
	joined, err := Join(sampleEmpView(t), dept, "DeptId", "DeptId", LessThanEqual)
	require.Nil(t, err)
	require.Equal(t, 4, joined.NumRows())
	for _, id := range fieldVec[uint64](t, joined, "DeptId_left") {
		require.LessOrEqual(t, id, uint64(2))
	}
}

func TestJoinFieldNotFound(t *testing.T) {
	_, err := Join(sampleEmpView(t), sampleDeptView(t), "Missing", "DeptId", Equal)
	require.IsType(t, errors.FieldNotFoundError{}, err)
	_, err = Join(sampleEmpView(t), sampleDeptView(t), "DeptId", "Missing", Equal)
	require.IsType(t, errors.FieldNotFoundError{}, err)
}

func TestJoinKeyKindMismatch(t *testing.T) {
	_, err := Join(sampleEmpView(t), sampleDeptView(t), "EmpName", "DeptId", Equal)
	require.IsType(t, errors.TypeMismatchError{}, err)
}

func TestJoinFloatKeyRejected(t *testing.T) {
	sch := schema.CreateSchema()
	sch.CreateColumn("key", &tabular.Float64ColumnType{})
	f, err := frame.CreateFrame(sch, map[string]tabular.Column{
		"key": column.FromSlice(&tabular.Float64ColumnType{}, []float64{1.0, 2.0}),
	})
	require.Nil(t, err)
	v := frame.FromFrame(f)
	_, err = Join(v, v, "key", "key", Equal)
	require.IsType(t, errors.InvalidOperationError{}, err)
}

func TestJoinBoolKey(t *testing.T) {
	sch := schema.CreateSchema()
	sch.CreateColumn("flag", &tabular.BoolColumnType{})
	left, err := frame.CreateFrame(sch, map[string]tabular.Column{
		"flag": column.FromValues(&tabular.BoolColumnType{}, []tabular.Value[bool]{
			tabular.Exists(true),
			tabular.Exists(false),
			tabular.Na[bool](),
		}),
	})
	require.Nil(t, err)
	rsch := schema.CreateSchema()
	rsch.CreateColumn("flag", &tabular.BoolColumnType{})
	rsch.CreateColumn("label", &tabular.StringColumnType{})
	right, err := frame.CreateFrame(rsch, map[string]tabular.Column{
		"flag":  column.FromSlice(&tabular.BoolColumnType{}, []bool{false, true}),
		"label": column.FromSlice(&tabular.StringColumnType{}, []string{"off", "on"}),
	})
	require.Nil(t, err)

	joined, err := Join(frame.FromFrame(left), frame.FromFrame(right), "flag", "flag", Equal)
	require.Nil(t, err)
	require.Equal(t, 2, joined.NumRows())
	require.Equal(t, []string{"off", "on"}, fieldVec[string](t, joined, "label"))
}

func TestJoinEmptySide(t *testing.T) {
	dept := deptView(t, nil, nil)
	joined, err := Join(sampleEmpView(t), dept, "DeptId", "DeptId", Equal)
	require.Nil(t, err)
	require.Equal(t, 0, joined.NumRows())
	require.Equal(t, []string{"EmpId", "DeptId", "EmpName", "DeptName"}, joined.FieldNames())
}

func TestMergeIndicesSkipsMissingKeys(t *testing.T) {
	left := column.FromValues(&tabular.Uint64ColumnType{}, []tabular.Value[uint64]{
		tabular.Exists(uint64(1)),
		tabular.Na[uint64](),
		tabular.Exists(uint64(3)),
	})
	right := column.FromSlice(&tabular.Uint64ColumnType{}, []uint64{1, 3})
	lidx, ridx := mergeIndices[uint64](left, right, Equal, tabular.CompareValues[uint64])
	require.Equal(t, []int{0, 2}, lidx)
	require.Equal(t, []int{0, 1}, ridx)
}

func TestMergeIndicesGreaterThanRuns(t *testing.T) {
	left := column.FromSlice(&tabular.Uint64ColumnType{}, []uint64{1, 1, 1, 2, 2, 2, 3, 4, 4})
	right := column.FromSlice(&tabular.Uint64ColumnType{}, []uint64{1, 2})
	lidx, ridx := mergeIndices[uint64](left, right, GreaterThan, tabular.CompareValues[uint64])
	require.Equal(t, len(lidx), len(ridx))
	require.Equal(t, 9, len(lidx))
	for i := range lidx {
		lv, _ := left.Get(lidx[i])
		rv, _ := right.Get(ridx[i])
		require.Greater(t, lv.Unwrap(), rv.Unwrap())
	}
}

func TestHashJoinMatchesMergeJoin(t *testing.T) {
	joined, err := HashJoin(sampleEmpView(t), sampleDeptView(t), "DeptId", "DeptId", Equal)
	require.Nil(t, err)
	require.Equal(t, 7, joined.NumRows())
	require.Equal(t, []string{"EmpId", "DeptId", "EmpName", "DeptName"}, joined.FieldNames())
	// hash join probes in left row order rather than key order
	require.Equal(t, []uint64{0, 2, 5, 6, 8, 9, 10}, fieldVec[uint64](t, joined, "EmpId"))
	require.Equal(t, []string{"Marketing", "Sales", "Marketing", "Marketing", "Manufacturing", "R&D", "R&D"}, fieldVec[string](t, joined, "DeptName"))
}

func TestHashJoinSkipsMissingKeys(t *testing.T) {
	emp := empView(t, []tabular.Value[uint64]{
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(2)),
		tabular.Na[uint64](),
		tabular.Exists(uint64(1)),
		tabular.Exists(uint64(3)),
		tabular.Exists(uint64(4)),
		tabular.Exists(uint64(4)),
	})
	joined, err := HashJoin(emp, sampleDeptView(t), "DeptId", "DeptId", Equal)
	require.Nil(t, err)
	require.Equal(t, 6, joined.NumRows())
	require.Equal(t, []uint64{0, 2, 6, 8, 9, 10}, fieldVec[uint64](t, joined, "EmpId"))
}

func TestHashJoinRejectsNonEqualityPredicate(t *testing.T) {
	_, err := HashJoin(sampleEmpView(t), sampleDeptView(t), "DeptId", "DeptId", LessThan)
	require.IsType(t, errors.InvalidOperationError{}, err)
}

func TestPredicateString(t *testing.T) {
	require.Equal(t, "==", Equal.String())
	require.Equal(t, "<", LessThan.String())
	require.Equal(t, "<=", LessThanEqual.String())
	require.Equal(t, ">", GreaterThan.String())
	require.Equal(t, ">=", GreaterThanEqual.String())
}
