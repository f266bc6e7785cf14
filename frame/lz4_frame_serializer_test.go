package frame

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/column"
	"github.com/go-tabular/tabular/schema"
)

func TestLZ4FrameSerializerRoundTrip(t *testing.T) {
	sch := schema.CreateSchema()
	sch.CreateColumn("id", &tabular.Uint64ColumnType{})
	sch.CreateColumn("delta", &tabular.Int64ColumnType{})
	sch.CreateColumn("score", &tabular.Float64ColumnType{})
	sch.CreateColumn("name", &tabular.StringColumnType{})
	sch.CreateColumn("active", &tabular.BoolColumnType{})
	f, err := CreateFrame(sch, map[string]tabular.Column{
		"id": column.FromSlice(&tabular.Uint64ColumnType{}, []uint64{1, 2, 3}),
		"delta": column.FromValues(&tabular.Int64ColumnType{}, []tabular.Value[int64]{
			tabular.Exists(int64(-5)),
			tabular.Na[int64](),
			tabular.Exists(int64(9)),
		}),
		"score": column.FromSlice(&tabular.Float64ColumnType{}, []float64{1.5, math.Inf(1), -0.25}),
		"name": column.FromValues(&tabular.StringColumnType{}, []tabular.Value[string]{
			tabular.Exists("ada"),
			tabular.Exists(""),
			tabular.Na[string](),
		}),
		"active": column.FromSlice(&tabular.BoolColumnType{}, []bool{true, false, true}),
	})
	require.Nil(t, err)

	var buf bytes.Buffer
	s := CreateLZ4FrameSerializer()
	require.Nil(t, s.Encode(f, &buf))

	decoded, err := s.Decode(&buf)
	require.Nil(t, err)
	require.Equal(t, f.ID(), decoded.ID())
	require.Nil(t, f.Schema().Equals(decoded.Schema()))
	require.Equal(t, 3, decoded.NumRows())

	for _, name := range f.Schema().ColumnNames() {
		before, err := f.Column(name)
		require.Nil(t, err)
		after, err := decoded.Column(name)
		require.Nil(t, err)
		require.Equal(t, before.Len(), after.Len())
	}

	deltas, err := FieldOf[int64](FromFrame(decoded), "delta")
	require.Nil(t, err)
	require.Equal(t, []tabular.Value[int64]{
		tabular.Exists(int64(-5)),
		tabular.Na[int64](),
		tabular.Exists(int64(9)),
	}, deltas.ToValues())

	names, err := FieldOf[string](FromFrame(decoded), "name")
	require.Nil(t, err)
	require.Equal(t, []string{"ada", ""}, names.ToSlice())

	scores, err := FieldOf[float64](FromFrame(decoded), "score")
	require.Nil(t, err)
	require.Equal(t, []float64{1.5, math.Inf(1), -0.25}, scores.ToSlice())
}

func TestLZ4FrameSerializerEmptyFrame(t *testing.T) {
	sch := schema.CreateSchema()
	sch.CreateColumn("id", &tabular.Uint64ColumnType{})
	f, err := CreateFrame(sch, map[string]tabular.Column{
		"id": column.New[uint64](&tabular.Uint64ColumnType{}),
	})
	require.Nil(t, err)

	var buf bytes.Buffer
	s := CreateLZ4FrameSerializer()
	require.Nil(t, s.Encode(f, &buf))
	decoded, err := s.Decode(&buf)
	require.Nil(t, err)
	require.Equal(t, 0, decoded.NumRows())
	require.Equal(t, f.ID(), decoded.ID())
}

func TestLZ4FrameSerializerTruncatedStream(t *testing.T) {
	s := CreateLZ4FrameSerializer()
	_, err := s.Decode(bytes.NewReader([]byte{0x01, 0x02}))
	require.NotNil(t, err)
}
