package frame

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pierrec/lz4"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/column"
	"github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/schema"
)

// kind tags used on the wire, one per supported column kind
const (
	kindUint64 byte = iota
	kindInt64
	kindFloat64
	kindFloat32
	kindString
	kindBool
)

// LZ4FrameSerializer writes Frame snapshots as an lz4-compressed stream: the frame
// identity, then each column in schema order as name, kind tag, length, packed validity
// bitmap and little-endian values. Decode restores the frame under its original identity.
type LZ4FrameSerializer struct{}

// CreateLZ4FrameSerializer is a factory for LZ4FrameSerializers
func CreateLZ4FrameSerializer() *LZ4FrameSerializer {
	return &LZ4FrameSerializer{}
}

// Encode writes a compressed snapshot of f to w
func (s *LZ4FrameSerializer) Encode(f *Frame, w io.Writer) error {
	zw := lz4.NewWriter(w)
	if err := writeString(zw, f.id); err != nil {
		return err
	}
	if err := writeUint32(zw, uint32(f.schema.NumColumns())); err != nil {
		return err
	}
	err := f.schema.ForEachColumn(func(name string, colType tabular.ColumnType) error {
		if err := writeString(zw, name); err != nil {
			return err
		}
		return encodeColumn(zw, f.columns[name])
	})
	if err != nil {
		return err
	}
	return zw.Close()
}

// Decode reads a compressed snapshot from r and rebuilds the Frame it describes
func (s *LZ4FrameSerializer) Decode(r io.Reader) (*Frame, error) {
	zr := lz4.NewReader(r)
	id, err := readString(zr)
	if err != nil {
		return nil, err
	}
	ncols, err := readUint32(zr)
	if err != nil {
		return nil, err
	}
	sch := schema.CreateSchema()
	cols := make(map[string]tabular.Column, ncols)
	for i := uint32(0); i < ncols; i++ {
		name, err := readString(zr)
		if err != nil {
			return nil, err
		}
		col, err := decodeColumn(zr)
		if err != nil {
			return nil, err
		}
		if _, err := sch.CreateColumn(name, col.Type()); err != nil {
			return nil, err
		}
		cols[name] = col
	}
	f, err := CreateFrame(sch, cols)
	if err != nil {
		return nil, err
	}
	f.id = id
	return f, nil
}

func encodeColumn(w io.Writer, col tabular.Column) error {
	switch c := col.(type) {
	case *column.FieldData[uint64]:
		return encodeValues(w, kindUint64, c, func(w io.Writer, v uint64) error {
			return writeUint64(w, v)
		})
	case *column.FieldData[int64]:
		return encodeValues(w, kindInt64, c, func(w io.Writer, v int64) error {
			return writeUint64(w, uint64(v))
		})
	case *column.FieldData[float64]:
		return encodeValues(w, kindFloat64, c, func(w io.Writer, v float64) error {
			return writeUint64(w, math.Float64bits(v))
		})
	case *column.FieldData[float32]:
		return encodeValues(w, kindFloat32, c, func(w io.Writer, v float32) error {
			return writeUint32(w, math.Float32bits(v))
		})
	case *column.FieldData[string]:
		return encodeValues(w, kindString, c, writeString)
	case *column.FieldData[bool]:
		return encodeValues(w, kindBool, c, func(w io.Writer, v bool) error {
			b := []byte{0}
			if v {
				b[0] = 1
			}
			_, err := w.Write(b)
			return err
		})
	}
	return errors.InvalidOperationError{Op: "serialize a column of unsupported kind " + col.Type().Name()}
}

func decodeColumn(r io.Reader) (tabular.Column, error) {
	tag := []byte{0}
	if _, err := io.ReadFull(r, tag); err != nil {
		return nil, err
	}
	switch tag[0] {
	case kindUint64:
		return decodeValues(r, &tabular.Uint64ColumnType{}, readUint64)
	case kindInt64:
		return decodeValues(r, &tabular.Int64ColumnType{}, func(r io.Reader) (int64, error) {
			v, err := readUint64(r)
			return int64(v), err
		})
	case kindFloat64:
		return decodeValues(r, &tabular.Float64ColumnType{}, func(r io.Reader) (float64, error) {
			v, err := readUint64(r)
			return math.Float64frombits(v), err
		})
	case kindFloat32:
		return decodeValues(r, &tabular.Float32ColumnType{}, func(r io.Reader) (float32, error) {
			v, err := readUint32(r)
			return math.Float32frombits(v), err
		})
	case kindString:
		return decodeValues(r, &tabular.StringColumnType{}, readString)
	case kindBool:
		return decodeValues(r, &tabular.BoolColumnType{}, func(r io.Reader) (bool, error) {
			b := []byte{0}
			_, err := io.ReadFull(r, b)
			return b[0] != 0, err
		})
	}
	return nil, errors.InvalidOperationError{Op: "deserialize an unknown column kind tag"}
}

// encodeValues writes one column body: kind tag, length, packed validity bitmap, then
// every value in order with the zero value standing in for missing entries
func encodeValues[T any](w io.Writer, tag byte, data tabular.DataIndex[T], put func(io.Writer, T) error) error {
	if _, err := w.Write([]byte{tag}); err != nil {
		return err
	}
	values := data.ToValues()
	if err := writeUint32(w, uint32(len(values))); err != nil {
		return err
	}
	bitmap := make([]byte, (len(values)+7)/8)
	for i, v := range values {
		if v.Exists() {
			bitmap[i/8] |= 1 << uint(i%8)
		}
	}
	if _, err := w.Write(bitmap); err != nil {
		return err
	}
	for _, v := range values {
		var raw T
		if v.Exists() {
			raw = v.Unwrap()
		}
		if err := put(w, raw); err != nil {
			return err
		}
	}
	return nil
}

func decodeValues[T any](r io.Reader, ctype tabular.ColumnType, get func(io.Reader) (T, error)) (tabular.Column, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	bitmap := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(r, bitmap); err != nil {
		return nil, err
	}
	out := column.New[T](ctype)
	for i := uint32(0); i < n; i++ {
		raw, err := get(r)
		if err != nil {
			return nil, err
		}
		if bitmap[i/8]&(1<<uint(i%8)) != 0 {
			out.Push(tabular.Exists(raw))
		} else {
			out.Push(tabular.Na[T]())
		}
	}
	return out, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeString(w io.Writer, s string) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
