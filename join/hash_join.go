package join

import (
	"encoding/binary"
	"reflect"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/frame"
	"github.com/go-tabular/tabular/logging"
)

// HashJoin is the equality-only fast path: it buckets the right side's keys by hash and
// probes with the left side's rows in their original order, so no sort of either side is
// needed. It pairs exactly the rows Join pairs under Equal, though output order differs.
func HashJoin(left *frame.View, right *frame.View, leftKey string, rightKey string, pred Predicate) (*frame.View, error) {
	if pred != Equal {
		return nil, errors.InvalidOperationError{Op: "hash join with non-equality predicate " + pred.String()}
	}
	lcol, err := left.Column(leftKey)
	if err != nil {
		return nil, err
	}
	rcol, err := right.Column(rightKey)
	if err != nil {
		return nil, err
	}
	if reflect.TypeOf(lcol.Type()) != reflect.TypeOf(rcol.Type()) {
		return nil, errors.TypeMismatchError{Expected: lcol.Type().Name(), Actual: rcol.Type().Name()}
	}
	switch lcol.Type().(type) {
	case *tabular.Uint64ColumnType:
		return hashJoinOn(left, right, leftKey, rightKey, hashUint64)
	case *tabular.Int64ColumnType:
		return hashJoinOn(left, right, leftKey, rightKey, func(v int64) uint64 {
			return hashUint64(uint64(v))
		})
	case *tabular.StringColumnType:
		return hashJoinOn(left, right, leftKey, rightKey, xxhash.Sum64String)
	case *tabular.BoolColumnType:
		return hashJoinOn(left, right, leftKey, rightKey, func(v bool) uint64 {
			if v {
				return xxhash.Sum64([]byte{1})
			}
			return xxhash.Sum64([]byte{0})
		})
	}
	return nil, errors.InvalidOperationError{Op: "join on a key of kind " + lcol.Type().Name()}
}

func hashUint64(v uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return xxhash.Sum64(buf[:])
}

// hashJoinOn buckets right-side rows by key hash, probes with each left row, and keeps
// only pairs whose keys actually match. Rows with a missing key on either side never
// enter the result.
func hashJoinOn[T comparable](left *frame.View, right *frame.View, leftKey string, rightKey string, hash func(T) uint64) (*frame.View, error) {
	ldata, err := frame.FieldOf[T](left, leftKey)
	if err != nil {
		return nil, err
	}
	rdata, err := frame.FieldOf[T](right, rightKey)
	if err != nil {
		return nil, err
	}

	buckets := make(map[uint64][]int)
	for i := 0; i < rdata.Len(); i++ {
		v, _ := rdata.Get(i)
		if !v.Exists() {
			continue
		}
		h := hash(v.Unwrap())
		buckets[h] = append(buckets[h], i)
	}

	var lidx, ridx []int
	for i := 0; i < ldata.Len(); i++ {
		v, _ := ldata.Get(i)
		if !v.Exists() {
			continue
		}
		for _, ri := range buckets[hash(v.Unwrap())] {
			rv, _ := rdata.Get(ri)
			// hashes can collide, so verify the keys themselves
			if rv.Exists() && rv.Unwrap() == v.Unwrap() {
				lidx = append(lidx, i)
				ridx = append(ridx, ri)
			}
		}
	}

	logger.Logf(logging.DebugLevel, "matched %d row pairs across %d hash buckets", len(lidx), len(buckets))
	lv, err := left.GatherRows(lidx)
	if err != nil {
		return nil, err
	}
	rv, err := right.GatherRows(ridx)
	if err != nil {
		return nil, err
	}
	return frame.MergeKeyed(lv, rv, leftKey, rightKey, true)
}
