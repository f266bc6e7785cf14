package join

import (
	"reflect"

	"golang.org/x/sync/errgroup"

	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/column"
	"github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/frame"
	"github.com/go-tabular/tabular/logging"
)

var logger = logging.NewLogger(logging.WarnLevel)

// SetLogLevel adjusts the verbosity of join tracing
func SetLogLevel(level int) {
	logger.SetLevel(level)
}

// Join performs a sort-merge join of two Views on a key field from each side, pairing
// rows whose keys satisfy pred. Output rows follow key order; missing keys never match
// any predicate. Both key fields must share an orderable kind, and floating-point keys
// are rejected since NaN admits no total join order.
func Join(left *frame.View, right *frame.View, leftKey string, rightKey string, pred Predicate) (*frame.View, error) {
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
		return keyJoin(left, right, leftKey, rightKey, pred, tabular.CompareValues[uint64])
	case *tabular.Int64ColumnType:
		return keyJoin(left, right, leftKey, rightKey, pred, tabular.CompareValues[int64])
	case *tabular.StringColumnType:
		return keyJoin(left, right, leftKey, rightKey, pred, tabular.CompareValues[string])
	case *tabular.BoolColumnType:
		return keyJoin(left, right, leftKey, rightKey, pred, tabular.CompareBoolValues)
	}
	return nil, errors.InvalidOperationError{Op: "join on a key of kind " + lcol.Type().Name()}
}

// keyJoin computes the matching row index pairs, materializes each side's rows, and
// reconciles the two materialized Views into one
func keyJoin[T any](left *frame.View, right *frame.View, leftKey string, rightKey string, pred Predicate, compare func(left tabular.Value[T], right tabular.Value[T]) int) (*frame.View, error) {
	ldata, err := frame.FieldOf[T](left, leftKey)
	if err != nil {
		return nil, err
	}
	rdata, err := frame.FieldOf[T](right, rightKey)
	if err != nil {
		return nil, err
	}
	lidx, ridx := mergeIndices(ldata, rdata, pred, compare)
	logger.Logf(logging.DebugLevel, "matched %d row pairs under %s", len(lidx), pred)
	lv, err := left.GatherRows(lidx)
	if err != nil {
		return nil, err
	}
	rv, err := right.GatherRows(ridx)
	if err != nil {
		return nil, err
	}
	return frame.MergeKeyed(lv, rv, leftKey, rightKey, pred == Equal)
}

// mergeIndices walks both key columns in sorted order and collects, per matching run
// pair, the cross product of original row indices satisfying pred. Rows with a missing
// key on either side are dropped at emission.
func mergeIndices[T any](leftKey tabular.DataIndex[T], rightKey tabular.DataIndex[T], pred Predicate, compare func(left tabular.Value[T], right tabular.Value[T]) int) ([]int, []int) {
	if leftKey.IsEmpty() || rightKey.IsEmpty() {
		return nil, nil
	}

	var leftOrder, rightOrder []int
	var g errgroup.Group
	g.Go(func() error {
		leftOrder = column.SortOrderBy(leftKey, compare)
		return nil
	})
	g.Go(func() error {
		rightOrder = column.SortOrderBy(rightKey, compare)
		return nil
	})
	_ = g.Wait()

	lval := func(sortedIdx int) tabular.Value[T] {
		v, _ := leftKey.Get(leftOrder[sortedIdx])
		return v
	}
	rval := func(sortedIdx int) tabular.Value[T] {
		v, _ := rightKey.Get(rightOrder[sortedIdx])
		return v
	}

	var leftMerge, rightMerge []int
	leftIdx, rightIdx := 0, 0
	for leftIdx < len(leftOrder) && rightIdx < len(rightOrder) {
		leftVal := lval(leftIdx)
		rightVal := rval(rightIdx)
		action := pred.apply(compare(leftVal, rightVal))
		if !action.add {
			if action.advanceLeft {
				leftIdx++
			}
			if action.advanceRight {
				rightIdx++
			}
			continue
		}

		leftSubset := []int{leftIdx}
		rightSubset := []int{rightIdx}
		leftIdxEnd := leftIdx + 1
		rightIdxEnd := rightIdx + 1
		if pred.isEqualityClass() {
			// a matching run pairs every entry holding the same key
			for leftIdxEnd < len(leftOrder) && compare(leftVal, lval(leftIdxEnd)) == 0 {
				leftSubset = append(leftSubset, leftIdxEnd)
				leftIdxEnd++
			}
			for rightIdxEnd < len(rightOrder) && compare(rightVal, rval(rightIdxEnd)) == 0 {
				rightSubset = append(rightSubset, rightIdxEnd)
				rightIdxEnd++
			}
		}
		leftEqEnd, rightEqEnd := leftIdxEnd, rightIdxEnd
		if pred.isGreaterThanClass() {
			// every later left key also exceeds the current right run
			for leftIdxEnd < len(leftOrder) {
				leftSubset = append(leftSubset, leftIdxEnd)
				leftIdxEnd++
			}
		}
		if pred.isLessThanClass() {
			// every later right key also exceeds the current left run
			for rightIdxEnd < len(rightOrder) {
				rightSubset = append(rightSubset, rightIdxEnd)
				rightIdxEnd++
			}
		}

		for _, li := range leftSubset {
			if !lval(li).Exists() {
				continue
			}
			for _, ri := range rightSubset {
				if !rval(ri).Exists() {
					continue
				}
				leftMerge = append(leftMerge, leftOrder[li])
				rightMerge = append(rightMerge, rightOrder[ri])
			}
		}

		pred.advance(&leftIdx, &rightIdx, leftEqEnd, rightEqEnd)
	}
	return leftMerge, rightMerge
}
