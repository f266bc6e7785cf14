package column

import (
	"cmp"
	"sort"

	"github.com/go-tabular/tabular"
)

// SortOrder computes a permutation of 0..Len() which, when applied to data, yields a
// non-decreasing sequence under the default comparator (NA sorts before any existing
// value). The sort is stable: entries with equal keys keep their original relative order.
func SortOrder[T cmp.Ordered](data tabular.DataIndex[T]) []int {
	return SortOrderBy(data, tabular.CompareValues[T])
}

// SortOrderUnstable is SortOrder without the stability guarantee. It may be faster.
func SortOrderUnstable[T cmp.Ordered](data tabular.DataIndex[T]) []int {
	return SortOrderUnstableBy(data, tabular.CompareValues[T])
}

// SortOrderBy computes a stable sorted permutation under a caller-provided three-way
// comparator over Value pairs. Used with tabular.SortFloat64Values and friends for
// NaN-aware float ordering.
func SortOrderBy[T any](data tabular.DataIndex[T], compare func(left tabular.Value[T], right tabular.Value[T]) int) []int {
	order := identityOrder(data.Len())
	sort.SliceStable(order, func(i, j int) bool {
		// order entries are always within range
		left, _ := data.Get(order[i])
		right, _ := data.Get(order[j])
		return compare(left, right) < 0
	})
	return order
}

// SortOrderUnstableBy is SortOrderBy without the stability guarantee
func SortOrderUnstableBy[T any](data tabular.DataIndex[T], compare func(left tabular.Value[T], right tabular.Value[T]) int) []int {
	order := identityOrder(data.Len())
	sort.Slice(order, func(i, j int) bool {
		left, _ := data.Get(order[i])
		right, _ := data.Get(order[j])
		return compare(left, right) < 0
	})
	return order
}

// FilterPerm returns, in original relative order, the indices of the entries whose value
// satisfies predicate
func FilterPerm[T any](data tabular.DataIndex[T], predicate func(tabular.Value[T]) bool) []int {
	out := make([]int, 0, data.Len())
	for idx := 0; idx < data.Len(); idx++ {
		v, _ := data.Get(idx)
		if predicate(v) {
			out = append(out, idx)
		}
	}
	return out
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
