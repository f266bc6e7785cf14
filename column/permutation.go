package column

import (
	"github.com/go-tabular/tabular"
	"github.com/go-tabular/tabular/errors"
)

// Permutation is an optional remapping of indices onto an underlying column. The zero
// Permutation is the identity: the full column in its original order. Composing a new
// permutation onto an existing one maps new indices through the old, which lets chained
// filters and sorts share one remapping without materializing intermediate columns.
type Permutation struct {
	perm []int
}

// NewPermutation validates indices against the target length and wraps them in a
// Permutation. Construction fails when any index addresses an entry at or beyond
// targetLen.
func NewPermutation(indices []int, targetLen int) (*Permutation, error) {
	if err := checkIndices(indices, targetLen); err != nil {
		return nil, err
	}
	return &Permutation{perm: append([]int(nil), indices...)}, nil
}

func checkIndices(indices []int, targetLen int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= targetLen {
			return errors.LengthMismatchError{Expected: targetLen, Actual: len(indices)}
		}
	}
	return nil
}

// IsPermuted returns whether a remapping is actually present
func (p *Permutation) IsPermuted() bool {
	return p != nil && p.perm != nil
}

// MapIndex returns the re-organized index for a requested index
func (p *Permutation) MapIndex(requested int) int {
	if !p.IsPermuted() {
		return requested
	}
	return p.perm[requested]
}

// Len returns the length of this permutation. ok is false when no remapping exists, in
// which case the full underlying column in its original order applies.
func (p *Permutation) Len() (n int, ok bool) {
	if !p.IsPermuted() {
		return 0, false
	}
	return len(p.perm), true
}

// LenOr returns the permutation length, or underlying when no remapping exists
func (p *Permutation) LenOr(underlying int) int {
	if n, ok := p.Len(); ok {
		return n
	}
	return underlying
}

// Update composes newPerm onto this Permutation, mapping each new index through the
// previous remapping
func (p *Permutation) Update(newPerm []int) {
	if !p.IsPermuted() {
		p.perm = append([]int(nil), newPerm...)
		return
	}
	composed := make([]int, len(newPerm))
	for i, idx := range newPerm {
		composed[i] = p.perm[idx]
	}
	p.perm = composed
}

// Clone returns a copy of this Permutation
func (p *Permutation) Clone() *Permutation {
	if !p.IsPermuted() {
		return &Permutation{}
	}
	return &Permutation{perm: append([]int(nil), p.perm...)}
}

// Equal reports whether two Permutations denote the same remapping
func (p *Permutation) Equal(other *Permutation) bool {
	if p.IsPermuted() != other.IsPermuted() {
		return false
	}
	if !p.IsPermuted() {
		return true
	}
	if len(p.perm) != len(other.perm) {
		return false
	}
	for i := range p.perm {
		if p.perm[i] != other.perm[i] {
			return false
		}
	}
	return true
}

// Permuted is a lazy reordering of a DataIndex. It reads through to the underlying
// column; nothing is copied.
type Permuted[T any] struct {
	data tabular.DataIndex[T]
	perm *Permutation
}

// Permute returns a lazy view of data reordered by indices, validating them against the
// column length
func Permute[T any](data tabular.DataIndex[T], indices []int) (*Permuted[T], error) {
	p, err := NewPermutation(indices, data.Len())
	if err != nil {
		return nil, err
	}
	return &Permuted[T]{data: data, perm: p}, nil
}

// Len returns the length of the permutation
func (p *Permuted[T]) Len() int {
	return p.perm.LenOr(p.data.Len())
}

// IsEmpty returns true iff Len() == 0
func (p *Permuted[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Get returns the (possibly missing) datum at the permuted position idx
func (p *Permuted[T]) Get(idx int) (tabular.Value[T], error) {
	if idx < 0 || idx >= p.Len() {
		return tabular.Na[T](), errors.IndexOutOfBoundsError{Index: idx, Len: p.Len()}
	}
	return p.data.Get(p.perm.MapIndex(idx))
}

// Iter returns a fresh lazy iterator over the reordered column
func (p *Permuted[T]) Iter() tabular.ValueIterator[T] {
	return Iterate[T](p)
}

// ToSlice copies the existing data of the reordered column into a new slice
func (p *Permuted[T]) ToSlice() []T {
	return ToSlice[T](p)
}

// ToValues copies every entry of the reordered column into a new slice
func (p *Permuted[T]) ToValues() []tabular.Value[T] {
	return ToValues[T](p)
}
