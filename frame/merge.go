package frame

import (
	"sort"

	"github.com/go-tabular/tabular/errors"
)

// suffixes applied to both sides of a keyed label collision that cannot be unified
const (
	leftSuffix  = "_left"
	rightSuffix = "_right"
)

// Merge combines the fields of two Views over the same number of rows into one View,
// without copying any frame data. Frames referenced by both sides under the same
// permutation are deduplicated. Label collisions are an error.
func Merge(left *View, right *View) (*View, error) {
	if left.NumRows() != right.NumRows() {
		return nil, errors.LengthMismatchError{Expected: left.NumRows(), Actual: right.NumRows()}
	}
	return merge(left, right, "", "", false, false)
}

// MergeKeyed is Merge for join output, where both sides carry the join key. When the two
// key labels match and equalKeys is true the right key field is dropped as redundant;
// when they match but key values may differ the two fields are kept and disambiguated
// with "_left" and "_right" suffixes. Collisions on non-key labels remain an error.
func MergeKeyed(left *View, right *View, leftKey string, rightKey string, equalKeys bool) (*View, error) {
	if left.NumRows() != right.NumRows() {
		return nil, errors.LengthMismatchError{Expected: left.NumRows(), Actual: right.NumRows()}
	}
	return merge(left, right, leftKey, rightKey, true, equalKeys)
}

func merge(left *View, right *View, leftKey string, rightKey string, keyed bool, equalKeys bool) (*View, error) {
	nv := left.derive()

	// map right frame indices into the merged View, reusing any frame the left side
	// already references under an identical permutation
	remap := make(map[int]int, len(right.frames))
	for ri, rfr := range right.frames {
		found := -1
		for li, lfr := range nv.frames {
			if lfr.frame.ID() == rfr.frame.ID() && lfr.perm.Equal(rfr.perm) {
				found = li
				break
			}
		}
		if found < 0 {
			rfr.frame.retain()
			nv.frames = append(nv.frames, &frameRef{frame: rfr.frame, perm: rfr.perm.Clone()})
			found = len(nv.frames) - 1
		}
		remap[ri] = found
	}

	collisions := make(map[string]bool)
	for _, rfld := range right.fields {
		label := rfld.Label
		if nv.HasField(label) {
			if keyed && label == leftKey && leftKey == rightKey {
				if equalKeys {
					// both sides hold identical key values on every merged row
					continue
				}
				for i := range nv.fields {
					if nv.fields[i].Label == leftKey {
						nv.fields[i].Label = leftKey + leftSuffix
					}
				}
				label = rightKey + rightSuffix
			} else {
				collisions[label] = true
				continue
			}
		}
		nv.fields = append(nv.fields, Field{
			Label:      label,
			FrameIndex: remap[rfld.FrameIndex],
			FrameLabel: rfld.FrameLabel,
		})
	}
	if len(collisions) > 0 {
		names := make([]string, 0, len(collisions))
		for name := range collisions {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, errors.FieldCollisionError{Names: names}
	}
	return nv, nil
}
