// Package join implements sort-merge and hash joins between Views sharing a comparable
// key field. Output Views reference freshly materialized frames; inputs are never
// modified.
package join

// Predicate selects which key relation pairs two rows in a join
type Predicate int

const (
	// Equal pairs rows whose keys match
	Equal Predicate = iota
	// LessThan pairs rows where the left key is strictly below the right key
	LessThan
	// LessThanEqual pairs rows where the left key does not exceed the right key
	LessThanEqual
	// GreaterThan pairs rows where the left key is strictly above the right key
	GreaterThan
	// GreaterThanEqual pairs rows where the left key is not below the right key
	GreaterThanEqual
)

// String returns a human-readable name for this Predicate
func (p Predicate) String() string {
	switch p {
	case Equal:
		return "=="
	case LessThan:
		return "<"
	case LessThanEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanEqual:
		return ">="
	}
	return "unknown"
}

// isEqualityClass reports whether matching keys alone satisfy this Predicate
func (p Predicate) isEqualityClass() bool {
	return p == Equal || p == LessThanEqual || p == GreaterThanEqual
}

// isGreaterThanClass reports whether the Predicate pairs a left run with every right run
// at or before it
func (p Predicate) isGreaterThanClass() bool {
	return p == GreaterThan || p == GreaterThanEqual
}

// isLessThanClass reports whether the Predicate pairs a left run with every right run at
// or after it
func (p Predicate) isLessThanClass() bool {
	return p == LessThan || p == LessThanEqual
}

// predAction tells the merge loop what to do after comparing the heads of the two sorted
// key sequences
type predAction struct {
	add          bool // emit the cross product of the current runs
	advanceLeft  bool
	advanceRight bool
}

// apply maps a three-way key comparison to the merge loop's next move under this
// Predicate
func (p Predicate) apply(cmp int) predAction {
	switch {
	case cmp < 0:
		if p.isLessThanClass() {
			return predAction{add: true}
		}
		return predAction{advanceLeft: true}
	case cmp > 0:
		if p.isGreaterThanClass() {
			return predAction{add: true}
		}
		return predAction{advanceRight: true}
	}
	if p.isEqualityClass() {
		return predAction{add: true}
	}
	// strict predicates step past an exact match: left < right skips the right run head,
	// left > right skips the left run head
	if p == LessThan {
		return predAction{advanceRight: true}
	}
	return predAction{advanceLeft: true}
}

// advance moves the cursors after an emitting comparison. leftEnd and rightEnd bound the
// current runs of equal keys. Inclusive predicates step past a whole run at once; strict
// ones step a single entry so overlapping matches are revisited.
func (p Predicate) advance(leftIdx *int, rightIdx *int, leftEnd int, rightEnd int) {
	switch p {
	case Equal:
		*leftIdx = leftEnd
		*rightIdx = rightEnd
	case LessThan:
		*leftIdx++
	case LessThanEqual:
		*leftIdx = leftEnd
	case GreaterThan:
		*rightIdx++
	case GreaterThanEqual:
		*rightIdx = rightEnd
	}
}
