package domain

import "time"

// Overlaps reports whether two half-open intervals [startA, endA) and
// [startB, endB) intersect. An interval ending exactly when the other
// begins does not overlap.
//
// This predicate is the single source of truth for every busy/free
// decision in the engine; availability, allocation and conflict checks
// must all go through it rather than re-deriving the comparison
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}
