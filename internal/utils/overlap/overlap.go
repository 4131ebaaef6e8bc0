package overlap

import "time"

// Intersects reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) overlap. Intervals that merely share a boundary do not:
// an assignment ending at 12:00 does not conflict with one starting at 12:00.
func Intersects(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
