// Package billing computes recurring calendar windows anchored to arbitrary
// day-of-month boundaries and validates budget periods against each other.
// Everything here is a pure function of its inputs: windows are recomputed
// on every query because the reference date changes the result.
package billing

import "time"

// Window is one billing cycle, a closed day-level interval.
type Window struct {
	Start time.Time `json:"startDate"`
	End   time.Time `json:"endDate"`
}

// Contains reports whether t falls inside the window, inclusive on both
// ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Period computes the billing window that the reference date falls into,
// for cycles anchored at startDay and endDay (both 1-31).
//
// A cycle where startDay is numerically greater than endDay spans a month
// boundary (paycheck-to-paycheck style, e.g. 25 -> 10). End anchors beyond
// the end month's actual length are clamped to its last day, so endDay=31
// lands on Feb 28/29 rather than a nonexistent date.
func Period(startDay, endDay int, ref time.Time) Window {
	ref = midnight(ref)

	if startDay < 1 || startDay > 31 || endDay < 1 || endDay > 31 {
		// No anchors configured: fall back to the calendar month.
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Window{Start: start, End: anchoredDay(ref.Year(), ref.Month(), 31, ref.Location())}
	}

	day := ref.Day()
	switch {
	case day >= startDay && day <= endDay:
		// Whole window inside the reference month.
		return Window{
			Start: anchoredDay(ref.Year(), ref.Month(), startDay, ref.Location()),
			End:   anchoredDay(ref.Year(), ref.Month(), endDay, ref.Location()),
		}
	case day < startDay:
		// Window started in the previous month and ends in this one.
		// time.Date normalizes month 0 to December of the prior year.
		prev := time.Date(ref.Year(), ref.Month()-1, 1, 0, 0, 0, 0, ref.Location())
		return Window{
			Start: anchoredDay(prev.Year(), prev.Month(), startDay, ref.Location()),
			End:   anchoredDay(ref.Year(), ref.Month(), endDay, ref.Location()),
		}
	default:
		// Window started this month and ends in the next one.
		next := time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
		return Window{
			Start: anchoredDay(ref.Year(), ref.Month(), startDay, ref.Location()),
			End:   anchoredDay(next.Year(), next.Month(), endDay, ref.Location()),
		}
	}
}

// anchoredDay places day-of-month in the given month, clamped to the month's
// actual length.
func anchoredDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func daysIn(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
