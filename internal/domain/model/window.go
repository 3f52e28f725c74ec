package model

import "time"

// Window is a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the window. Start is inclusive, End is
// exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// SeasonWindow returns the promotional window for the UTC year of now:
// October 1st 12:00 UTC up to November 1st 12:00 UTC.
func SeasonWindow(now time.Time) Window {
	return WindowForYear(now.UTC().Year())
}

// WindowForYear returns the promotional window of the given year.
func WindowForYear(year int) Window {
	return Window{
		Start: time.Date(year, time.October, 1, 12, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.November, 1, 12, 0, 0, 0, time.UTC),
	}
}

// CommentCutoff is the latest instant (exclusive) a comment may have been
// created at to count as prior engagement: one calendar month before Start.
func (w Window) CommentCutoff() time.Time {
	return w.Start.AddDate(0, -1, 0)
}

// YearStart returns January 1st 00:00 UTC of the window's year.
func (w Window) YearStart() time.Time {
	return time.Date(w.Start.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the number of calendar months from "from" to "to",
// with the partial trailing month expressed as a fraction of that month's
// length. The result is negative when to precedes from.
func MonthsBetween(from, to time.Time) float64 {
	from, to = from.UTC(), to.UTC()
	if to.Before(from) {
		return -MonthsBetween(to, from)
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	anchor := from.AddDate(0, months, 0)
	for months > 0 && anchor.After(to) {
		months--
		anchor = from.AddDate(0, months, 0)
	}

	next := from.AddDate(0, months+1, 0)
	return float64(months) + float64(to.Sub(anchor))/float64(next.Sub(anchor))
}
