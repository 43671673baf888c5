package domain

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DateOf returns midnight UTC of t's calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// AnniversaryDate returns start + k years. It is always computed from the
// start date, so a Feb 29 start lands on Mar 1 in common years without
// drifting in later leap years.
func AnniversaryDate(start time.Time, k int) time.Time {
	return DateOf(start).AddDate(k, 0, 0)
}

// NextAnniversary returns the first anniversary (k >= 1) on or after asOf.
// It is meant for display and says nothing about whether a payout is due.
func NextAnniversary(start, asOf time.Time) time.Time {
	start, asOf = DateOf(start), DateOf(asOf)

	k := asOf.Year() - start.Year()
	if k < 1 {
		k = 1
	}
	for AnniversaryDate(start, k).Before(asOf) {
		k++
	}

	return AnniversaryDate(start, k)
}

// DueDate returns the most recent anniversary on or before asOf that falls
// strictly after the last payout, or after the start date when nothing has
// been paid yet. Earlier missed cycles are not reported.
func DueDate(start time.Time, lastPayout *time.Time, asOf time.Time) (time.Time, bool) {
	start, asOf = DateOf(start), DateOf(asOf)

	k := asOf.Year() - start.Year()
	for k >= 1 && AnniversaryDate(start, k).After(asOf) {
		k--
	}
	if k < 1 {
		return time.Time{}, false
	}

	due := AnniversaryDate(start, k)

	floor := start
	if lastPayout != nil {
		floor = DateOf(*lastPayout)
	}
	if !due.After(floor) {
		return time.Time{}, false
	}

	return due, true
}
