package domain

import (
	"math"
	"time"
)

// DayFloor truncates t to midnight in loc. All day arithmetic is
// midnight-to-midnight in the user's selected timezone; time-of-day
// components are ignored entirely.
func DayFloor(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DaysBetween returns the signed number of day boundaries between from
// and to in loc. Rounding absorbs DST-shortened and -lengthened days.
func DaysBetween(from, to time.Time, loc *time.Location) int {
	hours := DayFloor(to, loc).Sub(DayFloor(from, loc)).Hours()
	return int(math.Round(hours / 24))
}
