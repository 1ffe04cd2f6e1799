package pkg

import (
	"math"
	"time"
)

// DayLayout is the YYYY-MM-DD key used for calendar days.
const DayLayout = "2006-01-02"

// DayKey returns the calendar date of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// DaysBetween counts calendar days from "from" to "to", both observed in loc.
// Times of day are ignored, so 23:59 and 00:01 of the next day are 1 day apart.
// The result is negative when "from" is a later date than "to".
func DaysBetween(from, to time.Time, loc *time.Location) int {
	return int(math.Round(midnightUTC(to, loc).Sub(midnightUTC(from, loc)).Hours() / 24))
}

func midnightUTC(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoadLocation loads an IANA timezone; an empty name means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
