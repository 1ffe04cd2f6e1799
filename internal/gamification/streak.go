package gamification

import (
	"time"

	"github.com/2beens/fittrack/pkg"
)

// NextStreak returns the streak after a workout at now, given the streak so far
// and the date of the previous workout. Days are compared in loc.
func NextStreak(current int, last *time.Time, now time.Time, loc *time.Location) int {
	if last == nil {
		return 1
	}

	switch pkg.DaysBetween(*last, now, loc) {
	case 0:
		if current < 1 {
			return 1
		}
		return current
	case 1:
		return current + 1
	default:
		// a gap, or a last date in the future
		return 1
	}
}
