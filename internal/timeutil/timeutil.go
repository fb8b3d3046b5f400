// Package timeutil provides utility functions for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const secondsInAMinute = 60

// Round rounds a time value in seconds, minutes, or hours to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(val float64) (mins, secs int) {
	total := Round(val)
	if total < 0 {
		total = 0
	}

	return total / secondsInAMinute, total % secondsInAMinute
}

// FormatRemaining returns d formatted as "MM:SS".
func FormatRemaining(d time.Duration) string {
	m, s := SecsToMinsAndSecs(d.Seconds())

	return fmt.Sprintf("%02d:%02d", m, s)
}

// TruncateToMinute discards the seconds and sub-seconds of t and returns the
// result in UTC.
func TruncateToMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// MinutesBetween returns the number of whole-minute marks from start to end
// inclusive, after truncating both to the minute. It returns 0 when end is
// before start.
func MinutesBetween(start, end time.Time) int {
	first, last := TruncateToMinute(start), TruncateToMinute(end)
	if last.Before(first) {
		return 0
	}

	return int(last.Sub(first)/time.Minute) + 1
}

// NextTick returns the first instant anchor+k*interval (k >= 1) that is not
// before ref.
func NextTick(anchor, ref time.Time, interval time.Duration) time.Time {
	elapsed := ref.Sub(anchor)

	k := elapsed / interval
	if elapsed%interval != 0 {
		k++
	}

	if k < 1 {
		k = 1
	}

	return anchor.Add(k * interval)
}

// ClockFormat returns the layout used to display wall-clock times.
func ClockFormat(twentyFourHour bool) string {
	if twentyFourHour {
		return "15:04:05"
	}

	return "03:04:05 PM"
}
