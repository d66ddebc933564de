package util

import (
	"fmt"
	"time"
)

// FormatClock renders d as m:ss, or h:mm:ss from an hour on.
// Negative durations render as 0:00.
func FormatClock(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)

	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Seconds converts fractional seconds to a duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
