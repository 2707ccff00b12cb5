// Package humanize renders study durations for people.
package humanize

import (
	"fmt"
	"math"
)

// Minutes renders 45 as "45min", 120 as "2h" and 125 as "2h 5min".
func Minutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}

// Hours renders a fractional hour total: "45 min" below one hour, "2h 5min"
// below a day and "1d 3h" from 24 hours on.
func Hours(hours float64) string {
	if hours <= 0 || math.IsNaN(hours) {
		return "0 min"
	}
	total := int(math.Round(hours * 60))
	if total < 60 {
		return fmt.Sprintf("%d min", total)
	}
	h, m := total/60, total%60
	if h >= 24 {
		return fmt.Sprintf("%dd %dh", h/24, h%24)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}
