package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsHHMM reports whether s is a zero-padded 24h "HH:MM" string.
func IsHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

// ToMinutes converts "HH:MM" to minutes since midnight. Callers are
// expected to validate the format first; malformed input is an error.
func ToMinutes(s string) (int, error) {
	if !IsHHMM(s) {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	return h*60 + m, nil
}

// ToHHMM converts minutes since midnight back to "HH:MM". The hour
// wraps modulo 24; scheduling rejects slots crossing midnight before
// this matters.
func ToHHMM(minutes int) string {
	h := (minutes / 60) % 24
	m := minutes % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect. Strict inequalities: an interval ending
// exactly when the other begins does not overlap.
func Overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && startB < endA
}
