package timezone

import "time"

// Single-location business: one implicit timezone for every date
// comparison. Configurable via TIMEZONE, set once at startup.
const DefaultTimezone = "Asia/Manila"

var business = mustLoad(DefaultTimezone)

func mustLoad(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Configure switches the business timezone. Invalid names keep the
// default.
func Configure(tz string) {
	if IsValid(tz) {
		business = mustLoad(tz)
	}
}

func Location() *time.Location {
	return business
}

func Now() time.Time {
	return time.Now().In(business)
}

// Today returns midnight of the current business day.
func Today() time.Time {
	now := Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, business)
}

// ParseDate parses a "YYYY-MM-DD" calendar day in the business timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, business)
}

// DateOnly truncates t to midnight of its business-timezone day, so
// appointment date comparisons are by calendar day only.
func DateOnly(t time.Time) time.Time {
	t = t.In(business)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, business)
}
