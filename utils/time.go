package utils

import "time"

// ToIST converts UTC time to Indian Standard Time (IST)
func ToIST(t time.Time) time.Time {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return t // Fallback to UTC if IST is not available
	}
	return t.In(ist)
}

// SameDay reports whether two instants fall on the same calendar day,
// independent of time-of-day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthBounds returns the first and last day of t's calendar month, both
// at local midnight. Callers treat the range as inclusive of both
// endpoints.
func MonthBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, -1)
	return start, end
}

// Age computes full years elapsed since dob, adjusting for whether the
// birthday has passed this year.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// YearsSince is the naive year subtraction used by the demographic
// charts; it ignores month and day, unlike Age.
func YearsSince(dob, now time.Time) int {
	return now.Year() - dob.Year()
}
