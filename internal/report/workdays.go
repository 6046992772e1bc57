package report

import "time"

// Workdays returns the number of weekdays in the given month. Weekends
// are excluded; holidays are not modeled, so every Monday to Friday
// counts.
func Workdays(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	count := 0
	for d := 1; d <= last; d++ {
		switch time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// monthLabel renders a (year, month) pair the way every consumer
// displays it, "January 2024".
func monthLabel(year int, month time.Month) string {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}
