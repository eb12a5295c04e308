package payroll

import "time"

// ParseMonth validates a "YYYY-MM" month identifier and returns the first
// day of that month.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return t, nil
}

// DaysInMonth returns the number of calendar days covered by the month,
// Gregorian rules (leap February included).
func DaysInMonth(month string) (int, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return 0, err
	}
	// Day zero of the next month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// CurrentMonth returns the identifier of the current calendar month.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}
