package valueobject

import "fmt"

// DueKey identifies one weekly slot in a student's dues matrix.
// Months use calendar numbering (1..12) and weeks are 1..4.
type DueKey struct {
	year  int
	month int
	week  int
}

// NewDueKey validates and creates a DueKey.
func NewDueKey(year, month, week int) (DueKey, error) {
	if year < 2000 || year > 2100 {
		return DueKey{}, fmt.Errorf("year out of range: %d", year)
	}
	if month < 1 || month > 12 {
		return DueKey{}, fmt.Errorf("month out of range: %d", month)
	}
	if week < 1 || week > 4 {
		return DueKey{}, fmt.Errorf("week out of range: %d", week)
	}
	return DueKey{year: year, month: month, week: week}, nil
}

// Year returns the calendar year.
func (k DueKey) Year() int { return k.year }

// Month returns the calendar month (1..12).
func (k DueKey) Month() int { return k.month }

// Week returns the week number within the month (1..4).
func (k DueKey) Week() int { return k.week }

// String renders the key as "YYYY-MM-Wn".
func (k DueKey) String() string {
	return fmt.Sprintf("%04d-%02d-W%d", k.year, k.month, k.week)
}

// IsZero returns true if the key is uninitialized.
func (k DueKey) IsZero() bool {
	return k.year == 0
}
