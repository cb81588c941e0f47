package valueobject

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a billing range has start after end.
var ErrInvalidRange = errors.New("billing range start month is after end month")

// BillingRange bounds the months a student is billed for within a year.
// ActivePeriod selects a cohort year; zero means the range applies to all
// years the student has been enrolled (lifetime billing).
type BillingRange struct {
	startMonth   int
	endMonth     int
	activePeriod int
}

// Default billing window when no configuration row exists.
const (
	DefaultStartMonth   = 1
	DefaultEndMonth     = 6
	DefaultActivePeriod = 0
)

// NewBillingRange validates and creates a BillingRange.
func NewBillingRange(startMonth, endMonth, activePeriod int) (BillingRange, error) {
	if startMonth < 1 || startMonth > 12 {
		return BillingRange{}, fmt.Errorf("start month out of range: %d", startMonth)
	}
	if endMonth < 1 || endMonth > 12 {
		return BillingRange{}, fmt.Errorf("end month out of range: %d", endMonth)
	}
	if startMonth > endMonth {
		return BillingRange{}, ErrInvalidRange
	}
	if activePeriod < 0 {
		return BillingRange{}, fmt.Errorf("active period cannot be negative: %d", activePeriod)
	}
	return BillingRange{startMonth: startMonth, endMonth: endMonth, activePeriod: activePeriod}, nil
}

// DefaultBillingRange returns the range used when nothing is configured.
func DefaultBillingRange() BillingRange {
	r, _ := NewBillingRange(DefaultStartMonth, DefaultEndMonth, DefaultActivePeriod)
	return r
}

// StartMonth returns the first billed month (1..12).
func (r BillingRange) StartMonth() int { return r.startMonth }

// EndMonth returns the last billed month (1..12).
func (r BillingRange) EndMonth() int { return r.endMonth }

// ActivePeriod returns the cohort year the range targets, or zero for all.
func (r BillingRange) ActivePeriod() int { return r.activePeriod }

// IsLifetime returns true if the range applies across every enrollment year.
func (r BillingRange) IsLifetime() bool { return r.activePeriod == 0 }

// Months lists the billed months in ascending order.
func (r BillingRange) Months() []int {
	months := make([]int, 0, r.endMonth-r.startMonth+1)
	for m := r.startMonth; m <= r.endMonth; m++ {
		months = append(months, m)
	}
	return months
}

// Contains reports whether the given month falls inside the range.
func (r BillingRange) Contains(month int) bool {
	return month >= r.startMonth && month <= r.endMonth
}

// AppliesTo reports whether the range governs the given year.
func (r BillingRange) AppliesTo(year int) bool {
	return r.activePeriod == 0 || r.activePeriod == year
}
