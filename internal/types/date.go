package types

import (
	"time"

	ierr "github.com/recurbill/recurbill/internal/errors"
)

// NextBillingDate calculates the next billing date for a schedule from the
// given date, based on its billing frequency, billing day, and billing cycle
// policy. For example:
// - MONTHLY with no cycle pins the result to min(billingDay, days in month).
// - MONTHLY with FIRST_OF_MONTH pins the result to the 1st of the next month.
// - QUARTERLY with FIRST_OF_QUARTER pins to the 1st of the quarter-start month.
// - A bare integer frequency like "45" adds that many days.
// The function is pure: no side effects, the time of day is preserved.
//
// ONE_TIME schedules do not advance; calling this for one is a caller error.
func NextBillingDate(from time.Time, frequency BillingFrequency, billingDay int, cycle BillingCycle) (time.Time, error) {
	switch frequency {
	case BILLING_FREQUENCY_DAILY:
		return from.AddDate(0, 0, 1), nil
	case BILLING_FREQUENCY_WEEKLY:
		return from.AddDate(0, 0, 7), nil
	case BILLING_FREQUENCY_BIWEEKLY:
		return from.AddDate(0, 0, 14), nil
	case BILLING_FREQUENCY_MONTHLY:
		next := AddClampedMonths(from, 1)
		switch cycle {
		case BILLING_CYCLE_FIRST_OF_MONTH:
			return PinDay(next, 1), nil
		case BILLING_CYCLE_END_OF_MONTH:
			// One further month forward, then day zero of that month, which
			// is the last day of the month we first landed in. This
			// double-advance reproduces the historical behavior exactly;
			// do not "fix" it without confirming intent with stakeholders.
			next = AddClampedMonths(next, 1)
			return dayZeroOf(next), nil
		default:
			return PinDay(next, billingDay), nil
		}
	case BILLING_FREQUENCY_QUARTERLY:
		next := AddClampedMonths(from, 3)
		if cycle == BILLING_CYCLE_FIRST_OF_QUARTER {
			return startOfQuarter(next), nil
		}
		return PinDay(next, billingDay), nil
	case BILLING_FREQUENCY_YEARLY:
		return PinDay(AddClampedMonths(from, 12), billingDay), nil
	case BILLING_FREQUENCY_BIANNUALLY:
		// No explicit rule existed for this cadence; a six month advance
		// with the yearly day pin is the inferred behavior.
		return PinDay(AddClampedMonths(from, 6), billingDay), nil
	case BILLING_FREQUENCY_ONE_TIME:
		return from, ierr.NewError("one-time schedule cannot be advanced").
			WithHint("One-time schedules bill exactly once and have no next billing date").
			Mark(ierr.ErrInvalidOperation)
	default:
		// Custom day interval. An unparseable value falls back to the
		// default interval rather than failing; see DefaultCustomIntervalDays.
		days, ok := frequency.CustomIntervalDays()
		if !ok {
			days = DefaultCustomIntervalDays
		}
		return from.AddDate(0, 0, days), nil
	}
}

// AddClampedMonths adds the given number of months, clamping the day of
// month to the length of the resulting month instead of letting it overflow
// the way time.AddDate does (Jan 31 + 1 month is Feb 29, not Mar 2).
func AddClampedMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y
	newM := int(m) + months
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	if last := DaysInMonth(newY, time.Month(newM)); d > last {
		d = last
	}

	return time.Date(newY, time.Month(newM), d, h, min, sec, t.Nanosecond(), t.Location())
}

// PinDay returns t with its day of month set to min(day, days in t's month).
// A day of zero or less means the first of the month.
func PinDay(t time.Time, day int) time.Time {
	if day < 1 {
		day = 1
	}
	if last := DaysInMonth(t.Year(), t.Month()); day > last {
		day = last
	}
	h, min, sec := t.Clock()
	return time.Date(t.Year(), t.Month(), day, h, min, sec, t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of calendar days in the given month,
// accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	// day zero of the following month normalizes to this month's last day
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dayZeroOf returns the last day of the month preceding t's month,
// preserving the time of day.
func dayZeroOf(t time.Time) time.Time {
	h, min, sec := t.Clock()
	return time.Date(t.Year(), t.Month(), 0, h, min, sec, t.Nanosecond(), t.Location())
}

// startOfQuarter returns the first day of t's calendar quarter
// (January, April, July, October), preserving the time of day.
func startOfQuarter(t time.Time) time.Time {
	quarterMonth := time.Month(((int(t.Month())-1)/3)*3 + 1)
	h, min, sec := t.Clock()
	return time.Date(t.Year(), quarterMonth, 1, h, min, sec, t.Nanosecond(), t.Location())
}
