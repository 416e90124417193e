package types

import (
	"testing"
	"time"

	ierr "github.com/recurbill/recurbill/internal/errors"
)

func TestNextBillingDate(t *testing.T) {
	tests := []struct {
		name       string
		from       time.Time
		frequency  BillingFrequency
		billingDay int
		cycle      BillingCycle
		want       time.Time
	}{
		{
			name:      "daily advances one day",
			from:      time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_DAILY,
			want:      time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "daily crosses month boundary",
			from:      time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_DAILY,
			want:      time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "weekly advances seven days",
			from:      time.Date(2024, time.March, 28, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_WEEKLY,
			want:      time.Date(2024, time.April, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "biweekly advances fourteen days",
			from:      time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_BIWEEKLY,
			want:      time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monthly pins billing day",
			from:       time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_MONTHLY,
			billingDay: 15,
			want:       time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monthly clamps day 31 to leap February",
			from:       time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_MONTHLY,
			billingDay: 31,
			want:       time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monthly clamps day 31 to non-leap February",
			from:       time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_MONTHLY,
			billingDay: 31,
			want:       time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "monthly re-pins to day 31 after short month",
			from:       time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_MONTHLY,
			billingDay: 31,
			want:       time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "first of month pins to the 1st of next month",
			from:      time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_MONTHLY,
			cycle:     BILLING_CYCLE_FIRST_OF_MONTH,
			want:      time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "end of month lands on last day of next month",
			from:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_MONTHLY,
			cycle:     BILLING_CYCLE_END_OF_MONTH,
			want:      time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "end of month from February",
			from:      time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_MONTHLY,
			cycle:     BILLING_CYCLE_END_OF_MONTH,
			want:      time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "quarterly pins billing day",
			from:       time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_QUARTERLY,
			billingDay: 20,
			want:       time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "quarterly clamps day 31 to April",
			from:       time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_QUARTERLY,
			billingDay: 31,
			want:       time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "first of quarter pins to quarter start",
			from:      time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_QUARTERLY,
			cycle:     BILLING_CYCLE_FIRST_OF_QUARTER,
			want:      time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "first of quarter crosses year boundary",
			from:      time.Date(2024, time.November, 20, 0, 0, 0, 0, time.UTC),
			frequency: BILLING_FREQUENCY_QUARTERLY,
			cycle:     BILLING_CYCLE_FIRST_OF_QUARTER,
			want:      time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "yearly from leap day lands on Feb 28",
			from:       time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_YEARLY,
			billingDay: 29,
			want:       time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "yearly pins billing day",
			from:       time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_YEARLY,
			billingDay: 5,
			want:       time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "biannually advances six months",
			from:       time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			frequency:  BILLING_FREQUENCY_BIANNUALLY,
			billingDay: 31,
			want:       time.Date(2024, time.July, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "custom interval of 45 days",
			from:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			frequency: BillingFrequency("45"),
			want:      time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "unparseable frequency falls back to 30 days",
			from:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			frequency: BillingFrequency("EVERY_FULL_MOON"),
			want:      time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "time of day is preserved",
			from:      time.Date(2024, time.March, 10, 15, 30, 45, 0, time.UTC),
			frequency: BILLING_FREQUENCY_MONTHLY,
			cycle:     BILLING_CYCLE_FIRST_OF_MONTH,
			want:      time.Date(2024, time.April, 1, 15, 30, 45, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextBillingDate(tt.from, tt.frequency, tt.billingDay, tt.cycle)
			if err != nil {
				t.Errorf("NextBillingDate() error = %v", err)
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextBillingDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextBillingDate_OneTime(t *testing.T) {
	from := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := NextBillingDate(from, BILLING_FREQUENCY_ONE_TIME, 10, BILLING_CYCLE_NONE)
	if err == nil {
		t.Fatal("NextBillingDate() expected error for one-time frequency")
	}
	if !ierr.IsInvalidOperation(err) {
		t.Errorf("NextBillingDate() error = %v, want invalid operation", err)
	}
}

func TestAddClampedMonths(t *testing.T) {
	tests := []struct {
		name   string
		from   time.Time
		months int
		want   time.Time
	}{
		{
			name:   "jan 31 plus one month clamps to feb 29",
			from:   time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "crosses year boundary",
			from:   time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
			months: 3,
			want:   time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "twelve months keeps day when possible",
			from:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
			months: 12,
			want:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "negative months",
			from:   time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
			months: -1,
			want:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddClampedMonths(tt.from, tt.months)
			if !got.Equal(tt.want) {
				t.Errorf("AddClampedMonths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2100, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
