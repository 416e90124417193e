package types

import "testing"

func TestBillingFrequencyValidate(t *testing.T) {
	tests := []struct {
		name      string
		frequency BillingFrequency
		wantErr   bool
	}{
		{"monthly", BILLING_FREQUENCY_MONTHLY, false},
		{"daily", BILLING_FREQUENCY_DAILY, false},
		{"one time", BILLING_FREQUENCY_ONE_TIME, false},
		{"custom day count", BillingFrequency("45"), false},
		{"zero day count", BillingFrequency("0"), true},
		{"negative day count", BillingFrequency("-5"), true},
		{"lowercase", BillingFrequency("monthly"), true},
		{"empty", BillingFrequency(""), true},
		{"garbage", BillingFrequency("EVERY_FULL_MOON"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frequency.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBillingFrequencyCustomIntervalDays(t *testing.T) {
	tests := []struct {
		frequency BillingFrequency
		wantDays  int
		wantOK    bool
	}{
		{BillingFrequency("45"), 45, true},
		{BillingFrequency("1"), 1, true},
		{BillingFrequency("0"), 0, false},
		{BillingFrequency("-10"), 0, false},
		{BILLING_FREQUENCY_MONTHLY, 0, false},
		{BillingFrequency(""), 0, false},
	}

	for _, tt := range tests {
		days, ok := tt.frequency.CustomIntervalDays()
		if days != tt.wantDays || ok != tt.wantOK {
			t.Errorf("CustomIntervalDays(%q) = (%d, %v), want (%d, %v)",
				tt.frequency, days, ok, tt.wantDays, tt.wantOK)
		}
	}
}

func TestBillingCycleValidate(t *testing.T) {
	tests := []struct {
		name    string
		cycle   BillingCycle
		wantErr bool
	}{
		{"first of month", BILLING_CYCLE_FIRST_OF_MONTH, false},
		{"end of month", BILLING_CYCLE_END_OF_MONTH, false},
		{"first of quarter", BILLING_CYCLE_FIRST_OF_QUARTER, false},
		{"none", BILLING_CYCLE_NONE, false},
		{"garbage", BillingCycle("LAST_OF_QUARTER"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cycle.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScheduleStatusValidate(t *testing.T) {
	for _, status := range []ScheduleStatus{ScheduleStatusActive, ScheduleStatusPaused, ScheduleStatusCancelled} {
		if err := status.Validate(); err != nil {
			t.Errorf("Validate(%q) error = %v", status, err)
		}
	}
	if err := ScheduleStatus("ACTIVE").Validate(); err == nil {
		t.Error("Validate() expected error for uppercase status")
	}
}
