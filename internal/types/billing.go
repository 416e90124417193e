package types

import (
	"strconv"

	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/samber/lo"
)

const (
	// DefaultCurrency is the fallback invoice currency when the customer
	// record does not carry one
	DefaultCurrency = "GHS"

	// DefaultPaymentTermsDays is the fallback number of days between the
	// invoice date and its due date
	DefaultPaymentTermsDays = 30

	// DefaultCustomIntervalDays is the fallback interval applied when a
	// billing frequency is neither a recognized tag nor a parseable integer.
	// This leniency is a compatibility guarantee, not a defect: legacy
	// schedules with malformed frequencies keep billing on a 30 day cadence.
	DefaultCustomIntervalDays = 30
)

// BillingFrequency is the cadence at which a schedule generates invoices,
// ex MONTHLY, WEEKLY. A bare integer string like "45" is also valid and is
// interpreted as a custom interval of that many days.
type BillingFrequency string

const (
	BILLING_FREQUENCY_DAILY      BillingFrequency = "DAILY"
	BILLING_FREQUENCY_WEEKLY     BillingFrequency = "WEEKLY"
	BILLING_FREQUENCY_BIWEEKLY   BillingFrequency = "BIWEEKLY"
	BILLING_FREQUENCY_MONTHLY    BillingFrequency = "MONTHLY"
	BILLING_FREQUENCY_QUARTERLY  BillingFrequency = "QUARTERLY"
	BILLING_FREQUENCY_YEARLY     BillingFrequency = "YEARLY"
	BILLING_FREQUENCY_BIANNUALLY BillingFrequency = "BIANNUALLY"
	BILLING_FREQUENCY_ONE_TIME   BillingFrequency = "ONE_TIME"
)

func (f BillingFrequency) String() string {
	return string(f)
}

// CustomIntervalDays reports whether the frequency is a bare integer day
// count and returns it. Only positive intervals qualify.
func (f BillingFrequency) CustomIntervalDays() (int, bool) {
	days, err := strconv.Atoi(string(f))
	if err != nil || days <= 0 {
		return 0, false
	}
	return days, true
}

// Validate accepts the enumerated frequencies and positive integer strings.
// Computation is more lenient (see NextBillingDate); validation is the
// gate that keeps new malformed frequencies out of storage.
func (f BillingFrequency) Validate() error {
	allowed := []BillingFrequency{
		BILLING_FREQUENCY_DAILY,
		BILLING_FREQUENCY_WEEKLY,
		BILLING_FREQUENCY_BIWEEKLY,
		BILLING_FREQUENCY_MONTHLY,
		BILLING_FREQUENCY_QUARTERLY,
		BILLING_FREQUENCY_YEARLY,
		BILLING_FREQUENCY_BIANNUALLY,
		BILLING_FREQUENCY_ONE_TIME,
	}

	if lo.Contains(allowed, f) {
		return nil
	}
	if _, ok := f.CustomIntervalDays(); ok {
		return nil
	}

	return ierr.NewError("invalid billing frequency").
		WithHint("Billing frequency must be a known cadence or a positive day count").
		WithReportableDetails(map[string]any{
			"allowed_values": allowed,
			"provided_value": f,
		}).
		Mark(ierr.ErrValidation)
}

// BillingCycle qualifies how MONTHLY and QUARTERLY advancement pins the
// day of month, overriding the plain billing day rule
type BillingCycle string

const (
	BILLING_CYCLE_FIRST_OF_MONTH   BillingCycle = "FIRST_OF_MONTH"
	BILLING_CYCLE_END_OF_MONTH     BillingCycle = "END_OF_MONTH"
	BILLING_CYCLE_FIRST_OF_QUARTER BillingCycle = "FIRST_OF_QUARTER"
	BILLING_CYCLE_NONE             BillingCycle = ""
)

func (c BillingCycle) String() string {
	return string(c)
}

func (c BillingCycle) Validate() error {
	allowed := []BillingCycle{
		BILLING_CYCLE_FIRST_OF_MONTH,
		BILLING_CYCLE_END_OF_MONTH,
		BILLING_CYCLE_FIRST_OF_QUARTER,
		BILLING_CYCLE_NONE,
	}

	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Invalid billing cycle").
			WithReportableDetails(map[string]any{
				"allowed_values": allowed,
				"provided_value": c,
			}).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// ScheduleStatus is the lifecycle state of a billing schedule. Only active
// schedules are eligible for advancement and invoice generation.
type ScheduleStatus string

const (
	ScheduleStatusActive    ScheduleStatus = "active"
	ScheduleStatusPaused    ScheduleStatus = "paused"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

func (s ScheduleStatus) String() string {
	return string(s)
}

func (s ScheduleStatus) Validate() error {
	allowed := []ScheduleStatus{
		ScheduleStatusActive,
		ScheduleStatusPaused,
		ScheduleStatusCancelled,
	}

	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid schedule status").
			WithHint("Invalid schedule status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusIssued InvoiceStatus = "issued"
	InvoiceStatusVoided InvoiceStatus = "voided"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusIssued,
		InvoiceStatusVoided,
	}

	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Invalid invoice status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
