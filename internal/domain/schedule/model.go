package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/recurbill/recurbill/internal/types"
	"github.com/shopspring/decimal"
)

// BillingSchedule represents a recurring billing configuration for a
// customer, driving periodic invoice generation
type BillingSchedule struct {
	ID         string `db:"id" json:"id"`
	CustomerID string `db:"customer_id" json:"customer_id"`

	BillingFrequency types.BillingFrequency `db:"billing_frequency" json:"billing_frequency"`
	BillingCycle     types.BillingCycle     `db:"billing_cycle" json:"billing_cycle,omitempty"`
	// BillingDay is the preferred day of month, used when no billing cycle
	// policy applies; clamped to the length of the resulting month
	BillingDay int `db:"billing_day" json:"billing_day"`

	BillDescription string          `db:"bill_description" json:"bill_description,omitempty"`
	BillingAmount   decimal.Decimal `db:"billing_amount" json:"billing_amount"`
	TaxRate         decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Quantity        int             `db:"quantity" json:"quantity"`

	NextBillingDate time.Time  `db:"next_billing_date" json:"next_billing_date"`
	LastBilledDate  *time.Time `db:"last_billed_date" json:"last_billed_date,omitempty"`
	CyclesCompleted int        `db:"cycles_completed" json:"cycles_completed"`

	ScheduleStatus types.ScheduleStatus `db:"schedule_status" json:"schedule_status"`

	// Items are optional line item templates; when empty a single line is
	// synthesized from the schedule's scalar fields at draft time
	Items LineItems `db:"items" json:"items,omitempty"`

	Metadata types.Metadata `db:"metadata" json:"metadata,omitempty"`
	types.BaseModel
}

// IsActive reports whether the schedule is eligible for advancement and
// invoice generation
func (s *BillingSchedule) IsActive() bool {
	return s.ScheduleStatus == types.ScheduleStatusActive
}

// GetQuantity returns the schedule's quantity, defaulting to 1
func (s *BillingSchedule) GetQuantity() int {
	if s.Quantity <= 0 {
		return 1
	}
	return s.Quantity
}

// GetBillDescription returns the schedule's bill description, falling back
// to a generic one derived from the frequency
func (s *BillingSchedule) GetBillDescription() string {
	if s.BillDescription != "" {
		return s.BillDescription
	}
	return fmt.Sprintf("Recurring service - %s", s.BillingFrequency)
}

// LineItem is a template for one invoice line. Fields left at their zero
// value fall back to the schedule's scalar fields at draft time.
type LineItem struct {
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
}

// LineItems is a JSONB column of line item templates
type LineItems []LineItem

// Scan implements the sql.Scanner interface for LineItems
func (li *LineItems) Scan(value interface{}) error {
	if value == nil {
		*li = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	var result LineItems
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*li = result
	return nil
}

// Value implements the driver.Valuer interface for LineItems
func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		return json.Marshal(LineItems{})
	}
	return json.Marshal(li)
}
