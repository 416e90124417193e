package service

import (
	"time"

	"github.com/recurbill/recurbill/internal/api/dto"
	"github.com/recurbill/recurbill/internal/domain/customer"
	"github.com/recurbill/recurbill/internal/domain/schedule"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/samber/lo"
)

// ComputeAdvance calculates the billing fields of a schedule after one
// completed billing cycle: the next billing date per the schedule's
// frequency and cycle policy, the last billed date (today), and the
// incremented cycle counter.
//
// The function is a pure state transition: it performs no persistence and
// its result is advisory until the caller commits it. Callers that advance
// concurrently must serialize the read-modify-write themselves (see
// ScheduleService.RunBilling).
func ComputeAdvance(s *schedule.BillingSchedule, now time.Time) (*dto.AdvanceScheduleResponse, error) {
	if !s.IsActive() {
		return nil, ierr.WithError(schedule.ErrInvalidScheduleState).
			WithHintf("Schedule is %s; only active schedules can be advanced", s.ScheduleStatus).
			WithReportableDetails(map[string]any{
				"schedule_id":     s.ID,
				"schedule_status": s.ScheduleStatus,
			}).
			Mark(ierr.ErrInvalidScheduleState)
	}

	next, err := types.NextBillingDate(s.NextBillingDate, s.BillingFrequency, s.BillingDay, s.BillingCycle)
	if err != nil {
		return nil, err
	}

	return &dto.AdvanceScheduleResponse{
		ScheduleID:      s.ID,
		NextBillingDate: next,
		LastBilledDate:  now.UTC(),
		CyclesCompleted: s.CyclesCompleted + 1,
	}, nil
}

// BuildInvoiceDraftFromSchedule assembles an invoice draft from a schedule
// and its customer. Pure construction, no side effects.
//
// Line items come from the schedule's item templates when present, with
// per-field fallback to the schedule's scalar amount, tax rate and
// quantity; otherwise a single line is synthesized from the scalars.
func BuildInvoiceDraftFromSchedule(s *schedule.BillingSchedule, c *customer.Customer, now time.Time) *dto.InvoiceDraft {
	today := now.UTC()

	draft := &dto.InvoiceDraft{
		CustomerID:  s.CustomerID,
		ScheduleID:  lo.ToPtr(s.ID),
		Currency:    c.GetCurrency(),
		InvoiceDate: today,
		DueDate:     today.AddDate(0, 0, c.GetPaymentTerms()),
		Description: s.GetBillDescription(),
	}

	if len(s.Items) > 0 {
		draft.Items = make([]dto.InvoiceDraftItem, 0, len(s.Items))
		for _, item := range s.Items {
			line := dto.InvoiceDraftItem{
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				TaxRate:     s.TaxRate,
			}
			if line.Description == "" {
				line.Description = s.GetBillDescription()
			}
			if line.Quantity <= 0 {
				line.Quantity = s.GetQuantity()
			}
			if line.UnitPrice.IsZero() {
				line.UnitPrice = s.BillingAmount
			}
			if item.TaxRate != nil {
				line.TaxRate = *item.TaxRate
			}
			draft.Items = append(draft.Items, line)
		}
		return draft
	}

	draft.Items = []dto.InvoiceDraftItem{
		{
			Description: s.GetBillDescription(),
			Quantity:    s.GetQuantity(),
			UnitPrice:   s.BillingAmount,
			TaxRate:     s.TaxRate,
		},
	}
	return draft
}
