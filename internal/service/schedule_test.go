package service

import (
	"testing"
	"time"

	"github.com/recurbill/recurbill/internal/api/dto"
	"github.com/recurbill/recurbill/internal/domain/customer"
	"github.com/recurbill/recurbill/internal/domain/schedule"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/testutil"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ScheduleServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  ScheduleService
	params   ServiceParams
	customer *customer.Customer
}

func TestScheduleService(t *testing.T) {
	suite.Run(t, new(ScheduleServiceSuite))
}

func (s *ScheduleServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		CustomerRepo: stores.CustomerRepo,
		ScheduleRepo: stores.ScheduleRepo,
		InvoiceRepo:  stores.InvoiceRepo,
	}
	s.service = NewScheduleService(s.params)

	s.customer = &customer.Customer{
		ID:           "cust_test_1",
		ExternalID:   "ext-1",
		Name:         "Kofi Mensah",
		Email:        "kofi@example.com",
		PaymentTerms: 14,
		BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(stores.CustomerRepo.Create(s.GetContext(), s.customer))
}

func (s *ScheduleServiceSuite) createTestSchedule(mutate func(*schedule.BillingSchedule)) *schedule.BillingSchedule {
	sched := &schedule.BillingSchedule{
		ID:               types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SCHEDULE),
		CustomerID:       s.customer.ID,
		BillingFrequency: types.BILLING_FREQUENCY_MONTHLY,
		BillingDay:       15,
		BillingAmount:    decimal.NewFromInt(100),
		TaxRate:          decimal.NewFromInt(10),
		Quantity:         1,
		NextBillingDate:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		ScheduleStatus:   types.ScheduleStatusActive,
		BaseModel:        types.GetDefaultBaseModel(s.GetContext()),
	}
	if mutate != nil {
		mutate(sched)
	}
	s.NoError(s.GetStores().ScheduleRepo.Create(s.GetContext(), sched))
	return sched
}

func (s *ScheduleServiceSuite) TestCreateSchedule() {
	resp, err := s.service.CreateSchedule(s.GetContext(), dto.CreateScheduleRequest{
		CustomerID:       s.customer.ID,
		BillingFrequency: types.BILLING_FREQUENCY_MONTHLY,
		BillingDay:       15,
		BillingAmount:    decimal.NewFromInt(250),
		NextBillingDate:  time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
	})
	s.NoError(err)
	s.NotNil(resp)
	s.Equal(types.ScheduleStatusActive, resp.ScheduleStatus)
	s.Equal(0, resp.CyclesCompleted)
	s.Nil(resp.LastBilledDate)
}

func (s *ScheduleServiceSuite) TestCreateScheduleUnknownCustomer() {
	_, err := s.service.CreateSchedule(s.GetContext(), dto.CreateScheduleRequest{
		CustomerID:       "cust_missing",
		BillingFrequency: types.BILLING_FREQUENCY_MONTHLY,
		NextBillingDate:  time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ScheduleServiceSuite) TestCreateScheduleInvalidFrequency() {
	_, err := s.service.CreateSchedule(s.GetContext(), dto.CreateScheduleRequest{
		CustomerID:       s.customer.ID,
		BillingFrequency: types.BillingFrequency("monthly"),
		NextBillingDate:  time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ScheduleServiceSuite) TestPauseAndResume() {
	sched := s.createTestSchedule(nil)

	resp, err := s.service.PauseSchedule(s.GetContext(), sched.ID)
	s.NoError(err)
	s.Equal(types.ScheduleStatusPaused, resp.ScheduleStatus)

	// Pausing must not move any billing progress fields
	s.Equal(sched.NextBillingDate, resp.NextBillingDate)
	s.Equal(sched.CyclesCompleted, resp.CyclesCompleted)
	s.Nil(resp.LastBilledDate)

	resp, err = s.service.ResumeSchedule(s.GetContext(), sched.ID)
	s.NoError(err)
	s.Equal(types.ScheduleStatusActive, resp.ScheduleStatus)
}

func (s *ScheduleServiceSuite) TestResumeActiveSchedule() {
	sched := s.createTestSchedule(nil)

	_, err := s.service.ResumeSchedule(s.GetContext(), sched.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ScheduleServiceSuite) TestCancelIsTerminal() {
	sched := s.createTestSchedule(nil)

	resp, err := s.service.CancelSchedule(s.GetContext(), sched.ID)
	s.NoError(err)
	s.Equal(types.ScheduleStatusCancelled, resp.ScheduleStatus)

	_, err = s.service.ResumeSchedule(s.GetContext(), sched.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))

	_, err = s.service.PauseSchedule(s.GetContext(), sched.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ScheduleServiceSuite) TestRunBilling() {
	sched := s.createTestSchedule(nil)

	resp, err := s.service.RunBilling(s.GetContext(), sched.ID)
	s.NoError(err)
	s.NotNil(resp.Invoice)
	s.NotNil(resp.Schedule)

	// Schedule advanced by one month with the billing day pinned
	s.Equal(time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), resp.Schedule.NextBillingDate)
	s.Equal(1, resp.Schedule.CyclesCompleted)
	s.NotNil(resp.Schedule.LastBilledDate)

	// A single line is synthesized from the schedule's scalar fields
	inv := resp.Invoice
	s.Len(inv.LineItems, 1)
	s.True(inv.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(100)))
	s.Equal(1, inv.LineItems[0].Quantity)
	s.True(inv.Subtotal.Equal(decimal.NewFromInt(100)))
	s.True(inv.TaxTotal.Equal(decimal.NewFromInt(10)))
	s.True(inv.Total.Equal(decimal.NewFromInt(110)))

	// Customer defaults flow onto the invoice
	s.Equal(types.DefaultCurrency, inv.Currency)
	s.Equal(inv.InvoiceDate.AddDate(0, 0, 14), inv.DueDate)
	s.Equal(types.InvoiceStatusIssued, inv.InvoiceStatus)
	s.Equal(sched.ID, *inv.ScheduleID)

	// The invoice is persisted, not just returned
	stored, err := s.GetStores().InvoiceRepo.Get(s.GetContext(), inv.ID)
	s.NoError(err)
	s.True(stored.Total.Equal(decimal.NewFromInt(110)))
}

func (s *ScheduleServiceSuite) TestRunBillingTwice() {
	sched := s.createTestSchedule(nil)

	first, err := s.service.RunBilling(s.GetContext(), sched.ID)
	s.NoError(err)
	second, err := s.service.RunBilling(s.GetContext(), sched.ID)
	s.NoError(err)

	s.Equal(1, first.Schedule.CyclesCompleted)
	s.Equal(2, second.Schedule.CyclesCompleted)
	s.Equal(time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), second.Schedule.NextBillingDate)

	count, err := s.GetStores().InvoiceRepo.Count(s.GetContext(), &types.InvoiceFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		ScheduleID:  sched.ID,
	})
	s.NoError(err)
	s.Equal(2, count)
}

func (s *ScheduleServiceSuite) TestRunBillingPausedSchedule() {
	sched := s.createTestSchedule(func(sc *schedule.BillingSchedule) {
		sc.ScheduleStatus = types.ScheduleStatusPaused
	})

	_, err := s.service.RunBilling(s.GetContext(), sched.ID)
	s.Error(err)
	s.True(ierr.IsInvalidScheduleState(err))

	// Nothing was persisted: no invoice, schedule untouched
	count, err := s.GetStores().InvoiceRepo.Count(s.GetContext(), &types.InvoiceFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		ScheduleID:  sched.ID,
	})
	s.NoError(err)
	s.Equal(0, count)

	stored, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), sched.ID)
	s.NoError(err)
	s.Equal(0, stored.CyclesCompleted)
	s.Equal(sched.NextBillingDate, stored.NextBillingDate)
	s.Nil(stored.LastBilledDate)
}

func (s *ScheduleServiceSuite) TestRunBillingOneTimeSchedule() {
	sched := s.createTestSchedule(func(sc *schedule.BillingSchedule) {
		sc.BillingFrequency = types.BILLING_FREQUENCY_ONE_TIME
	})

	_, err := s.service.RunBilling(s.GetContext(), sched.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *ScheduleServiceSuite) TestRunBillingWithItemTemplates() {
	sched := s.createTestSchedule(func(sc *schedule.BillingSchedule) {
		sc.Items = schedule.LineItems{
			{
				Description: "Platform fee",
				Quantity:    2,
				UnitPrice:   decimal.NewFromInt(50),
			},
			{
				// Empty fields fall back to the schedule's scalars
				TaxRate: lo.ToPtr(decimal.Zero),
			},
		}
	})

	resp, err := s.service.RunBilling(s.GetContext(), sched.ID)
	s.NoError(err)

	inv := resp.Invoice
	s.Len(inv.LineItems, 2)

	s.Equal("Platform fee", inv.LineItems[0].Description)
	s.Equal(2, inv.LineItems[0].Quantity)
	s.True(inv.LineItems[0].UnitPrice.Equal(decimal.NewFromInt(50)))
	s.True(inv.LineItems[0].TaxRate.Equal(decimal.NewFromInt(10)))

	s.Equal(sched.GetBillDescription(), inv.LineItems[1].Description)
	s.Equal(1, inv.LineItems[1].Quantity)
	s.True(inv.LineItems[1].UnitPrice.Equal(decimal.NewFromInt(100)))
	s.True(inv.LineItems[1].TaxRate.IsZero())

	// 2x50 at 10% tax plus 1x100 untaxed
	s.True(inv.Subtotal.Equal(decimal.NewFromInt(200)))
	s.True(inv.TaxTotal.Equal(decimal.NewFromInt(10)))
	s.True(inv.Total.Equal(decimal.NewFromInt(210)))
}

func (s *ScheduleServiceSuite) TestPreviewNextBillingDate() {
	sched := s.createTestSchedule(nil)

	resp, err := s.service.PreviewNextBillingDate(s.GetContext(), sched.ID, nil)
	s.NoError(err)
	s.Equal(sched.NextBillingDate, resp.FromDate)
	s.Equal(time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), resp.NextBillingDate)

	from := time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC)
	resp, err = s.service.PreviewNextBillingDate(s.GetContext(), sched.ID, &from)
	s.NoError(err)
	s.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC), resp.NextBillingDate)

	// Preview writes nothing
	stored, err := s.GetStores().ScheduleRepo.Get(s.GetContext(), sched.ID)
	s.NoError(err)
	s.Equal(sched.NextBillingDate, stored.NextBillingDate)
	s.Equal(0, stored.CyclesCompleted)
}

func (s *ScheduleServiceSuite) TestListDueSchedules() {
	due := s.createTestSchedule(func(sc *schedule.BillingSchedule) {
		sc.NextBillingDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	})
	s.createTestSchedule(func(sc *schedule.BillingSchedule) {
		sc.NextBillingDate = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	})
	s.createTestSchedule(func(sc *schedule.BillingSchedule) {
		sc.NextBillingDate = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
		sc.ScheduleStatus = types.ScheduleStatusPaused
	})

	resp, err := s.service.ListDueSchedules(s.GetContext(), time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))
	s.NoError(err)
	s.Equal(1, resp.Total)
	s.Len(resp.Items, 1)
	s.Equal(due.ID, resp.Items[0].ID)
}

func (s *ScheduleServiceSuite) TestUpdateScheduleKeepsProgress() {
	sched := s.createTestSchedule(nil)

	_, err := s.service.RunBilling(s.GetContext(), sched.ID)
	s.NoError(err)

	resp, err := s.service.UpdateSchedule(s.GetContext(), sched.ID, dto.UpdateScheduleRequest{
		BillingAmount: lo.ToPtr(decimal.NewFromInt(500)),
	})
	s.NoError(err)
	s.True(resp.BillingAmount.Equal(decimal.NewFromInt(500)))
	s.Equal(1, resp.CyclesCompleted)
	s.NotNil(resp.LastBilledDate)
}

func (s *ScheduleServiceSuite) TestDeleteSchedule() {
	sched := s.createTestSchedule(nil)

	s.NoError(s.service.DeleteSchedule(s.GetContext(), sched.ID))

	resp, err := s.service.ListSchedules(s.GetContext(), nil)
	s.NoError(err)
	s.Equal(0, resp.Total)
}
