package service

import (
	"testing"
	"time"

	"github.com/recurbill/recurbill/internal/api/dto"
	"github.com/recurbill/recurbill/internal/domain/customer"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/testutil"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service  InvoiceService
	customer *customer.Customer
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewInvoiceService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		CustomerRepo: stores.CustomerRepo,
		ScheduleRepo: stores.ScheduleRepo,
		InvoiceRepo:  stores.InvoiceRepo,
	})

	s.customer = &customer.Customer{
		ID:        "cust_test_1",
		Name:      "Abena Osei",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(stores.CustomerRepo.Create(s.GetContext(), s.customer))
}

func (s *InvoiceServiceSuite) draft() dto.InvoiceDraft {
	now := s.GetNow()
	return dto.InvoiceDraft{
		CustomerID:  s.customer.ID,
		Currency:    "GHS",
		InvoiceDate: now,
		DueDate:     now.AddDate(0, 0, 30),
		Description: "Manual invoice",
		Items: []dto.InvoiceDraftItem{
			{
				Description: "Setup fee",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(500),
				TaxRate:     decimal.NewFromInt(20),
			},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.service.CreateInvoice(s.GetContext(), s.draft())
	s.NoError(err)
	s.NotEmpty(resp.ID)
	s.NotEmpty(resp.InvoiceNumber)
	s.Equal(types.InvoiceStatusIssued, resp.InvoiceStatus)
	s.Nil(resp.ScheduleID)
	s.True(resp.Subtotal.Equal(decimal.NewFromInt(500)))
	s.True(resp.TaxTotal.Equal(decimal.NewFromInt(100)))
	s.True(resp.Total.Equal(decimal.NewFromInt(600)))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceUnknownCustomer() {
	draft := s.draft()
	draft.CustomerID = "cust_missing"

	_, err := s.service.CreateInvoice(s.GetContext(), draft)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceDueBeforeInvoiceDate() {
	draft := s.draft()
	draft.DueDate = draft.InvoiceDate.AddDate(0, 0, -1)

	_, err := s.service.CreateInvoice(s.GetContext(), draft)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestCreateInvoiceNoItems() {
	draft := s.draft()
	draft.Items = nil

	_, err := s.service.CreateInvoice(s.GetContext(), draft)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceServiceSuite) TestVoidInvoice() {
	created, err := s.service.CreateInvoice(s.GetContext(), s.draft())
	s.NoError(err)

	voided, err := s.service.VoidInvoice(s.GetContext(), created.ID)
	s.NoError(err)
	s.Equal(types.InvoiceStatusVoided, voided.InvoiceStatus)
	s.NotNil(voided.VoidedAt)
	s.WithinDuration(time.Now().UTC(), *voided.VoidedAt, 5*time.Second)

	// Voiding is final
	_, err = s.service.VoidInvoice(s.GetContext(), created.ID)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesByCustomer() {
	_, err := s.service.CreateInvoice(s.GetContext(), s.draft())
	s.NoError(err)
	_, err = s.service.CreateInvoice(s.GetContext(), s.draft())
	s.NoError(err)

	resp, err := s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		CustomerID:  s.customer.ID,
	})
	s.NoError(err)
	s.Equal(2, resp.Total)

	resp, err = s.service.ListInvoices(s.GetContext(), &types.InvoiceFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
		CustomerID:  "cust_other",
	})
	s.NoError(err)
	s.Equal(0, resp.Total)
}
