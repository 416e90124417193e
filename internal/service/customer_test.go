package service

import (
	"testing"

	"github.com/recurbill/recurbill/internal/api/dto"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/testutil"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type CustomerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewCustomerService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           s.GetDB(),
		CustomerRepo: stores.CustomerRepo,
		ScheduleRepo: stores.ScheduleRepo,
		InvoiceRepo:  stores.InvoiceRepo,
	})
}

func (s *CustomerServiceSuite) TestCreateCustomer() {
	testCases := []struct {
		name          string
		request       dto.CreateCustomerRequest
		expectedError bool
	}{
		{
			name: "successful_creation",
			request: dto.CreateCustomerRequest{
				ExternalID:   "ext-1",
				Name:         "Ama Serwaa",
				Email:        "ama@example.com",
				Currency:     "USD",
				PaymentTerms: 30,
				Metadata:     map[string]string{"source": "web"},
			},
		},
		{
			name: "missing_name",
			request: dto.CreateCustomerRequest{
				Email: "no-name@example.com",
			},
			expectedError: true,
		},
		{
			name: "invalid_email",
			request: dto.CreateCustomerRequest{
				Name:  "Bad Email",
				Email: "not-an-email",
			},
			expectedError: true,
		},
		{
			name: "invalid_currency",
			request: dto.CreateCustomerRequest{
				Name:     "Bad Currency",
				Currency: "CEDI",
			},
			expectedError: true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.CreateCustomer(s.GetContext(), tc.request)
			if tc.expectedError {
				s.Error(err)
				s.True(ierr.IsValidation(err))
				return
			}
			s.NoError(err)
			s.NotEmpty(resp.ID)
			s.Equal(tc.request.Name, resp.Name)
		})
	}
}

func (s *CustomerServiceSuite) TestGetCustomerNotFound() {
	_, err := s.service.GetCustomer(s.GetContext(), "cust_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CustomerServiceSuite) TestUpdateCustomer() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name: "Before",
	})
	s.NoError(err)

	resp, err := s.service.UpdateCustomer(s.GetContext(), created.ID, dto.UpdateCustomerRequest{
		Name:         lo.ToPtr("After"),
		PaymentTerms: lo.ToPtr(60),
	})
	s.NoError(err)
	s.Equal("After", resp.Name)
	s.Equal(60, resp.PaymentTerms)
}

func (s *CustomerServiceSuite) TestDeleteCustomer() {
	created, err := s.service.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name: "To Delete",
	})
	s.NoError(err)

	s.NoError(s.service.DeleteCustomer(s.GetContext(), created.ID))

	resp, err := s.service.ListCustomers(s.GetContext(), &types.CustomerFilter{
		QueryFilter: types.NewDefaultQueryFilter(),
	})
	s.NoError(err)
	s.Equal(0, resp.Total)
}
