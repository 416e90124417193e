package service

import (
	"context"
	"time"

	"github.com/recurbill/recurbill/internal/api/dto"
	"github.com/recurbill/recurbill/internal/domain/invoice"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/types"
	"github.com/samber/lo"
)

// InvoiceService manages invoices created from drafts
type InvoiceService interface {
	CreateInvoice(ctx context.Context, draft dto.InvoiceDraft) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error)
	VoidInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) CreateInvoice(ctx context.Context, draft dto.InvoiceDraft) (*dto.InvoiceResponse, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.CustomerRepo.Get(ctx, draft.CustomerID); err != nil {
		return nil, err
	}

	inv := draft.ToInvoice(ctx)

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.InvoiceRepo.CreateWithLineItems(txCtx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"customer_id", inv.CustomerID,
		"total", inv.Total,
	)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.InvoiceFilter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{QueryFilter: types.NewDefaultQueryFilter()}
	}

	invoices, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListInvoicesResponse{
		Items: lo.Map(invoices, func(inv *invoice.Invoice, _ int) *dto.InvoiceResponse {
			return &dto.InvoiceResponse{Invoice: inv}
		}),
		Total: count,
	}, nil
}

func (s *invoiceService) VoidInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	var resp *dto.InvoiceResponse

	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		inv, err := s.InvoiceRepo.Get(txCtx, id)
		if err != nil {
			return err
		}

		if !inv.CanVoid() {
			return ierr.WithError(invoice.ErrInvoiceAlreadyVoided).
				WithHintf("Invoice %s has already been voided", inv.InvoiceNumber).
				Mark(ierr.ErrInvalidOperation)
		}

		inv.InvoiceStatus = types.InvoiceStatusVoided
		inv.VoidedAt = lo.ToPtr(time.Now().UTC())
		if err := s.InvoiceRepo.Update(txCtx, inv); err != nil {
			return err
		}

		resp = &dto.InvoiceResponse{Invoice: inv}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
