package service

import (
	"github.com/recurbill/recurbill/internal/config"
	"github.com/recurbill/recurbill/internal/domain/customer"
	"github.com/recurbill/recurbill/internal/domain/invoice"
	"github.com/recurbill/recurbill/internal/domain/schedule"
	"github.com/recurbill/recurbill/internal/logger"
	"github.com/recurbill/recurbill/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	CustomerRepo customer.Repository
	ScheduleRepo schedule.Repository
	InvoiceRepo  invoice.Repository
}

// NewServiceParams creates a ServiceParams from individual dependencies,
// wired by fx in cmd/server
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	customerRepo customer.Repository,
	scheduleRepo schedule.Repository,
	invoiceRepo invoice.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		CustomerRepo: customerRepo,
		ScheduleRepo: scheduleRepo,
		InvoiceRepo:  invoiceRepo,
	}
}
