package repository

import (
	"github.com/recurbill/recurbill/internal/domain/customer"
	"github.com/recurbill/recurbill/internal/domain/invoice"
	"github.com/recurbill/recurbill/internal/domain/schedule"
	"github.com/recurbill/recurbill/internal/logger"
	"github.com/recurbill/recurbill/internal/postgres"
	postgresRepo "github.com/recurbill/recurbill/internal/repository/postgres"
)

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewScheduleRepository(db *postgres.DB, logger *logger.Logger) schedule.Repository {
	return postgresRepo.NewScheduleRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}
