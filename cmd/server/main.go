package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/recurbill/recurbill/internal/api"
	v1 "github.com/recurbill/recurbill/internal/api/v1"
	"github.com/recurbill/recurbill/internal/config"
	"github.com/recurbill/recurbill/internal/logger"
	"github.com/recurbill/recurbill/internal/postgres"
	"github.com/recurbill/recurbill/internal/repository"
	"github.com/recurbill/recurbill/internal/service"
	"github.com/recurbill/recurbill/internal/validator"
	"go.uber.org/fx"
)

// @title RecurBill API
// @version 1.0
// @description Recurring billing and invoicing API
// @BasePath /v1
// @schemes http https

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewCustomerRepository,
			repository.NewScheduleRepository,
			repository.NewInvoiceRepository,

			// Services
			service.NewServiceParams,
			service.NewCustomerService,
			service.NewScheduleService,
			service.NewInvoiceService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	customerService service.CustomerService,
	scheduleService service.ScheduleService,
	invoiceService service.InvoiceService,
) api.Handlers {
	return api.Handlers{
		Customer: v1.NewCustomerHandler(customerService, logger),
		Schedule: v1.NewScheduleHandler(scheduleService, logger),
		Invoice:  v1.NewInvoiceHandler(invoiceService, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			db.Close()
			return nil
		},
	})
}
