package api

import (
	"github.com/gin-gonic/gin"
	"github.com/recurbill/recurbill/internal/api/middleware"
	v1 "github.com/recurbill/recurbill/internal/api/v1"
)

type Handlers struct {
	Customer *v1.CustomerHandler
	Schedule *v1.ScheduleHandler
	Invoice  *v1.InvoiceHandler
}

func NewHandlers(
	customer *v1.CustomerHandler,
	schedule *v1.ScheduleHandler,
	invoice *v1.InvoiceHandler,
) Handlers {
	return Handlers{
		Customer: customer,
		Schedule: schedule,
		Invoice:  invoice,
	}
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	router.GET("/health", v1.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Customer routes
	customers := router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	// Schedule routes
	schedules := router.Group("/schedules")
	{
		schedules.POST("", handlers.Schedule.CreateSchedule)
		schedules.GET("", handlers.Schedule.ListSchedules)
		schedules.GET("/due", handlers.Schedule.ListDueSchedules)
		schedules.GET("/:id", handlers.Schedule.GetSchedule)
		schedules.PUT("/:id", handlers.Schedule.UpdateSchedule)
		schedules.DELETE("/:id", handlers.Schedule.DeleteSchedule)
		schedules.POST("/:id/pause", handlers.Schedule.PauseSchedule)
		schedules.POST("/:id/resume", handlers.Schedule.ResumeSchedule)
		schedules.POST("/:id/cancel", handlers.Schedule.CancelSchedule)
		schedules.GET("/:id/preview", handlers.Schedule.PreviewNextBillingDate)
		schedules.POST("/:id/bill", handlers.Schedule.RunBilling)
	}

	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/void", handlers.Invoice.VoidInvoice)
	}
}
