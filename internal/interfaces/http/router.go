package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoices-api/internal/application/auth"
	"github.com/jhoicas/invoices-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UserUC     *usecase.UserUseCase
	CustomerUC *usecase.CustomerUseCase
	InvoiceUC  *usecase.InvoiceUseCase
	PDFUC      *usecase.InvoicePDFUseCase
	ReportUC   *usecase.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido, cuenta propia)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Put("/me", userHandler.Update)
	users.Put("/me/password", userHandler.ChangePassword)
	users.Post("/me/archive", userHandler.Archive)
	users.Delete("/me", userHandler.Delete)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/archive", customerHandler.Archive)
	customers.Delete("/:id", customerHandler.Delete)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/download", invoiceHandler.Download)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Put("/:id/status", invoiceHandler.ChangeStatus)
	invoices.Post("/:id/createRow", invoiceHandler.CreateRow)
	invoices.Post("/:id/createRowRange", invoiceHandler.CreateRowRange)
	invoices.Delete("/:id/deleteRow/:rowId", invoiceHandler.DeleteRow)
	invoices.Post("/:id/archive", invoiceHandler.Archive)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/customer", reportHandler.Customer)
	reports.Get("/invoice", reportHandler.Invoice)
	reports.Get("/invoicebystatus", reportHandler.InvoiceByStatus)
}
