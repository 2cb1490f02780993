package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/invoices-api/internal/application/auth"
	"github.com/jhoicas/invoices-api/internal/application/ports"
	"github.com/jhoicas/invoices-api/internal/application/usecase"
	infraaudit "github.com/jhoicas/invoices-api/internal/infrastructure/audit"
	infrapdf "github.com/jhoicas/invoices-api/internal/infrastructure/pdf"
	"github.com/jhoicas/invoices-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/invoices-api/internal/interfaces/http"
	"github.com/jhoicas/invoices-api/pkg/config"
	"github.com/jhoicas/invoices-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditLogger := infraaudit.New(log)

	authUC := auth.NewAuthUseCase(userRepo, auditLogger, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, auditLogger)
	customerUC := usecase.NewCustomerUseCase(customerRepo, invoiceRepo, userRepo, auditLogger)
	invoiceUC := usecase.NewInvoiceUseCase(invoiceRepo, customerRepo, userRepo, txRunner, auditLogger)
	reportUC := usecase.NewReportUseCase(reportRepo, auditLogger)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	invoicePDFUC := usecase.NewInvoicePDFUseCase(
		invoiceRepo, customerRepo, userRepo, pdfGenerator,
		ports.CompanyInfo{
			Name:        cfg.Company.Name,
			Address:     cfg.Company.Address,
			Email:       cfg.Company.Email,
			PhoneNumber: cfg.Company.PhoneNumber,
		},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Invoices API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		PDFUC:      invoicePDFUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
