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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fiscal-do-api/internal/application/auth"
	"github.com/jhoicas/fiscal-do-api/internal/application/fiscal"
	"github.com/jhoicas/fiscal-do-api/internal/application/partner"
	"github.com/jhoicas/fiscal-do-api/internal/infrastructure/ecf"
	infrapdf "github.com/jhoicas/fiscal-do-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fiscal-do-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fiscal-do-api/internal/interfaces/http"
	"github.com/jhoicas/fiscal-do-api/pkg/config"
	"github.com/jhoicas/fiscal-do-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	journalRepo := postgres.NewJournalRepository(pool)
	docTypeRepo := postgres.NewDocumentTypeRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	invoiceUC := fiscal.NewInvoiceUseCase(txRunner, invoiceRepo, partnerRepo, journalRepo, companyRepo, log)
	resolver := fiscal.NewDocumentTypeResolver(invoiceRepo, partnerRepo, journalRepo, docTypeRepo, companyRepo)
	numberingUC := fiscal.NewNumberingUseCase(txRunner, log)
	postUC := fiscal.NewPostUseCase(txRunner, decimal.NewFromInt(cfg.DGII.VATThreshold), log)

	// e-CF y representación impresa
	ecfBuilder := ecf.NewXMLBuilderService()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	exportUC := fiscal.NewExportUseCase(invoiceRepo, partnerRepo, docTypeRepo, companyRepo, ecfBuilder, pdfGenerator, log)

	partnerUC := partner.NewUseCase(partnerRepo, invoiceRepo, companyRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Fiscal DO API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:   invoiceUC,
		Resolver:    resolver,
		NumberingUC: numberingUC,
		PostUC:      postUC,
		ExportUC:    exportUC,
		PartnerUC:   partnerUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
