package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fiscal-do-api/internal/application/auth"
	"github.com/jhoicas/fiscal-do-api/internal/application/fiscal"
	"github.com/jhoicas/fiscal-do-api/internal/application/partner"
	"github.com/jhoicas/fiscal-do-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC   *fiscal.InvoiceUseCase
	Resolver    *fiscal.DocumentTypeResolver
	NumberingUC *fiscal.NumberingUseCase
	PostUC      *fiscal.PostUseCase
	ExportUC    *fiscal.ExportUseCase
	PartnerUC   *partner.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
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

	// El rol consulta solo lee; admin y contador operan documentos.
	write := RequireRole(entity.RoleAdmin, entity.RoleContador)

	// Partners (protegido)
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", write, partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Put("/:id", write, partnerHandler.Update)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	fiscalHandler := NewFiscalHandler(deps.InvoiceUC, deps.Resolver, deps.NumberingUC, deps.PostUC, deps.ExportUC)
	invoices.Post("/", write, fiscalHandler.Create)
	invoices.Get("/:id", fiscalHandler.GetByID)
	invoices.Delete("/:id", write, fiscalHandler.Delete)
	invoices.Get("/:id/document-types", fiscalHandler.DocumentTypes)
	invoices.Post("/:id/assign-number", write, fiscalHandler.AssignNumber)
	invoices.Post("/:id/post", write, fiscalHandler.Post)
	invoices.Get("/:id/fiscal-amounts", fiscalHandler.FiscalAmounts)
	invoices.Get("/:id/report-name", fiscalHandler.ReportName)
	invoices.Get("/:id/ecf", fiscalHandler.ExportECF)
	invoices.Get("/:id/pdf", fiscalHandler.PDF)
}
