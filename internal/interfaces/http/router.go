package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
	"github.com/tu-usuario/almacen-api/internal/application/receiving"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *stock.LedgerUseCase
	OutboundUC  *outbound.UseCase
	ReceivingUC *receiving.UseCase
	AuthUC      *auth.UseCase
	ProductRepo repository.ProductRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Documentos de salida
	outbounds := protected.Group("/stock-outbounds")
	outboundHandler := NewOutboundHandler(deps.OutboundUC)
	outbounds.Get("/", outboundHandler.List)
	outbounds.Post("/", outboundHandler.Create)
	outbounds.Get("/workshop/:workshop", outboundHandler.ListByWorkshop)
	outbounds.Get("/:id", outboundHandler.GetByID)
	outbounds.Put("/:id", outboundHandler.Update)
	outbounds.Put("/:id/validate", outboundHandler.Validate)
	outbounds.Put("/:id/cancel", outboundHandler.Cancel)

	// Stock, valoración y auditoría
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.ProductRepo)
	// La valoración total del almacén es información financiera: solo admin.
	stockGroup.Get("/valuation", RequireRole(entity.RoleAdmin), stockHandler.TotalValuation)
	stockGroup.Get("/low", stockHandler.LowStock)
	stockGroup.Get("/:productId", stockHandler.CurrentStock)
	stockGroup.Get("/:productId/valuation", stockHandler.Valuation)
	stockGroup.Get("/:productId/lots", stockHandler.ListLots)
	stockGroup.Get("/:productId/movements", stockHandler.ListMovements)

	// Recepción de órdenes de proveedor
	receivingHandler := NewReceivingHandler(deps.ReceivingUC)
	protected.Post("/supplier-orders/:id/receive", receivingHandler.Receive)
}
