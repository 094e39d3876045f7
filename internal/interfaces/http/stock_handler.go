package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// StockHandler consultas de stock, valoración y auditoría (protegido).
type StockHandler struct {
	ledger      *stock.LedgerUseCase
	productRepo repository.ProductRepository
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, productRepo repository.ProductRepository) *StockHandler {
	return &StockHandler{ledger: ledger, productRepo: productRepo}
}

// CurrentStock stock actual de un producto (producto desconocido = 0).
func (h *StockHandler) CurrentStock(c *fiber.Ctx) error {
	productID := c.Params("productId")
	current, err := h.ledger.CurrentStock(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockResponse{ProductID: productID, CurrentStock: current})
}

// Valuation valoración del stock de un producto.
func (h *StockHandler) Valuation(c *fiber.Ctx) error {
	productID := c.Params("productId")
	total, err := h.ledger.Valuation(productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ValuationResponse{ProductID: productID, Valuation: total})
}

// TotalValuation valoración de todo el almacén.
func (h *StockHandler) TotalValuation(c *fiber.Ctx) error {
	total, err := h.ledger.TotalValuation()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ValuationResponse{Valuation: total})
}

// ListLots lotes de un producto, incluidos los agotados.
func (h *StockHandler) ListLots(c *fiber.Ctx) error {
	lots, err := h.ledger.ListLots(c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, dto.ToLotResponse(lot))
	}
	return c.JSON(out)
}

// ListMovements movimientos de un producto, recientes primero.
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.ledger.ListMovements(c.Params("productId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// LowStock productos por debajo de su punto de reorden (señal de display).
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	products, err := h.productRepo.ListBelowReorderPoint()
	if err != nil {
		return respondError(c, err)
	}
	type lowStockItem struct {
		ProductID    string `json:"product_id"`
		Reference    string `json:"reference"`
		Name         string `json:"name"`
		ReorderPoint int    `json:"reorder_point"`
		CurrentStock int    `json:"current_stock"`
	}
	out := make([]lowStockItem, 0, len(products))
	for _, p := range products {
		current, err := h.ledger.CurrentStock(p.ID)
		if err != nil {
			return respondError(c, err)
		}
		item := lowStockItem{ProductID: p.ID, Reference: p.Reference, Name: p.Name, CurrentStock: current}
		if p.ReorderPoint != nil {
			item.ReorderPoint = *p.ReorderPoint
		}
		out = append(out, item)
	}
	return c.JSON(out)
}
