package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/receiving"
)

// ReceivingHandler recepción de órdenes de proveedor (protegido).
type ReceivingHandler struct {
	uc *receiving.UseCase
}

// NewReceivingHandler construye el handler.
func NewReceivingHandler(uc *receiving.UseCase) *ReceivingHandler {
	return &ReceivingHandler{uc: uc}
}

// Receive procesa una orden DELIVERED: crea un lote por item.
func (h *ReceivingHandler) Receive(c *fiber.Ctx) error {
	lots, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, dto.ToLotResponse(lot))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"lots_created": len(out),
		"lots":         out,
	})
}
