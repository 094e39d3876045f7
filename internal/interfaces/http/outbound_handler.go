package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/outbound"
)

// OutboundHandler maneja las peticiones HTTP de documentos de salida (protegido).
type OutboundHandler struct {
	uc *outbound.UseCase
}

// NewOutboundHandler construye el handler.
func NewOutboundHandler(uc *outbound.UseCase) *OutboundHandler {
	return &OutboundHandler{uc: uc}
}

// Create crea un documento de salida en DRAFT.
func (h *OutboundHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOutboundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := outbound.CreateInput{
		Reason:   in.Reason,
		Workshop: in.Workshop,
		Notes:    in.Notes,
		UserID:   GetUserID(c),
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, outbound.CreateItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}
	doc, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToOutboundResponse(doc))
}

// GetByID devuelve un documento con sus items.
func (h *OutboundHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOutboundResponse(doc))
}

// List devuelve todos los documentos; ?status= filtra por estado.
func (h *OutboundHandler) List(c *fiber.Ctx) error {
	if status := c.Query("status"); status != "" {
		docs, err := h.uc.ListByStatus(status)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(dto.ToOutboundResponses(docs))
	}
	docs, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOutboundResponses(docs))
}

// ListByWorkshop documentos de un taller/destino.
func (h *OutboundHandler) ListByWorkshop(c *fiber.Ctx) error {
	docs, err := h.uc.ListByWorkshop(c.Params("workshop"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOutboundResponses(docs))
}

// Update modifica reason/workshop/notes de un borrador.
func (h *OutboundHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOutboundRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.Update(c.Context(), c.Params("id"), outbound.UpdateInput{
		Reason:   in.Reason,
		Workshop: in.Workshop,
		Notes:    in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOutboundResponse(doc))
}

// Validate transiciona DRAFT -> VALIDATED debitando stock FIFO.
func (h *OutboundHandler) Validate(c *fiber.Ctx) error {
	doc, err := h.uc.Validate(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOutboundResponse(doc))
}

// Cancel transiciona DRAFT -> CANCELLED (sin efecto en el ledger).
func (h *OutboundHandler) Cancel(c *fiber.Ctx) error {
	doc, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToOutboundResponse(doc))
}
