package dto

import (
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// OutboundItemRequest línea solicitada al crear una salida.
type OutboundItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
}

// CreateOutboundRequest crea un documento de salida en borrador.
type CreateOutboundRequest struct {
	Reason   string                `json:"reason"`
	Workshop string                `json:"workshop"`
	Notes    string                `json:"notes"`
	Items    []OutboundItemRequest `json:"items"`
}

// UpdateOutboundRequest campos mutables mientras el documento está en DRAFT.
// Punteros: nil = sin cambio.
type UpdateOutboundRequest struct {
	Reason   *string `json:"reason"`
	Workshop *string `json:"workshop"`
	Notes    *string `json:"notes"`
}

// OutboundItemResponse línea del documento en respuestas.
type OutboundItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// OutboundResponse documento de salida en respuestas.
type OutboundResponse struct {
	ID        string                 `json:"id"`
	Reference string                 `json:"reference"`
	Reason    string                 `json:"reason"`
	Status    string                 `json:"status"`
	Workshop  string                 `json:"workshop,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
	Items     []OutboundItemResponse `json:"items"`
	CreatedBy string                 `json:"created_by,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ToOutboundResponse mapea la entidad a su representación HTTP.
func ToOutboundResponse(doc *entity.StockOutbound) OutboundResponse {
	resp := OutboundResponse{
		ID:        doc.ID,
		Reference: doc.Reference,
		Reason:    doc.Reason,
		Status:    doc.Status,
		Workshop:  doc.Workshop,
		Notes:     doc.Notes,
		CreatedBy: doc.CreatedBy,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for _, item := range doc.Items {
		resp.Items = append(resp.Items, OutboundItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Notes:     item.Notes,
		})
	}
	return resp
}

// ToOutboundResponses mapea una lista de documentos.
func ToOutboundResponses(docs []*entity.StockOutbound) []OutboundResponse {
	out := make([]OutboundResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ToOutboundResponse(doc))
	}
	return out
}
