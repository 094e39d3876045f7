package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// StockOutboundRepository puerto de persistencia para documentos de salida.
// GetByID y GetByIDForUpdate cargan siempre el documento con su colección
// completa de items (carga ansiosa, nunca agregados a medias).
type StockOutboundRepository interface {
	Create(outbound *entity.StockOutbound) error
	GetByID(id string) (*entity.StockOutbound, error)
	// GetByIDForUpdate bloquea la fila del documento para serializar
	// validate/cancel/update concurrentes sobre el mismo documento.
	GetByIDForUpdate(id string) (*entity.StockOutbound, error)
	ExistsByReference(reference string) (bool, error)
	// Update persiste los campos mutables (reason, workshop, notes, status).
	// Los items son inmutables tras la creación.
	Update(outbound *entity.StockOutbound) error
	List() ([]*entity.StockOutbound, error)
	ListByWorkshop(workshop string) ([]*entity.StockOutbound, error)
	ListByStatus(status string) ([]*entity.StockOutbound, error)
}
