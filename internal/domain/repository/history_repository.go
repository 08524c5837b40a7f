package repository

import (
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// HistoryRepository define el puerto del ledger de historial: append-only.
// Ninguna operación actualiza ni borra entradas existentes; el cascade de borrado
// de bodega solo marca deleted_at para sacarlas de los listados.
type HistoryRepository interface {
	Append(e *entity.HistoryEntry) error
	// ListByItem devuelve entradas ordenadas por ts descendente.
	ListByItem(itemID string, limit int) ([]*entity.HistoryEntry, error)
	// ListByWarehouse igual que ListByItem pero por bodega, con item_name resuelto.
	ListByWarehouse(warehouseID string, limit int) ([]*entity.HistoryEntry, error)
	SoftDeleteByWarehouse(warehouseID string, now time.Time) error
}
