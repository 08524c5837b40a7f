package repository

import (
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// SupplyFilter filtros de listado de suministros.
type SupplyFilter struct {
	Status string // waiting, done, canceled; vacío o "all" = todos
	Search string // subcadena sobre item_name o note; se resuelve en el caso de uso (case folding)
	Sort   string // expected_at, created_at, updated_at, amount, status
	Desc   bool
}

// SupplyRepository define el puerto de persistencia para Supply (DIP).
type SupplyRepository interface {
	Create(s *entity.Supply) error
	GetByID(id string) (*entity.Supply, error)
	// ListByWarehouse devuelve suministros con ItemName resuelto.
	ListByWarehouse(warehouseID string, f SupplyFilter) ([]*entity.Supply, error)

	// MarkStatus fija el estado solo si el suministro sigue en waiting; devuelve si
	// esta llamada ganó la carrera. Un duplicado concurrente pierde y no acredita.
	MarkStatus(id, status string, now time.Time) (bool, error)
	// MarkOverdueNotified fija overdue_notified_at solo si estaba en NULL (dedup
	// entre llamadas sucesivas a list).
	MarkOverdueNotified(id string, now time.Time) (bool, error)

	CountByStatus(warehouseIDs []string) (map[string]int, error)
	// ListUpcoming devuelve los próximos suministros en waiting por expected_at asc.
	ListUpcoming(warehouseIDs []string, limit int) ([]*entity.Supply, error)

	SoftDeleteByWarehouse(warehouseID string, now time.Time) error
}
