package repository

import (
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// ItemFilter filtros de listado de items.
type ItemFilter struct {
	Search   string // subcadena del nombre, case-insensitive
	Category string
	LowOnly  bool   // solo items en o bajo su umbral efectivo (se resuelve en el caso de uso)
	Sort     string // name, count, category, created_at, updated_at
	Desc     bool
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// Las mutaciones de count son atómicas a nivel de sentencia: el diseño prohíbe
// leer-modificar-escribir sin atomicidad porque cámaras y operadores compiten
// por el mismo item.
type ItemRepository interface {
	// Create inserta el item; ErrConflict si ya existe (warehouse_id, name).
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByName(warehouseID, name string) (*entity.Item, error)
	// GetByNameForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
	GetByNameForUpdate(warehouseID, name string) (*entity.Item, error)
	ListByWarehouse(warehouseID string, f ItemFilter) ([]*entity.Item, error)
	ListByWarehouses(warehouseIDs []string) ([]*entity.Item, error)

	// UpdateFields actualiza solo metadata (name, category, unit, low_limit).
	UpdateFields(item *entity.Item) error

	// ApplyDelta incrementa count en una sola sentencia condicional y devuelve el
	// item resultante. ErrInsufficientStock si count+delta < 0; ErrNotFound si el
	// item no existe o está borrado.
	ApplyDelta(id string, delta int) (*entity.Item, error)
	// SetCount fija count a un valor absoluto (reconciliación de cámara, dentro de tx).
	SetCount(id string, count int) error

	// MarkLowNotified fija low_notified_at solo si estaba en NULL; devuelve si esta
	// llamada ganó la carrera (garantiza un solo disparo por cruce de umbral).
	MarkLowNotified(id string, now time.Time) (bool, error)
	// ClearLowNotified limpia el flag solo si estaba fijado (re-arma el disparador).
	ClearLowNotified(id string) (bool, error)

	SoftDeleteByWarehouse(warehouseID string, now time.Time) error
}
