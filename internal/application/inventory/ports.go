package inventory

import (
	"github.com/invorya/bodega-api/internal/domain/entity"
)

// LowStockNotifier recibe los cruces de umbral detectados por el Monitor.
// La implementación real es el despachador de notificaciones; en tests se
// sustituye por un contador.
type LowStockNotifier interface {
	DispatchLowStock(wh *entity.Warehouse, item *entity.Item, lowLimit int, byUserID *string)
}
