package inventory

import (
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
	"github.com/invorya/bodega-api/pkg/logger"
)

// Monitor vigila el umbral de stock bajo. Es edge-triggered: notifica al cruzar
// de arriba hacia abajo, no mientras el item permanece bajo. El flag
// low_notified_at en el item es el dedup; se limpia cuando el count vuelve a
// superar el umbral, re-armando el disparador.
type Monitor struct {
	items    repository.ItemRepository
	notifier LowStockNotifier
	log      *logger.Logger
}

// NewMonitor construye el monitor.
func NewMonitor(items repository.ItemRepository, notifier LowStockNotifier, log *logger.Logger) *Monitor {
	return &Monitor{items: items, notifier: notifier, log: log}
}

// Evaluate se invoca después de cada mutación aceptada de count (y tras cambiar
// low_limit). Nunca devuelve error: un fallo del notificador no revierte la
// mutación que lo originó; queda en el log.
func (m *Monitor) Evaluate(wh *entity.Warehouse, item *entity.Item, byUserID *string) {
	limit := item.EffectiveLowLimit(wh)
	if item.Count <= limit {
		won, err := m.items.MarkLowNotified(item.ID, time.Now().UTC())
		if err != nil {
			m.log.Error().Err(err).Str("item_id", item.ID).Msg("marcar low_notified_at")
			return
		}
		if won {
			m.notifier.DispatchLowStock(wh, item, limit, byUserID)
		}
		return
	}
	// Por encima del umbral: re-armar el disparador si estaba fijado.
	if _, err := m.items.ClearLowNotified(item.ID); err != nil {
		m.log.Error().Err(err).Str("item_id", item.ID).Msg("limpiar low_notified_at")
	}
}
