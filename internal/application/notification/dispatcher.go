package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/invorya/bodega-api/internal/domain/entity"
	"github.com/invorya/bodega-api/internal/domain/repository"
	"github.com/invorya/bodega-api/pkg/logger"
)

// Mailer puerto del transporte de correo saliente. Best-effort: el despachador
// registra los fallos y nunca los propaga.
type Mailer interface {
	SendLowStockEmail(to []string, itemName string, count, lowLimit int, warehouseName string) error
}

// Dispatcher es el punto de fan-out de notificaciones: crea registros in-app y
// dispara el correo externo. Un fallo del Notifier jamás revierte la mutación de
// stock que lo originó; la corrección del inventario tiene prioridad sobre la
// entrega de avisos.
type Dispatcher struct {
	repo   repository.NotificationRepository
	mailer Mailer
	log    *logger.Logger
}

// NewDispatcher construye el despachador.
func NewDispatcher(repo repository.NotificationRepository, mailer Mailer, log *logger.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, mailer: mailer, log: log}
}

// NotifyParams parámetros de una notificación in-app.
type NotifyParams struct {
	CompanyID   string
	WarehouseID *string
	SupplyID    *string
	ItemID      *string
	Type        string
	Title       string
	Message     string
	ByUserID    *string
}

// Notify crea el registro in-app. Best-effort: devuelve el registro si se pudo
// crear y nil si no (el fallo queda en el log).
func (d *Dispatcher) Notify(p NotifyParams) *entity.Notification {
	n := &entity.Notification{
		ID:          uuid.New().String(),
		CompanyID:   p.CompanyID,
		WarehouseID: p.WarehouseID,
		SupplyID:    p.SupplyID,
		ItemID:      p.ItemID,
		Type:        p.Type,
		Title:       p.Title,
		Message:     p.Message,
		ByUserID:    p.ByUserID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := d.repo.Create(n); err != nil {
		d.log.Error().Err(err).Str("type", p.Type).Str("company_id", p.CompanyID).
			Msg("crear notificación in-app")
		return nil
	}
	return n
}

// DispatchLowStock envía la alerta de stock bajo: correo si la bodega tiene
// destinatarios configurados, más el registro in-app. Implementa
// inventory.LowStockNotifier.
func (d *Dispatcher) DispatchLowStock(wh *entity.Warehouse, item *entity.Item, lowLimit int, byUserID *string) {
	if len(wh.NotificationEmails) > 0 {
		if err := d.mailer.SendLowStockEmail(wh.NotificationEmails, item.Name, item.Count, lowLimit, wh.Name); err != nil {
			d.log.Error().Err(err).Str("item", item.Name).Str("warehouse", wh.Name).
				Msg("enviar correo de stock bajo")
		}
	}
	d.Notify(NotifyParams{
		CompanyID:   wh.CompanyID,
		WarehouseID: &wh.ID,
		ItemID:      &item.ID,
		Type:        entity.NotifLowStock,
		Title:       fmt.Sprintf("Stock bajo: %s", item.Name),
		Message: fmt.Sprintf("En la bodega «%s» quedan %d %s. Umbral: %d.",
			wh.Name, item.Count, item.Unit, lowLimit),
		ByUserID: byUserID,
	})
}
