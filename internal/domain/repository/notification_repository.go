package repository

import (
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification (DIP).
type NotificationRepository interface {
	Create(n *entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	// List devuelve notificaciones por created_at descendente. companyID vacío = todas (root).
	List(companyID string, unreadOnly bool, limit int) ([]*entity.Notification, error)
	// MarkRead fija el flag de lectura solo si seguía sin leer; devuelve si hubo cambio.
	MarkRead(id, userID string, now time.Time) (bool, error)
}
