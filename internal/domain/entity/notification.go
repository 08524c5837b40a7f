package entity

import "time"

// Tipos de notificación in-app.
const (
	NotifLowStock      = "low_stock"
	NotifSupplyCreated = "supply_created"
	NotifSupplyStatus  = "supply_status"
	NotifSupplyOverdue = "supply_overdue"
)

// Notification es un aviso in-app a nivel de empresa. Se crea y nunca se muta,
// salvo la transición única del flag de lectura.
type Notification struct {
	ID           string
	CompanyID    string
	WarehouseID  *string
	SupplyID     *string
	ItemID       *string
	Type         string
	Title        string
	Message      string
	Read         bool
	ReadAt       *time.Time
	ReadByUserID *string
	ByUserID     *string // nil para eventos automáticos (cámara, vencimientos)
	CreatedAt    time.Time
}
