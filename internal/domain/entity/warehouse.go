package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario. Pertenece a exactamente
// una Company. Soft-delete y soft-block: las filas borradas quedan consultables para
// auditoría pero fuera de los listados; una bodega bloqueada rechaza escrituras
// (manuales y de cámara por igual).
type Warehouse struct {
	ID                 string
	CompanyID          string
	Name               string
	LowStockDefault    int      // umbral por defecto cuando el item no define low_limit
	NotificationEmails []string // destinatarios de alertas de stock bajo
	CameraAPIKey       string   // única y sparse: solo bodegas con ingesta de cámara
	BlockedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          *time.Time
}

// Blocked indica si la bodega rechaza escrituras.
func (w *Warehouse) Blocked() bool { return w.BlockedAt != nil }
