package entity

import "time"

// Estados de un suministro. waiting es el inicial; done y canceled son terminales:
// reabrir un suministro no existe, se crea uno nuevo.
const (
	SupplyWaiting  = "waiting"
	SupplyDone     = "done"
	SupplyCanceled = "canceled"
)

// ValidSupplyStatus indica si el string es un estado terminal solicitable.
func ValidSupplyStatus(s string) bool {
	return s == SupplyDone || s == SupplyCanceled
}

// Supply representa un suministro pendiente de un item hacia una bodega.
type Supply struct {
	ID                string
	WarehouseID       string
	ItemID            string
	Amount            int // > 0
	ExpectedAt        time.Time
	Note              string
	Status            string
	OverdueNotifiedAt *time.Time // dedup de la notificación supply_overdue
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time

	// Derivados para lecturas (no persistidos).
	ItemName string
	Overdue  bool
}

// IsOverdue indica si el suministro sigue en waiting pasada su fecha estimada.
func (s *Supply) IsOverdue(now time.Time) bool {
	return s.Status == SupplyWaiting && s.ExpectedAt.Before(now)
}
