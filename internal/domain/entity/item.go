package entity

import "time"

// Valores por defecto para items creados por la ingesta de cámara.
const (
	AutoCategory = "auto"
	AutoUnit     = "шт" // unidad que reportan los clientes de cámara
)

// Item representa un tipo de artículo dentro de una bodega. El nombre es único por
// bodega (case-sensitive). Count nunca baja de cero: una salida que lo haría se
// rechaza, no se recorta.
type Item struct {
	ID            string
	WarehouseID   string
	Name          string
	Category      string
	Unit          string
	Count         int
	LowLimit      *int       // nil = usar LowStockDefault de la bodega
	LowNotifiedAt *time.Time // flag de dedup del monitor de stock bajo (edge-triggered)
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// EffectiveLowLimit resuelve el umbral de stock bajo: low_limit del item o el
// default de la bodega.
func (i *Item) EffectiveLowLimit(w *Warehouse) int {
	if i.LowLimit != nil {
		return *i.LowLimit
	}
	return w.LowStockDefault
}

// IsLow indica si el item está en o bajo su umbral efectivo.
func (i *Item) IsLow(w *Warehouse) bool {
	return i.Count <= i.EffectiveLowLimit(w)
}
