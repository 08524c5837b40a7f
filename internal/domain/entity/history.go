package entity

import "time"

// Tipos de entrada del ledger de historial.
const (
	HistoryCreate       = "create"        // alta de item sin stock inicial (amount = 0)
	HistoryIncome       = "income"        // entrada de stock (delta positivo); también el alta con count > 0
	HistoryOutcome      = "outcome"       // salida de stock (delta negativo)
	HistoryCameraUpdate = "camera_update" // reconciliación desde cámara (delta firmado)
)

// HistoryEntry es una entrada inmutable del ledger: se escribe exactamente una por
// mutación aceptada y nunca se actualiza ni se borra.
type HistoryEntry struct {
	ID          string
	ItemID      string
	WarehouseID string
	Type        string
	Amount      int    // delta firmado; conteo inicial absoluto en el primer avistamiento de cámara
	Note        string // ej. "auto from supply"
	TS          time.Time
	ByUserID    *string // nil para entradas originadas por cámara

	// ItemName se rellena solo en lecturas de historial por bodega (join con items).
	ItemName string
}
