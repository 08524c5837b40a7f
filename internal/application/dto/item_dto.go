package dto

import "time"

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	WarehouseID string `json:"warehouse_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Unit        string `json:"unit"`
	Count       int    `json:"count"`
	LowLimit    *int   `json:"low_limit,omitempty"`
}

// UpdateItemRequest body para POST /api/items/update (solo metadata; count se
// muta vía income/outcome o cámara).
type UpdateItemRequest struct {
	ItemID   string  `json:"item_id"`
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	LowLimit *int    `json:"low_limit,omitempty"`
}

// ItemOpRequest body para income/outcome. Amount siempre positivo; el signo lo
// decide la operación.
type ItemOpRequest struct {
	ItemID string `json:"item_id"`
	Amount int    `json:"amount"`
}

// ItemResponse representación pública de un item.
type ItemResponse struct {
	ID            string     `json:"id"`
	WarehouseID   string     `json:"warehouse_id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	Unit          string     `json:"unit"`
	Count         int        `json:"count"`
	LowLimit      *int       `json:"low_limit,omitempty"`
	LowNotifiedAt *time.Time `json:"low_notified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// HistoryEntryResponse entrada del ledger para respuestas de historial.
type HistoryEntryResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	WarehouseID string    `json:"warehouse_id"`
	ItemName    string    `json:"item_name,omitempty"`
	Type        string    `json:"type"`
	Amount      int       `json:"amount"`
	Note        string    `json:"note,omitempty"`
	TS          time.Time `json:"ts"`
	ByUserID    *string   `json:"by_user_id,omitempty"`
}
