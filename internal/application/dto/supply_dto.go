package dto

import "time"

// CreateSupplyRequest body para POST /api/supplies.
type CreateSupplyRequest struct {
	WarehouseID string    `json:"warehouse_id"`
	ItemID      string    `json:"item_id"`
	Amount      int       `json:"amount"`
	ExpectedAt  time.Time `json:"expected_at"`
	Note        string    `json:"note,omitempty"`
}

// UpdateSupplyStatusRequest body para POST /api/supplies/status.
type UpdateSupplyStatusRequest struct {
	SupplyID string `json:"supply_id"`
	Status   string `json:"status"` // done | canceled
}

// SupplyResponse representación pública de un suministro.
type SupplyResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	ItemID      string    `json:"item_id"`
	ItemName    string    `json:"item_name"`
	Amount      int       `json:"amount"`
	ExpectedAt  time.Time `json:"expected_at"`
	Note        string    `json:"note,omitempty"`
	Status      string    `json:"status"`
	Overdue     bool      `json:"overdue"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
