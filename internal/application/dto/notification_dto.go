package dto

import "time"

// NotificationResponse representación pública de una notificación in-app.
type NotificationResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	WarehouseID *string    `json:"warehouse_id,omitempty"`
	SupplyID    *string    `json:"supply_id,omitempty"`
	ItemID      *string    `json:"item_id,omitempty"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
