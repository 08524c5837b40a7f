package dto

import "time"

// CreateWarehouseRequest body para POST /api/warehouses.
// CompanyID solo lo puede fijar root (las bodegas siempre tienen empresa dueña);
// para el resto de usuarios se toma de su propia empresa.
type CreateWarehouseRequest struct {
	Name               string   `json:"name"`
	NotificationEmails []string `json:"notification_emails"`
	LowStockDefault    int      `json:"low_stock_default"`
	CompanyID          string   `json:"company_id,omitempty"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses/:id (campos opcionales).
type UpdateWarehouseRequest struct {
	Name               *string   `json:"name,omitempty"`
	NotificationEmails *[]string `json:"notification_emails,omitempty"`
	LowStockDefault    *int      `json:"low_stock_default,omitempty"`
}

// WarehouseResponse representación pública de una bodega.
// CameraAPIKey solo se expone al crear la bodega.
type WarehouseResponse struct {
	ID                 string     `json:"id"`
	CompanyID          string     `json:"company_id"`
	Name               string     `json:"name"`
	LowStockDefault    int        `json:"low_stock_default"`
	NotificationEmails []string   `json:"notification_emails"`
	CameraAPIKey       string     `json:"camera_api_key,omitempty"`
	BlockedAt          *time.Time `json:"blocked_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
