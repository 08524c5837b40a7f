package dto

// SupplySummary conteos de suministros por estado.
type SupplySummary struct {
	Waiting  int `json:"waiting"`
	Done     int `json:"done"`
	Canceled int `json:"canceled"`
	Overdue  int `json:"overdue"`
}

// DashboardSummary resumen para el panel principal.
type DashboardSummary struct {
	Warehouses       int              `json:"warehouses"`
	TotalItems       int              `json:"total_items"`
	LowItems         int              `json:"low_items"`
	TotalStock       int              `json:"total_stock"`
	Categories       map[string]int   `json:"categories"`
	Supplies         SupplySummary    `json:"supplies"`
	UpcomingSupplies []SupplyResponse `json:"upcoming_supplies"`
}
