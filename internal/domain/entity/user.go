package entity

import "time"

// User representa un usuario del sistema (pertenece a una Company; root no tiene empresa).
type User struct {
	ID           string
	CompanyID    string // vacío para root
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Permissions  []string // permisos finos ("items.op", "supplies.update", ...) o "*"
	IsRoot       bool
	IsCEO        bool
	BlockedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Principal construye la identidad resuelta a partir del usuario persistido.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Permissions: u.Permissions,
		IsRoot:      u.IsRoot,
		IsCEO:       u.IsCEO,
		Blocked:     u.BlockedAt != nil,
	}
}

// Permisos conocidos de la aplicación.
const (
	PermItemsCreate      = "items.create"
	PermItemsUpdate      = "items.update"
	PermItemsOp          = "items.op"
	PermSuppliesCreate   = "supplies.create"
	PermSuppliesUpdate   = "supplies.update"
	PermWarehousesCreate = "warehouses.create"
	PermWarehousesUpdate = "warehouses.update"
	PermWarehousesDelete = "warehouses.delete"
	PermUsersCreate      = "users.create"
	PermUsersDelete      = "users.delete"
)
