package entity

import "time"

// Company representa una organización/tenant del sistema. Toda bodega, usuario y
// notificación pertenece a exactamente una empresa; el aislamiento entre tenants
// se verifica por company_id en cada lectura y escritura.
type Company struct {
	ID        string
	Name      string // único; las cámaras lo envían como verificación adicional de la API key
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
