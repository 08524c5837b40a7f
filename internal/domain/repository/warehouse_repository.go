package repository

import (
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Todas las lecturas excluyen bodegas con deleted_at fijado.
type WarehouseRepository interface {
	Create(w *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	// GetByCameraKey autentica la ingesta de cámara: bodega viva cuya api key coincide.
	GetByCameraKey(id, apiKey string) (*entity.Warehouse, error)
	ListByCompany(companyID string) ([]*entity.Warehouse, error)
	ListAll() ([]*entity.Warehouse, error)
	Update(w *entity.Warehouse) error
	SetBlocked(id string, at *time.Time) error
	SoftDelete(id string, now time.Time) error
}
