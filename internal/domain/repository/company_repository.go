package repository

import "github.com/invorya/bodega-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	// Create inserta la empresa; ErrConflict si el nombre ya existe.
	Create(c *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByName(name string) (*entity.Company, error)
}
