package repository

import (
	"time"

	"github.com/invorya/bodega-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create inserta el usuario; ErrConflict si el email ya existe.
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	ListByCompany(companyID string) ([]*entity.User, error)
	SoftDelete(id string, now time.Time) error
}
