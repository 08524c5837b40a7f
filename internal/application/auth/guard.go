package auth

import (
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
)

// Authorize verifica que el principal esté activo y tenga el permiso dado.
// Chequeo puro contra la identidad ya resuelta; no toca la base.
// Un principal bloqueado se rechaza antes de cualquier mutación.
func Authorize(p *entity.Principal, perm string) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.Blocked {
		return domain.ErrForbidden
	}
	if !p.HasPermission(perm) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireActive verifica solo que el principal exista y no esté bloqueado.
// Es el guard de las lecturas, que no exigen permiso fino.
func RequireActive(p *entity.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.Blocked {
		return domain.ErrForbidden
	}
	return nil
}

// RequireSameCompany falla con Forbidden salvo que el principal sea root o el
// recurso pertenezca a su empresa. Lo aplica cada componente antes de operar.
func RequireSameCompany(companyID string, p *entity.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if !p.CanAccessCompany(companyID) {
		return domain.ErrForbidden
	}
	return nil
}

// RequireCEOOrRoot es el caso especial de gestión de empleados: crear y borrar
// usuarios exige is_ceo o root además del permiso fino.
func RequireCEOOrRoot(p *entity.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if !p.IsCEO && !p.IsRoot {
		return domain.ErrForbidden
	}
	return nil
}
