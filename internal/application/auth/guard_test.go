package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/domain/entity"
)

func TestAuthorize_PermisoExacto(t *testing.T) {
	p := &entity.Principal{ID: "u1", CompanyID: "c1", Permissions: []string{"items.op"}}
	assert.NoError(t, auth.Authorize(p, "items.op"))
	assert.ErrorIs(t, auth.Authorize(p, "items.create"), domain.ErrForbidden)
}

func TestAuthorize_ComodinPasaTodo(t *testing.T) {
	p := &entity.Principal{ID: "u1", CompanyID: "c1", Permissions: []string{"*"}}
	assert.NoError(t, auth.Authorize(p, "items.create"))
	assert.NoError(t, auth.Authorize(p, "warehouses.delete"))
}

func TestAuthorize_RootPasaTodo(t *testing.T) {
	p := &entity.Principal{ID: "root", IsRoot: true}
	assert.NoError(t, auth.Authorize(p, "lo.que.sea"))
}

func TestAuthorize_CEONoBypassaPermisos(t *testing.T) {
	// is_ceo por sí solo no otorga permisos finos
	p := &entity.Principal{ID: "ceo", CompanyID: "c1", IsCEO: true}
	assert.ErrorIs(t, auth.Authorize(p, "items.op"), domain.ErrForbidden)
}

func TestAuthorize_BloqueadoSiempreForbidden(t *testing.T) {
	p := &entity.Principal{ID: "u1", CompanyID: "c1", Permissions: []string{"*"}, Blocked: true}
	assert.ErrorIs(t, auth.Authorize(p, "items.op"), domain.ErrForbidden)
}

func TestAuthorize_NilEsUnauthenticated(t *testing.T) {
	assert.ErrorIs(t, auth.Authorize(nil, "items.op"), domain.ErrUnauthenticated)
}

func TestRequireSameCompany(t *testing.T) {
	a := &entity.Principal{ID: "u1", CompanyID: "companyA"}
	assert.NoError(t, auth.RequireSameCompany("companyA", a))
	// Aislamiento entre tenants: siempre Forbidden, exista o no el recurso
	assert.ErrorIs(t, auth.RequireSameCompany("companyB", a), domain.ErrForbidden)

	root := &entity.Principal{ID: "root", IsRoot: true}
	assert.NoError(t, auth.RequireSameCompany("companyB", root))
}

func TestRequireCEOOrRoot(t *testing.T) {
	assert.NoError(t, auth.RequireCEOOrRoot(&entity.Principal{ID: "ceo", IsCEO: true}))
	assert.NoError(t, auth.RequireCEOOrRoot(&entity.Principal{ID: "root", IsRoot: true}))
	assert.ErrorIs(t,
		auth.RequireCEOOrRoot(&entity.Principal{ID: "u1", Permissions: []string{"*"}}),
		domain.ErrForbidden,
		"el comodín de permisos no sustituye el flag de CEO para gestión de empleados")
}
