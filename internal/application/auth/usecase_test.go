package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/domain"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
)

type authFixture struct {
	uc        *auth.AuthUseCase
	users     *memrepo.UserRepo
	companies *memrepo.CompanyRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:     memrepo.NewUserRepo(),
		companies: memrepo.NewCompanyRepo(),
	}
	tx := &memrepo.Tx{Companies: f.companies, Users: f.users}
	f.uc = auth.NewAuthUseCase(tx, f.users, f.companies, auth.JWTConfig{
		Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "bodega-api-test",
	})
	return f
}

func TestRegisterCEO_CreaEmpresaYUsuario(t *testing.T) {
	f := newAuthFixture(t)

	out, err := f.uc.RegisterCEO(dto.RegisterCEORequest{
		CompanyName: "ACME", Email: "ceo@acme.test", Password: "secreta", Name: "Ana",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.True(t, out.User.IsCEO)
	assert.Equal(t, []string{"*"}, out.User.Permissions)

	company, err := f.companies.GetByName("ACME")
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, company.ID, out.User.CompanyID)
}

func TestRegisterCEO_EmailDuplicadoNoDejaEmpresaHuerfana(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.RegisterCEO(dto.RegisterCEORequest{
		CompanyName: "ACME", Email: "ceo@acme.test", Password: "secreta",
	})
	require.NoError(t, err)

	_, err = f.uc.RegisterCEO(dto.RegisterCEORequest{
		CompanyName: "Globex", Email: "ceo@acme.test", Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// el alta fallida no debe dejar la empresa creada a medias
	company, err := f.companies.GetByName("Globex")
	require.NoError(t, err)
	assert.Nil(t, company)
}

func TestRegisterCEO_LoginPosterior(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.RegisterCEO(dto.RegisterCEORequest{
		CompanyName: "ACME", Email: "ceo@acme.test", Password: "secreta",
	})
	require.NoError(t, err)

	out, err := f.uc.Login(dto.LoginRequest{Email: "ceo@acme.test", Password: "secreta"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	_, err = f.uc.Login(dto.LoginRequest{Email: "ceo@acme.test", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
