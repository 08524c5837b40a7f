package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/domain/entity"
	apphttp "github.com/invorya/bodega-api/internal/interfaces/http"
	"github.com/invorya/bodega-api/internal/testsupport/memrepo"
	pkgjwt "github.com/invorya/bodega-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "bodega-api-test"
	testExpMin    = 60
)

// buildTestApp construye una app Fiber mínima con el middleware de auth y un
// handler que devuelve la identidad resuelta. El Principal sale de la base
// (memrepo), no del token: así los tests cubren usuarios borrados o bloqueados
// con tokens todavía vigentes.
func buildTestApp(users *memrepo.UserRepo) *fiber.App {
	companies := memrepo.NewCompanyRepo()
	tx := &memrepo.Tx{Companies: companies, Users: users}
	authUC := auth.NewAuthUseCase(tx, users, companies, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, authUC),
		func(c *fiber.Ctx) error {
			p := apphttp.GetPrincipal(c)
			return c.JSON(fiber.Map{
				"user_id":    p.ID,
				"company_id": p.CompanyID,
			})
		},
	)
	return app
}

func seedUser(t *testing.T, users *memrepo.UserRepo, blocked bool) {
	t.Helper()
	u := &entity.User{
		ID:          testUserID,
		CompanyID:   testCompanyID,
		Email:       "operador@acme.test",
		Name:        "Operador",
		Permissions: []string{entity.PermItemsOp},
		CreatedAt:   time.Now(),
	}
	if blocked {
		now := time.Now()
		u.BlockedAt = &now
	}
	require.NoError(t, users.Create(u))
}

func bearerToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Token válido y usuario vivo: pasa y el handler ve la identidad resuelta.
func TestAuthMiddleware_TokenValidoResuelvePrincipal(t *testing.T) {
	users := memrepo.NewUserRepo()
	seedUser(t, users, false)
	app := buildTestApp(users)

	resp := doRequest(t, app, bearerToken(t))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]string
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, testUserID, out["user_id"])
	assert.Equal(t, testCompanyID, out["company_id"])
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp(memrepo.NewUserRepo())

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := buildTestApp(memrepo.NewUserRepo())

	resp := doRequest(t, app, "Token abc123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenFirmadoConOtroSecreto(t *testing.T) {
	users := memrepo.NewUserRepo()
	seedUser(t, users, false)
	app := buildTestApp(users)

	tok, err := pkgjwt.Generate("otro-secreto", testUserID, testCompanyID, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// El token sigue vigente pero el usuario ya no existe: 401.
func TestAuthMiddleware_UsuarioBorradoConTokenVigente(t *testing.T) {
	users := memrepo.NewUserRepo()
	seedUser(t, users, false)
	require.NoError(t, users.SoftDelete(testUserID, time.Now()))
	app := buildTestApp(users)

	resp := doRequest(t, app, bearerToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Usuario bloqueado después de emitido el token: 403, no 401.
func TestAuthMiddleware_UsuarioBloqueado(t *testing.T) {
	users := memrepo.NewUserRepo()
	seedUser(t, users, true)
	app := buildTestApp(users)

	resp := doRequest(t, app, bearerToken(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
