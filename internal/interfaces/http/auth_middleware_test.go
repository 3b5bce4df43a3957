package http_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/magasin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/magasin-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para resolver el token y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(resolver apphttp.IdentityResolver, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected",
		apphttp.AuthMiddleware(resolver),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":       true,
				"user_id":  apphttp.GetUserID(c),
				"username": apphttp.GetUsername(c),
				"roles":    apphttp.GetRoles(c),
			})
		},
	)
	return app
}

// doRequest lanza una petición GET /protected con el header Authorization tal cual.
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

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(newResolver(), entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body struct {
		OK       bool     `json:"ok"`
		UserID   string   `json:"user_id"`
		Username string   `json:"username"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OK)
	assert.Equal(t, "u-admin", body.UserID)
	assert.Equal(t, "u-admin", body.Username)
	assert.Equal(t, []string{"admin"}, body.Roles)
}

func TestRequireRole_CualquieraDeLosRoles(t *testing.T) {
	app := buildTestApp(newResolver(), entity.RoleAdmin, entity.RoleEmployee)
	resp := doRequest(t, app, "Bearer tok-employee")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// La jerarquía es plana: manager no hereda de admin ni al revés.
func TestRequireRole_JerarquiaPlana(t *testing.T) {
	cases := []struct {
		name     string
		required string
		token    string
	}{
		{"manager en ruta admin", entity.RoleAdmin, "tok-manager"},
		{"admin en ruta manager", entity.RoleManager, "tok-admin"},
		{"employee en ruta manager", entity.RoleManager, "tok-employee"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(newResolver(), tc.required)
			resp := doRequest(t, app, "Bearer "+tc.token)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "FORBIDDEN")
		})
	}
}

func TestRequireRole_SinIdentidad_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	cases := map[string]string{
		"sin header":        "",
		"esquema basic":     "Basic dXNlcjpwYXNz",
		"bearer vacío":      "Bearer   ",
		"token desconocido": "Bearer token.invalido.aqui",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			app := buildTestApp(newResolver(), entity.RoleAdmin)
			resp := doRequest(t, app, header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "UNAUTHORIZED")
		})
	}
}

func TestAuthMiddleware_EsquemaSinDistinguirMayusculas(t *testing.T) {
	app := buildTestApp(newResolver(), entity.RoleAdmin)
	resp := doRequest(t, app, "bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_FalloDeAlmacenamiento_Retorna500(t *testing.T) {
	resolver := newResolver()
	resolver.err = errors.New("conexión rechazada")
	app := buildTestApp(resolver, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INTERNAL")
	assert.NotContains(t, string(body), "conexión rechazada", "el detalle interno no debe filtrarse")
}
