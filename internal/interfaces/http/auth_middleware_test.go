package http_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	apihttp "github.com/tu-usuario/almacen-api/internal/interfaces/http"
	"github.com/tu-usuario/almacen-api/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func newProtectedApp(t *testing.T, extra ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers := append([]fiber.Handler{apihttp.AuthMiddleware(testSecret)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apihttp.GetUserID(c),
			"role":    apihttp.GetRole(c),
		})
	})
	app.Get("/protegido", handlers...)
	return app
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, userID, role, "almacen-api", 15)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegido", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := newProtectedApp(t)

	token, err := jwt.Generate("otro-secreto", "u1", entity.RoleAdmin, "almacen-api", 15)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValidoExponeUsuarioYRol(t *testing.T) {
	app := newProtectedApp(t)

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "u1", entity.RoleBodeguero))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"user_id":"u1"`)
	assert.Contains(t, string(body), `"role":"bodeguero"`)
}

func TestRequireRole_RolSinPermiso(t *testing.T) {
	app := newProtectedApp(t, apihttp.RequireRole(entity.RoleAdmin))

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "u1", entity.RoleBodeguero))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_RolPermitido(t *testing.T) {
	app := newProtectedApp(t, apihttp.RequireRole(entity.RoleAdmin, entity.RoleBodeguero))

	req := httptest.NewRequest("GET", "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "u1", entity.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
