package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/domain"
)

func respondWith(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, reqErr)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	return resp.StatusCode, string(body)
}

func TestRespondError_StockInsuficienteConContexto(t *testing.T) {
	status, body := respondWith(t, &domain.InsufficientStockError{
		ProductID: "p1",
		Requested: 150,
		Available: 130,
	})

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, `"code":"INSUFFICIENT_STOCK"`)
	assert.Contains(t, body, `"product_id":"p1"`)
	assert.Contains(t, body, `"requested":150`)
	assert.Contains(t, body, `"available":130`)
}

func TestRespondError_TransicionInvalida(t *testing.T) {
	status, body := respondWith(t, &domain.InvalidTransitionError{
		DocumentID: "doc-1",
		From:       "VALIDATED",
		Operation:  "cancel",
	})

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, `"code":"INVALID_STATE"`)
	assert.Contains(t, body, `"status":"VALIDATED"`)
}

func TestRespondError_MapeoDeSentinelas(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		status, body := respondWith(t, tc.err)
		assert.Equal(t, tc.status, status, "error %v", tc.err)
		assert.Contains(t, body, tc.code)
	}
}

func TestRespondError_ErrorEnvueltoConservaElMapeo(t *testing.T) {
	wrapped := errors.Join(errors.New("cargar documento"), domain.ErrNotFound)
	status, _ := respondWith(t, wrapped)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestRespondError_Desconocido(t *testing.T) {
	status, body := respondWith(t, errors.New("se cayó la base"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL")
}
