package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
	"github.com/tu-usuario/almacen-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

func newUseCase(t *testing.T) *auth.UseCase {
	t.Helper()
	store := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)
	store.SeedUser(&entity.User{
		ID:           "u1",
		Email:        "bodega@almacen.test",
		Name:         "Bodeguero",
		PasswordHash: string(hash),
		Role:         entity.RoleBodeguero,
	})
	uc := auth.NewUseCase(store.UserRepository(), auth.JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 15,
		Issuer:     "almacen-api",
	})
	return uc
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newUseCase(t)

	resp, err := uc.Login(dto.LoginRequest{Email: "bodega@almacen.test", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, entity.RoleBodeguero, resp.User.Role)

	// El token lleva userID y rol verificables.
	userID, role, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleBodeguero, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := newUseCase(t)

	_, err := uc.Login(dto.LoginRequest{Email: "bodega@almacen.test", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := newUseCase(t)

	// Mismo error que password incorrecta: no se filtra qué falló.
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@almacen.test", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
