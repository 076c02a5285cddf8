package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdelorenc/tienda-api/internal/application/auth"
	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/infrastructure/redisstore"
)

// fakeUserRepo implementación en memoria del puerto de usuarios.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdatePassword(email, hash string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) UpdateRole(email, role string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(email string) (bool, error) {
	_, ok := r.users[email]
	delete(r.users, email)
	return ok, nil
}

func newAuthUC(t *testing.T) (*auth.AuthUseCase, *fakeUserRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	repo := newFakeUserRepo()
	return auth.NewAuthUseCase(repo, redisstore.NewSessionStore(rdb), time.Hour), repo
}

func registerAna(t *testing.T, uc *auth.AuthUseCase) {
	t.Helper()
	_, err := uc.Register(dto.RegisterRequest{
		Email:     "ana@x.com",
		Password:  "p1",
		FirstName: "Ana",
		LastName:  "Pérez",
		Age:       30,
	})
	require.NoError(t, err)
}

func TestRegister_HasheaYAsignaRolUser(t *testing.T) {
	uc, repo := newAuthUC(t)
	registerAna(t, uc)

	stored, _ := repo.GetByEmail("ana@x.com")
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleUser, stored.Role, "el rol por defecto es user")
	assert.NotEqual(t, "p1", stored.PasswordHash, "nunca se persiste el password plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("p1")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC(t)
	registerAna(t, uc)

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@x.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLoginCurrentLogout_RoundTrip(t *testing.T) {
	uc, _ := newAuthUC(t)
	registerAna(t, uc)
	ctx := context.Background()

	token, snap, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@x.com", Password: "p1"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// current devuelve exactamente el snapshot de esa cuenta.
	got, err := uc.Current(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, "Ana", got.FirstName)

	// logout destruye la sesión: current pasa a no autorizado.
	require.NoError(t, uc.Logout(ctx, token))
	_, err = uc.Current(ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuthUC(t)
	registerAna(t, uc)
	ctx := context.Background()

	_, _, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@x.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.com", Password: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials,
		"cuenta inexistente responde igual que password incorrecto")
}

func TestCurrent_SinToken(t *testing.T) {
	uc, _ := newAuthUC(t)
	_, err := uc.Current(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
