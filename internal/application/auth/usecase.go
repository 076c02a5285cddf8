package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
)

// sessionTokenBytes bytes aleatorios del token de sesión (hex de 64 chars).
const sessionTokenBytes = 32

// AuthUseCase casos de uso de autenticación: registro, login, sesión actual y logout.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	sessions   repository.SessionStore
	sessionTTL time.Duration
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions repository.SessionStore, sessionTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessions: sessions, sessionTTL: sessionTTL}
}

// Register crea una cuenta: hashea el password con bcrypt y persiste con rol
// "user" (el rol solo cambia después por la operación explícita de rol).
// Devuelve ErrEmailAlreadyExists si el email ya tiene cuenta.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*entity.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Age:          in.Age,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifica email/password contra el hash y abre una sesión server-side:
// genera un token opaco y guarda el snapshot seguro bajo ese token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (string, *entity.Session, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return "", nil, err
	}
	snap := entity.NewSession(user)
	if err := uc.sessions.Set(ctx, token, snap, uc.sessionTTL); err != nil {
		return "", nil, fmt.Errorf("guardar sesión: %w", err)
	}
	return token, snap, nil
}

// Current devuelve el snapshot de la sesión, o ErrUnauthorized si no hay ninguna.
func (uc *AuthUseCase) Current(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	snap, err := uc.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, domain.ErrUnauthorized
	}
	return snap, nil
}

// Logout destruye la sesión; es la única forma de cerrarla.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Delete(ctx, token)
}

func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generar token de sesión: %w", err)
	}
	return hex.EncodeToString(b), nil
}
