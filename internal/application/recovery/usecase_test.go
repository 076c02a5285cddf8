package recovery_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mdelorenc/tienda-api/internal/application/recovery"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/pkg/logger"
	"github.com/mdelorenc/tienda-api/pkg/token"
)

const testSecret = "secreto-de-recovery-tests"

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
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

func (r *fakeUserRepo) UpdateRole(email, role string) error { return nil }

func (r *fakeUserRepo) Delete(email string) (bool, error) {
	_, ok := r.users[email]
	delete(r.users, email)
	return ok, nil
}

// fakeMailer registra los envíos; failWith fuerza el error de transporte.
type fakeMailer struct {
	sentTo   []string
	lastBody string
	failWith error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sentTo = append(m.sentTo, to)
	m.lastBody = htmlBody
	return nil
}

func newRecoveryUC(t *testing.T, ttl time.Duration) (*recovery.RecoveryUseCase, *fakeUserRepo, *fakeMailer) {
	t.Helper()
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	uc := recovery.NewRecoveryUseCase(repo, mailer, recovery.Config{
		Secret:    testSecret,
		TTL:       ttl,
		PublicURL: "http://localhost:8080",
	}, logger.Nop())
	return uc, repo, mailer
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.Create(&entity.User{
		Email:        email,
		FirstName:    "Ana",
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
	}))
}

func TestRequest_CuentaInexistente_NoEnviaNada(t *testing.T) {
	uc, _, mailer := newRecoveryUC(t, time.Hour)

	found, err := uc.Request(context.Background(), "nadie@x.com")
	require.NoError(t, err, "un email sin cuenta no es un error del servidor")
	assert.False(t, found)
	assert.Empty(t, mailer.sentTo, "sin cuenta no hay correo saliente")
}

func TestRequest_EnviaElEnlaceDeReseteo(t *testing.T) {
	uc, repo, mailer := newRecoveryUC(t, time.Hour)
	seedUser(t, repo, "ana@x.com", "vieja")

	found, err := uc.Request(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.True(t, found)
	require.Equal(t, []string{"ana@x.com"}, mailer.sentTo)
	assert.Contains(t, mailer.lastBody, "/api/recover/reset-password?token=")
	assert.Contains(t, mailer.lastBody, "ana%40x.com")
}

func TestRequest_FalloDeCorreo_SePropaga(t *testing.T) {
	uc, repo, mailer := newRecoveryUC(t, time.Hour)
	seedUser(t, repo, "ana@x.com", "vieja")
	mailer.failWith = errors.New("smtp caído")

	_, err := uc.Request(context.Background(), "ana@x.com")
	assert.Error(t, err, "un fallo de envío es un error de servidor, nunca se silencia")
}

func TestReset_ActualizaElHash(t *testing.T) {
	uc, repo, _ := newRecoveryUC(t, time.Hour)
	seedUser(t, repo, "ana@x.com", "vieja")

	tok, err := token.Issue(testSecret, "ana@x.com", time.Hour)
	require.NoError(t, err)

	require.NoError(t, uc.Reset(context.Background(), tok, "ana@x.com", "nueva"))

	stored, _ := repo.GetByEmail("ana@x.com")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nueva")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("vieja")))
}

func TestReset_MismaContrasena(t *testing.T) {
	uc, repo, _ := newRecoveryUC(t, time.Hour)
	seedUser(t, repo, "ana@x.com", "vieja")
	before, _ := repo.GetByEmail("ana@x.com")

	tok, err := token.Issue(testSecret, "ana@x.com", time.Hour)
	require.NoError(t, err)

	err = uc.Reset(context.Background(), tok, "ana@x.com", "vieja")
	assert.ErrorIs(t, err, domain.ErrSamePassword)

	after, _ := repo.GetByEmail("ana@x.com")
	assert.Equal(t, before.PasswordHash, after.PasswordHash, "el guard no cambia nada")
}

func TestReset_TokenExpirado(t *testing.T) {
	uc, repo, _ := newRecoveryUC(t, time.Hour)
	seedUser(t, repo, "ana@x.com", "vieja")

	tok, err := token.Issue(testSecret, "ana@x.com", -time.Minute)
	require.NoError(t, err)

	err = uc.Reset(context.Background(), tok, "ana@x.com", "nueva")
	assert.ErrorIs(t, err, domain.ErrExpiredToken,
		"la firma es válida pero el TTL venció: se rechaza igual")
}

func TestReset_EmailEnviadoSinCuenta(t *testing.T) {
	uc, _, _ := newRecoveryUC(t, time.Hour)

	tok, err := token.Issue(testSecret, "ana@x.com", time.Hour)
	require.NoError(t, err)

	err = uc.Reset(context.Background(), tok, "nadie@x.com", "nueva")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestReset_ElTokenManda_SobreElEmailEnviado(t *testing.T) {
	// El email del form y el del token difieren: la cuenta reseteada es la
	// embebida en los claims del token.
	uc, repo, _ := newRecoveryUC(t, time.Hour)
	seedUser(t, repo, "ana@x.com", "vieja")
	seedUser(t, repo, "otra@x.com", "cualquiera")

	tok, err := token.Issue(testSecret, "ana@x.com", time.Hour)
	require.NoError(t, err)

	require.NoError(t, uc.Reset(context.Background(), tok, "otra@x.com", "nueva"))

	ana, _ := repo.GetByEmail("ana@x.com")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(ana.PasswordHash), []byte("nueva")),
		"se resetea la cuenta del token")

	otra, _ := repo.GetByEmail("otra@x.com")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(otra.PasswordHash), []byte("cualquiera")),
		"la cuenta del email enviado queda intacta")
}

func TestVerifyToken_MapeaAErrorDeDominio(t *testing.T) {
	uc, _, _ := newRecoveryUC(t, time.Hour)

	// Malformado o con firma ajena: inválido, no expirado.
	_, err := uc.VerifyToken("basura")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	ajeno, err := token.Issue("otro-secret", "ana@x.com", time.Hour)
	require.NoError(t, err)
	_, err = uc.VerifyToken(ajeno)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	// TTL vencido con firma correcta: expirado.
	vencido, err := token.Issue(testSecret, "ana@x.com", -time.Minute)
	require.NoError(t, err)
	_, err = uc.VerifyToken(vencido)
	assert.ErrorIs(t, err, domain.ErrExpiredToken)

	tok, err := token.Issue(testSecret, "ana@x.com", time.Hour)
	require.NoError(t, err)
	email, err := uc.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", email)
}
