// Package recovery implementa el flujo de recuperación de contraseña: emisión
// del token firmado con TTL fijo, envío del enlace por correo y canje del
// token por una contraseña nueva.
package recovery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
	"github.com/mdelorenc/tienda-api/pkg/logger"
	"github.com/mdelorenc/tienda-api/pkg/token"
)

// Mailer es el colaborador de correo saliente. Un error de envío se propaga
// al caller como error de servidor.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config parámetros del flujo de recuperación.
type Config struct {
	Secret    string
	TTL       time.Duration
	PublicURL string // base para armar el enlace del email
}

// RecoveryUseCase emite y canjea tokens de recuperación.
type RecoveryUseCase struct {
	userRepo repository.UserRepository
	mailer   Mailer
	cfg      Config
	log      *logger.Logger
}

// NewRecoveryUseCase construye el caso de uso.
func NewRecoveryUseCase(userRepo repository.UserRepository, mailer Mailer, cfg Config, log *logger.Logger) *RecoveryUseCase {
	return &RecoveryUseCase{userRepo: userRepo, mailer: mailer, cfg: cfg, log: log}
}

// Request busca la cuenta y, si existe, emite un token {email, exp} y envía
// el enlace de reseteo por correo. Si el email no tiene cuenta devuelve
// (false, nil): el handler redirige sin tocar al usuario inexistente.
func (uc *RecoveryUseCase) Request(ctx context.Context, email string) (bool, error) {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return false, err
	}
	if user == nil {
		uc.log.Info().Str("email", email).Msg("el email no está asociado a ninguna cuenta")
		return false, nil
	}

	tok, err := token.Issue(uc.cfg.Secret, email, uc.cfg.TTL)
	if err != nil {
		return false, fmt.Errorf("emitir token: %w", err)
	}
	recoverURL := fmt.Sprintf("%s/api/recover/reset-password?token=%s&email=%s",
		uc.cfg.PublicURL, tok, url.QueryEscape(email))

	body := fmt.Sprintf(`
		<h2>¡Hola %s! recibimos una solicitud para cambiar tu contraseña</h2>
		<h3><a href=%q>Si fuiste tú, cambia tu contraseña</a></h3>
		<p>Si no fuiste tú quien envió la solicitud, alguien intentó reestablecer tu contraseña. Considera tener una contraseña segura y fuerte para evitar inconvenientes a futuro</p>`,
		user.FirstName, recoverURL)

	if err := uc.mailer.Send(ctx, email, "Solicitud de reestablecimiento de contraseña", body); err != nil {
		return false, fmt.Errorf("enviar correo de recuperación: %w", err)
	}
	uc.log.Info().Str("email", email).Msg("correo de recuperación enviado")
	return true, nil
}

// VerifyToken valida firma y expiración y devuelve el email embebido.
// Mapea los errores de la librería de firma a errores de dominio: TTL
// vencido y firma/forma inválida son fallas distintas aunque el handler
// muestre la misma página.
func (uc *RecoveryUseCase) VerifyToken(tok string) (string, error) {
	email, err := token.Verify(uc.cfg.Secret, tok)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			return "", domain.ErrExpiredToken
		}
		return "", domain.ErrInvalidToken
	}
	return email, nil
}

// Reset canjea el token por una contraseña nueva:
//  1. la cuenta del email enviado debe existir,
//  2. la contraseña nueva no puede ser igual a la actual (verificado con el
//     predicado bcrypt, nunca comparando texto plano contra el hash),
//  3. el token debe ser válido y vigente,
//  4. se persiste el hash de la nueva para la cuenta embebida en el token
//     (no necesariamente la del email enviado).
func (uc *RecoveryUseCase) Reset(ctx context.Context, tok, email, newPassword string) error {
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		return domain.ErrSamePassword
	}

	tokenEmail, err := uc.VerifyToken(tok)
	if err != nil {
		return err
	}

	// El token manda: la cuenta a resetear es la embebida en los claims.
	user, err = uc.userRepo.GetByEmail(tokenEmail)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.userRepo.UpdatePassword(tokenEmail, string(hash)); err != nil {
		return err
	}
	uc.log.Info().Str("email", tokenEmail).Msg("contraseña actualizada por recuperación")
	return nil
}
