package usecase

import (
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/policy"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// UserUseCase administración de cuentas: cambio de rol y baja (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// TogglePremium alterna el rol user<->premium de una cuenta. Es la única vía
// de mutación del rol; las cuentas admin no se tocan por esta operación.
func (uc *UserUseCase) TogglePremium(actor *entity.Session, email string) (string, error) {
	if !policy.Can(actor, policy.UserSetRole, nil) {
		return "", domain.ErrForbidden
	}
	user, err := uc.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if user.Role == entity.RoleAdmin {
		return "", domain.ErrInvalidInput
	}
	newRole := entity.RolePremium
	if user.Role == entity.RolePremium {
		newRole = entity.RoleUser
	}
	if err := uc.repo.UpdateRole(email, newRole); err != nil {
		return "", err
	}
	uc.log.Info().Str("email", email).Str("role", newRole).Msg("rol actualizado")
	return newRole, nil
}

// Delete elimina la cuenta. Es idempotente: si el email no existe se loguea
// y se reporta éxito igualmente.
func (uc *UserUseCase) Delete(actor *entity.Session, email string) error {
	if !policy.Can(actor, policy.UserDelete, nil) {
		return domain.ErrForbidden
	}
	found, err := uc.repo.Delete(email)
	if err != nil {
		return err
	}
	if !found {
		uc.log.Info().Str("email", email).Msg("no se encontró el usuario así que no se eliminó")
	}
	return nil
}
