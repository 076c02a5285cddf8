package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/application/usecase"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// UserHandler administración de cuentas (solo admin).
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// TogglePremium godoc
// @Summary      Alternar el rol user/premium de una cuenta
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "email de la cuenta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/premium/{email} [put]
func (h *UserHandler) TogglePremium(c *fiber.Ctx) error {
	email := c.Params("email")
	newRole, err := h.uc.TogglePremium(GetSession(c), email)
	switch {
	case err == nil:
		return c.JSON(dto.MessageResponse{Message: "El rol de " + email + " ahora es " + newRole})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo un admin puede cambiar roles"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "no se encontró una cuenta para ese email"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el rol de una cuenta admin no se alterna"})
	default:
		h.log.Error().Err(err).Str("email", email).Msg("alternar rol premium")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo actualizar el rol"})
	}
}

// Delete godoc
// @Summary      Eliminar una cuenta
// @Description  Idempotente: un email inexistente igualmente reporta éxito.
// @Tags         users
// @Produce      json
// @Param        email  path  string  true  "email de la cuenta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users/{email} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	email := c.Params("email")
	err := h.uc.Delete(GetSession(c), email)
	switch {
	case err == nil:
		return c.JSON(dto.MessageResponse{Message: "Usuario eliminado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo un admin puede eliminar cuentas"})
	default:
		h.log.Error().Err(err).Str("email", email).Msg("eliminar usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo eliminar la cuenta"})
	}
}
