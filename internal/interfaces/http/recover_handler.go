package http

import (
	"errors"
	"fmt"
	"html"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/application/recovery"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// RecoverHandler maneja el flujo de recuperación de contraseña: solicitud
// del enlace, render del formulario de reseteo y canje del token.
type RecoverHandler struct {
	uc  *recovery.RecoveryUseCase
	log *logger.Logger
}

// NewRecoverHandler construye el handler de recuperación.
func NewRecoverHandler(uc *recovery.RecoveryUseCase, log *logger.Logger) *RecoverHandler {
	return &RecoverHandler{uc: uc, log: log}
}

// expiredLinkPage aviso de enlace vencido, con el camino de vuelta al inicio
// del flujo.
const expiredLinkPage = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Enlace expirado</title></head>
<body>
  <h2>El enlace ha expirado</h2>
  <p>Puedes solicitar uno nuevo en <a href="/recover">recuperar contraseña</a>.</p>
</body>
</html>`

// Request godoc
// @Summary      Solicitar enlace de recuperación
// @Tags         recover
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "email"
// @Success      200  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/recover [post]
func (h *RecoverHandler) Request(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return c.Redirect("/recover", fiber.StatusFound)
	}
	found, err := h.uc.Request(c.Context(), in.Email)
	if err != nil {
		h.log.Error().Err(err).Str("email", in.Email).Msg("solicitud de recuperación")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "MAIL_FAILED", Message: "no se pudo enviar el correo de recuperación"})
	}
	if !found {
		// Email sin cuenta: de vuelta al form, sin tocar nada.
		return c.Redirect("/recover", fiber.StatusFound)
	}
	return c.JSON(dto.MessageResponse{Message: "Correo de recuperación enviado"})
}

// ShowResetForm godoc
// @Summary      Formulario de nueva contraseña
// @Tags         recover
// @Produce      html
// @Param        token  query  string  true   "token de recuperación"
// @Param        email  query  string  false  "email de la cuenta"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recover/reset-password [get]
func (h *RecoverHandler) ShowResetForm(c *fiber.Ctx) error {
	token := c.Query("token")
	email := c.Query("email")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "falta el token de recuperación"})
	}
	if _, err := h.uc.VerifyToken(token); err != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(expiredLinkPage)
	}

	// El token y el email viajan escondidos en el form para volver en el POST.
	page := fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Nueva contraseña</title></head>
<body>
  <h2>Elige tu nueva contraseña</h2>
  <form action="/api/recover/reset-password" method="post">
    <input type="hidden" name="token" value=%q>
    <input type="hidden" name="email" value=%q>
    <label>Nueva contraseña: <input type="password" name="newPassword" required></label>
    <button type="submit">Cambiar contraseña</button>
  </form>
</body>
</html>`, html.EscapeString(token), html.EscapeString(email))

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// Reset godoc
// @Summary      Canjear el token por una contraseña nueva
// @Tags         recover
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        token        formData  string  true  "token de recuperación"
// @Param        email        formData  string  true  "email de la cuenta"
// @Param        newPassword  formData  string  true  "contraseña nueva"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/recover/reset-password [post]
func (h *RecoverHandler) Reset(c *fiber.Ctx) error {
	var in struct {
		Token       string `json:"token" form:"token"`
		Email       string `json:"email" form:"email"`
		NewPassword string `json:"newPassword" form:"newPassword"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Token == "" || in.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token y newPassword son requeridos"})
	}

	err := h.uc.Reset(c.Context(), in.Token, in.Email, in.NewPassword)
	switch {
	case err == nil:
		return c.JSON(dto.MessageResponse{Message: "Contraseña actualizada correctamente. Puedes cerrar esta ventana"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "no se encontró una cuenta para ese email"})
	case errors.Is(err, domain.ErrSamePassword):
		// Contraseña repetida: de vuelta al mismo formulario, con el token intacto.
		back := fmt.Sprintf("/api/recover/reset-password?token=%s&email=%s",
			url.QueryEscape(in.Token), url.QueryEscape(in.Email))
		return c.Redirect(back, fiber.StatusFound)
	case errors.Is(err, domain.ErrExpiredToken), errors.Is(err, domain.ErrInvalidToken):
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(expiredLinkPage)
	default:
		h.log.Error().Err(err).Msg("reseteo de contraseña")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo actualizar la contraseña"})
	}
}
