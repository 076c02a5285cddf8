package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdelorenc/tienda-api/internal/application/auth"
	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/domain"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// SessionHandler maneja registro, login, sesión actual y logout.
type SessionHandler struct {
	uc         *auth.AuthUseCase
	cookieName string
	cookieTTL  time.Duration
	log        *logger.Logger
}

// NewSessionHandler construye el handler de sesiones.
func NewSessionHandler(uc *auth.AuthUseCase, cookieName string, cookieTTL time.Duration, log *logger.Logger) *SessionHandler {
	return &SessionHandler{uc: uc, cookieName: cookieName, cookieTTL: cookieTTL, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, first_name, last_name, age"
// @Success      302
// @Router       /api/sessions/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Redirect("/register", fiber.StatusFound)
	}
	if _, err := h.uc.Register(in); err != nil {
		// Registro fallido (email duplicado, datos incompletos): de vuelta al form.
		if errors.Is(err, domain.ErrEmailAlreadyExists) || errors.Is(err, domain.ErrInvalidInput) {
			return c.Redirect("/register", fiber.StatusFound)
		}
		h.log.Error().Err(err).Msg("registro de usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo registrar el usuario"})
	}
	return c.Redirect("/login", fiber.StatusFound)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      302
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sessions/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	token, _, err := h.uc.Login(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Redirect("/login", fiber.StatusFound)
		}
		h.log.Error().Err(err).Msg("login")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo iniciar sesión"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/api/products", fiber.StatusFound)
}

// Current godoc
// @Summary      Sesión actual
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401
// @Router       /api/sessions/current [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	sess, err := h.uc.Current(c.Context(), c.Cookies(h.cookieName))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		h.log.Error().Err(err).Msg("sesión actual")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo leer la sesión"})
	}
	return c.JSON(fiber.Map{"user": dto.SessionResponse{
		Email:     sess.Email,
		FirstName: sess.FirstName,
		LastName:  sess.LastName,
		Age:       sess.Age,
		Role:      sess.Role,
	}})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         sessions
// @Success      302
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sessions/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(h.cookieName)
	if token != "" {
		if err := h.uc.Logout(c.Context(), token); err != nil {
			h.log.Error().Err(err).Msg("logout")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo cerrar la sesión"})
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.Redirect("/login", fiber.StatusFound)
}
