package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mdelorenc/tienda-api/internal/application/dto"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
)

// Locals keys para la sesión en Fiber.
const (
	LocalSession = "session"
	LocalToken   = "session_token"
)

// RequireSession lee el token opaco de la cookie de sesión, resuelve el
// snapshot en el store y lo deja en c.Locals. Sin cookie o con sesión
// expirada redirige a /login, como hacía la navegación original basada
// en sesiones.
func RequireSession(sessions repository.SessionStore, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Redirect("/login", fiber.StatusFound)
		}
		sess, err := sessions.Get(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "SESSION_STORE", Message: "no se pudo verificar la sesión"})
		}
		if sess == nil {
			return c.Redirect("/login", fiber.StatusFound)
		}
		c.Locals(LocalSession, sess)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// RequireRole autoriza por rol sobre la sesión ya cargada. Debe usarse
// DESPUÉS de RequireSession.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := GetSession(c)
		if sess == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"})
		}
		for _, role := range roles {
			if sess.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tienes permisos para esta operación"})
	}
}

// GetSession devuelve el snapshot de la sesión del contexto (después de RequireSession).
func GetSession(c *fiber.Ctx) *entity.Session {
	v := c.Locals(LocalSession)
	if v == nil {
		return nil
	}
	s, _ := v.(*entity.Session)
	return s
}

// GetSessionToken devuelve el token opaco de la sesión del contexto.
func GetSessionToken(c *fiber.Ctx) string {
	v := c.Locals(LocalToken)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
