package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
	"github.com/mdelorenc/tienda-api/internal/infrastructure/redisstore"
	apphttp "github.com/mdelorenc/tienda-api/internal/interfaces/http"
)

const testCookieName = "sid"

// newTestStore levanta un Redis embebido y devuelve el session store.
func newTestStore(t *testing.T) repository.SessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redisstore.NewSessionStore(rdb)
}

// seedSession guarda un snapshot bajo un token fijo y lo devuelve.
func seedSession(t *testing.T, store repository.SessionStore, role string) string {
	t.Helper()
	token := "token-de-prueba-" + role
	err := store.Set(context.Background(), token, &entity.Session{
		Email:     "ana@x.com",
		FirstName: "Ana",
		Role:      role,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

// buildTestApp app Fiber mínima: RequireSession + RequireRole + handler dummy
// que devuelve 200 con el email y rol de la sesión cargada.
func buildTestApp(store repository.SessionStore, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.RequireSession(store, testCookieName)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		sess := apphttp.GetSession(c)
		return c.JSON(fiber.Map{"email": sess.Email, "role": sess.Role})
	})
	app.Get("/protected", handlers...)
	return app
}

// doRequest lanza GET /protected con la cookie de sesión (si hay token).
func doRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireSession_SesionValidaCargaLocals(t *testing.T) {
	store := newTestStore(t)
	token := seedSession(t, store, entity.RoleUser)
	app := buildTestApp(store)

	resp := doRequest(t, app, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ana@x.com", body["email"])
	assert.Equal(t, entity.RoleUser, body["role"])
}

func TestRequireSession_SinCookieRedirigeALogin(t *testing.T) {
	app := buildTestApp(newTestStore(t))

	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireSession_TokenDesconocidoRedirigeALogin(t *testing.T) {
	app := buildTestApp(newTestStore(t))

	resp := doRequest(t, app, "token-que-nadie-emitio")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	store := newTestStore(t)
	token := seedSession(t, store, entity.RoleAdmin)
	app := buildTestApp(store, entity.RoleAdmin)

	resp := doRequest(t, app, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")
}

func TestRequireRole_UserBloqueadoEnRutaAdmin(t *testing.T) {
	store := newTestStore(t)
	token := seedSession(t, store, entity.RoleUser)
	app := buildTestApp(store, entity.RoleAdmin)

	resp := doRequest(t, app, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

func TestRequireRole_PremiumAccedeRutaPremiumOAdmin(t *testing.T) {
	store := newTestStore(t)
	token := seedSession(t, store, entity.RolePremium)
	app := buildTestApp(store, entity.RolePremium, entity.RoleAdmin)

	resp := doRequest(t, app, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"premium debe poder acceder a ruta que permite premium o admin")
}
