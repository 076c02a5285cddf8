package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mdelorenc/tienda-api/internal/application/auth"
	"github.com/mdelorenc/tienda-api/internal/application/recovery"
	"github.com/mdelorenc/tienda-api/internal/application/usecase"
	"github.com/mdelorenc/tienda-api/internal/domain/entity"
	"github.com/mdelorenc/tienda-api/internal/domain/repository"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	RecoveryUC *recovery.RecoveryUseCase
	CartUC     *usecase.CartUseCase
	ProductUC  *usecase.ProductUseCase
	CatalogPDF *usecase.CatalogPDFUseCase
	UserUC     *usecase.UserUseCase
	Sessions   repository.SessionStore
	CookieName string
	SessionTTL time.Duration
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesiones (público)
	sessions := api.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.AuthUC, deps.CookieName, deps.SessionTTL, deps.Log)
	sessions.Post("/register", sessionHandler.Register)
	sessions.Post("/login", sessionHandler.Login)
	sessions.Get("/current", sessionHandler.Current)
	sessions.Post("/logout", sessionHandler.Logout)

	// Recuperación de contraseña (público: se llega sin sesión)
	recoverGroup := api.Group("/recover")
	recoverHandler := NewRecoverHandler(deps.RecoveryUC, deps.Log)
	recoverGroup.Post("/", recoverHandler.Request)
	recoverGroup.Get("/reset-password", recoverHandler.ShowResetForm)
	recoverGroup.Post("/reset-password", recoverHandler.Reset)

	// Rutas protegidas (requieren sesión activa)
	protected := api.Group("/", RequireSession(deps.Sessions, deps.CookieName))

	// Catálogo (protegido; la autorización fina vive en el caso de uso)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CatalogPDF, deps.Log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/create-product", productHandler.CreateForm)
	products.Get("/delete-product/:id", productHandler.DeleteConfirm)
	products.Get("/search", productHandler.Search)
	products.Get("/export.pdf", productHandler.ExportPDF)

	// Carrito (protegido)
	carts := protected.Group("/carts")
	cartHandler := NewCartHandler(deps.CartUC, deps.Log)
	carts.Get("/", cartHandler.Get)
	carts.Put("/addToCart", cartHandler.AddToCart)
	carts.Post("/", cartHandler.Increment)
	carts.Delete("/removeProduct/:pid", cartHandler.RemoveProduct)
	carts.Delete("/clear", cartHandler.Clear)
	carts.Post("/purchase", cartHandler.Purchase)

	// Administración de cuentas (protegido, solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC, deps.Log)
	users.Put("/premium/:email", userHandler.TogglePremium)
	users.Delete("/:email", userHandler.Delete)
}
