package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mdelorenc/tienda-api/internal/application/auth"
	apprecovery "github.com/mdelorenc/tienda-api/internal/application/recovery"
	"github.com/mdelorenc/tienda-api/internal/application/usecase"
	"github.com/mdelorenc/tienda-api/internal/infrastructure/mail"
	infrapdf "github.com/mdelorenc/tienda-api/internal/infrastructure/pdf"
	"github.com/mdelorenc/tienda-api/internal/infrastructure/postgres"
	"github.com/mdelorenc/tienda-api/internal/infrastructure/redisstore"
	httpRouter "github.com/mdelorenc/tienda-api/internal/interfaces/http"
	"github.com/mdelorenc/tienda-api/pkg/config"
	"github.com/mdelorenc/tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	sessionStore := redisstore.NewSessionStore(rdb)

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	authUC := auth.NewAuthUseCase(userRepo, sessionStore, sessionTTL)

	mailer := mail.NewSMTPMailer(cfg.SMTP)
	recoveryUC := apprecovery.NewRecoveryUseCase(userRepo, mailer, apprecovery.Config{
		Secret:    cfg.Recovery.Secret,
		TTL:       time.Duration(cfg.Recovery.TTLMinutes) * time.Minute,
		PublicURL: cfg.App.PublicURL,
	}, log)

	productUC := usecase.NewProductUseCase(productRepo)
	cartUC := usecase.NewCartUseCase(cartRepo, productRepo, txRunner, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	catalogPDF := usecase.NewCatalogPDFUseCase(productRepo, infrapdf.NewMarotoCatalogGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		RecoveryUC: recoveryUC,
		CartUC:     cartUC,
		ProductUC:  productUC,
		CatalogPDF: catalogPDF,
		UserUC:     userUC,
		Sessions:   sessionStore,
		CookieName: cfg.Session.CookieName,
		SessionTTL: sessionTTL,
		Log:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
