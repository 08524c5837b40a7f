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

	"github.com/invorya/bodega-api/internal/application/auth"
	appcamera "github.com/invorya/bodega-api/internal/application/camera"
	"github.com/invorya/bodega-api/internal/application/dashboard"
	"github.com/invorya/bodega-api/internal/application/export"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/application/notification"
	"github.com/invorya/bodega-api/internal/application/supply"
	"github.com/invorya/bodega-api/internal/application/warehouse"
	"github.com/invorya/bodega-api/internal/infrastructure/mailer"
	infrapdf "github.com/invorya/bodega-api/internal/infrastructure/pdf"
	"github.com/invorya/bodega-api/internal/infrastructure/postgres"
	"github.com/invorya/bodega-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/invorya/bodega-api/internal/interfaces/http"
	"github.com/invorya/bodega-api/pkg/config"
	"github.com/invorya/bodega-api/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	supplyRepo := postgres.NewSupplyRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	smtpMailer := mailer.New(cfg.SMTP, log)
	dispatcher := notification.NewDispatcher(notificationRepo, smtpMailer, log)
	monitor := inventory.NewMonitor(itemRepo, dispatcher, log)

	authUC := auth.NewAuthUseCase(txRunner, userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	warehouseUC := warehouse.NewUseCase(warehouseRepo, itemRepo, supplyRepo, historyRepo)
	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, historyRepo, warehouseRepo, monitor)
	supplyUC := supply.NewUseCase(txRunner, supplyRepo, itemRepo, warehouseRepo, monitor, dispatcher)
	cameraUC := appcamera.NewUseCase(txRunner, warehouseRepo, companyRepo, monitor, log)
	notificationUC := notification.NewUseCase(notificationRepo)
	dashboardUC := dashboard.NewUseCase(warehouseRepo, itemRepo, supplyRepo)
	exportUC := export.NewUseCase(warehouseRepo, itemRepo, supplyRepo, historyRepo, infrapdf.NewStockReportGenerator())

	loginLimiter, err := ratelimit.NewLoginLimiter(cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer loginLimiter.Close()
	if loginLimiter.Enabled() {
		log.Info().Str("addr", cfg.Redis.Addr).Msg("rate limiter de login habilitado")
	}

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
		Title:    "Bodega API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		WarehouseUC:    warehouseUC,
		ItemUC:         itemUC,
		SupplyUC:       supplyUC,
		CameraUC:       cameraUC,
		NotificationUC: notificationUC,
		DashboardUC:    dashboardUC,
		ExportUC:       exportUC,
		LoginLimiter:   loginLimiter,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
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
