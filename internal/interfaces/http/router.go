package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/auth"
	"github.com/invorya/bodega-api/internal/application/camera"
	"github.com/invorya/bodega-api/internal/application/dashboard"
	"github.com/invorya/bodega-api/internal/application/export"
	"github.com/invorya/bodega-api/internal/application/inventory"
	"github.com/invorya/bodega-api/internal/application/notification"
	"github.com/invorya/bodega-api/internal/application/supply"
	"github.com/invorya/bodega-api/internal/application/warehouse"
	"github.com/invorya/bodega-api/internal/infrastructure/ratelimit"
	"github.com/invorya/bodega-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	WarehouseUC    *warehouse.UseCase
	ItemUC         *inventory.ItemUseCase
	SupplyUC       *supply.UseCase
	CameraUC       *camera.UseCase
	NotificationUC *notification.UseCase
	DashboardUC    *dashboard.UseCase
	ExportUC       *export.UseCase
	LoginLimiter   *ratelimit.LoginLimiter
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; login con rate limit por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register-ceo", authHandler.RegisterCEO)
	authGroup.Post("/login", LoginRateLimit(deps.LoginLimiter), authHandler.Login)

	// Camera (público; autentica con la api key de la bodega, no con JWT)
	cameraHandler := NewCameraHandler(deps.CameraUC, deps.Log)
	api.Post("/camera", cameraHandler.Detect)
	app.Use("/ws/warehouse/:id/camera", UpgradeRequired)
	app.Get("/ws/warehouse/:id/camera", cameraHandler.Stream())

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))

	// Users (protegido; solo CEO o root pasan el caso de uso)
	users := protected.Group("/users")
	users.Post("/", authHandler.CreateEmployee)
	users.Delete("/:id", authHandler.DeleteEmployee)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	itemHandler := NewItemHandler(deps.ItemUC)
	exportHandler := NewExportHandler(deps.ExportUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.Get)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)
	warehouses.Post("/:id/block", warehouseHandler.Block)
	warehouses.Post("/:id/unblock", warehouseHandler.Unblock)
	warehouses.Get("/:id/history", itemHandler.WarehouseHistory)
	warehouses.Get("/:id/export/items.csv", exportHandler.ItemsCSV)
	warehouses.Get("/:id/export/supplies.csv", exportHandler.SuppliesCSV)
	warehouses.Get("/:id/export/history.csv", exportHandler.HistoryCSV)
	warehouses.Get("/:id/export/stock.pdf", exportHandler.StockPDF)

	// Items (protegido)
	items := protected.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Post("/update", itemHandler.Update)
	items.Post("/income", itemHandler.Income)
	items.Post("/outcome", itemHandler.Outcome)
	items.Get("/:id/history", itemHandler.History)

	// Supplies (protegido)
	supplies := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	supplies.Post("/", supplyHandler.Create)
	supplies.Get("/", supplyHandler.List)
	supplies.Post("/status", supplyHandler.SetStatus)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
