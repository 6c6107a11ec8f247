package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-consumable-inventory/internal/handler"
	"go-consumable-inventory/internal/middleware"
	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/internal/service"
	"go-consumable-inventory/internal/ws"
	"go-consumable-inventory/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	log, _ := zap.NewProduction()
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB(log)
	// Auto Migrate (use a dedicated migration tool in production)
	db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Stock{}, &model.StockLog{}, &model.User{})

	// 3. Seed default categories and admin user
	seedDefaults(db, log)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	stockRepo := repository.NewStockRepo(db)
	logRepo := repository.NewStockLogRepo(db)
	userRepo := repository.NewUserRepo(db)

	catalogService := service.NewCatalogService(productRepo, categoryRepo, stockRepo)
	stockService := service.NewStockService(stockRepo, logRepo, db, wsHub, log)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(catalogService)
	stockHandler := handler.NewStockHandler(stockService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Consumable Inventory v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/options", productHandler.GetProductOptions)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)
	protected.Get("/categories", productHandler.GetCategories)

	// Stock ledger and history
	protected.Get("/stocks", stockHandler.GetStock)
	protected.Get("/stocks/logs", stockHandler.GetLogs)
	protected.Get("/stocks/:id", stockHandler.GetStockItem)
	protected.Post("/stocks/restock", stockHandler.RecordRestock)
	protected.Post("/stocks/usage", stockHandler.RecordUsage)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
}

// seedDefaults creates a starter category set and the admin user when the
// database is empty.
func seedDefaults(db *gorm.DB, log *zap.Logger) {
	var categoryCount int64
	db.Model(&model.Category{}).Count(&categoryCount)
	if categoryCount == 0 {
		defaults := []model.Category{
			{Name: "Cleaning Supplies"},
			{Name: "Office Supplies"},
			{Name: "Pantry"},
		}
		if err := db.Create(&defaults).Error; err != nil {
			log.Warn("failed to seed categories", zap.Error(err))
		} else {
			log.Info("default categories created")
		}
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		admin := &model.User{
			Email:    "admin@example.com",
			FullName: "Administrator",
			IsActive: true,
		}
		if err := admin.SetPassword("admin123"); err != nil {
			log.Warn("failed to hash admin password", zap.Error(err))
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Warn("failed to create admin user", zap.Error(err))
		} else {
			log.Info("admin user created", zap.String("email", admin.Email))
		}
	}
}
