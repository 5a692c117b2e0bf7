package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-retail-pos/internal/handler"
	"go-retail-pos/internal/middleware"
	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/internal/service"
	"go-retail-pos/internal/ws"
	"go-retail-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Inventory{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Notification{},
	)

	// 3. Seed default owner account
	seedOwner(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	userRepo := repository.NewUserRepo(db)

	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	productService := service.NewProductService(productRepo, inventoryRepo, db)
	inventoryService := service.NewInventoryService(inventoryRepo, notificationService, db, wsHub)
	saleService := service.NewSaleService(saleRepo, inventoryRepo, notificationService, db, wsHub)
	reportService := service.NewReportService(saleRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)

	productHandler := handler.NewProductHandler(productService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	saleHandler := handler.NewSaleHandler(saleService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Retail POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Only owners can create accounts
	protected.Post("/auth/signup", middleware.RequireRole(model.RoleOwner), authHandler.Signup)

	// Product Routes (mutations restricted to Owner/Manager)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequireRole(model.RoleOwner, model.RoleManager), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole(model.RoleOwner, model.RoleManager), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequireRole(model.RoleOwner, model.RoleManager), productHandler.DeleteProduct)

	// Inventory Routes
	protected.Get("/inventory", inventoryHandler.GetInventory)
	protected.Get("/inventory/low-stock", inventoryHandler.GetLowStock)
	protected.Get("/inventory/:productId", inventoryHandler.GetByProduct)
	protected.Post("/inventory/adjust", middleware.RequireRole(model.RoleOwner, model.RoleManager), inventoryHandler.AdjustStock)
	protected.Put("/inventory/threshold", middleware.RequireRole(model.RoleOwner, model.RoleManager), inventoryHandler.UpdateThreshold)
	protected.Put("/inventory/opening-stock", middleware.RequireRole(model.RoleOwner, model.RoleManager), inventoryHandler.AdjustOpeningStock)

	// Sale Routes (any authenticated role can record sales)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)
	protected.Post("/sales", saleHandler.CreateSale)

	// Notification Routes
	protected.Get("/notifications", notificationHandler.GetNotifications)
	protected.Get("/notifications/unread-count", notificationHandler.GetUnreadCount)
	protected.Put("/notifications/:id/read", notificationHandler.MarkAsRead)

	// Report Routes (Owner/Manager only)
	reports := protected.Group("/reports", middleware.RequireRole(model.RoleOwner, model.RoleManager))
	reports.Get("/daily", reportHandler.GetDailyReport)
	reports.Get("/weekly", reportHandler.GetWeeklyReport)
	reports.Get("/monthly", reportHandler.GetMonthlyReport)
	reports.Get("/custom-range", reportHandler.GetCustomRangeReport)

	// User Management Routes (Owner only)
	users := protected.Group("/users", middleware.RequireRole(model.RoleOwner))
	users.Get("/", userHandler.GetUsers)
	users.Get("/:id", userHandler.GetUser)
	users.Put("/:id", userHandler.UpdateUser)
	users.Delete("/:id", userHandler.DeleteUser)

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
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedOwner creates a default Owner account if no user exists yet
func seedOwner(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		log.Printf("Warning: failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	owner, err := model.NewUser(model.SignupRequest{
		Email:    "owner@example.com",
		Password: "owner1234",
		FullName: "Store Owner",
		Role:     model.RoleOwner,
	})
	if err != nil {
		log.Printf("Warning: failed to build default owner: %v", err)
		return
	}

	if err := repository.NewUserRepo(db).Create(owner); err != nil {
		log.Printf("Warning: failed to create default owner: %v", err)
		return
	}
	log.Println("Default owner created: owner@example.com / owner1234")
}
