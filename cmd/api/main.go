package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-dashboard/internal/handler"
	"go-pos-dashboard/internal/middleware"
	"go-pos-dashboard/internal/model"
	"go-pos-dashboard/internal/repository"
	"go-pos-dashboard/internal/service"
	"go-pos-dashboard/internal/ws"
	"go-pos-dashboard/pkg/database"

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
		&model.Category{}, &model.Product{}, &model.Customer{},
		&model.Order{}, &model.OrderItem{}, &model.Setting{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	)

	// 3. Seed privileges, roles, settings and default accounts
	seedDefaults(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	analyticsRepo := repository.NewAnalyticsRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	catalogService := service.NewCatalogService(productRepo, categoryRepo, customerRepo, db, wsHub)
	orderService := service.NewOrderService(orderRepo, productRepo, customerRepo, userRepo, settingRepo, db, wsHub)
	analyticsService := service.NewAnalyticsService(analyticsRepo)
	authService := service.NewAuthService(userRepo, roleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	authHandler := handler.NewAuthHandler(authService)
	settingsHandler := handler.NewSettingsHandler(settingRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "SmartPOS Dashboard v1.0",
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

	protected.Post("/auth/change-password", authHandler.ChangePassword)
	protected.Post("/users/operators", middleware.RequirePrivilege("user:create"), authHandler.CreateOperator)

	// Catalog
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/search", catalogHandler.SearchProducts)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), catalogHandler.UpdateProduct)
	protected.Post("/products/:id/restock", middleware.RequirePrivilege("product:restock"), catalogHandler.Restock)

	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Post("/categories", middleware.RequirePrivilege("category:manage"), catalogHandler.AddCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege("category:manage"), catalogHandler.RenameCategory)

	// Customers
	protected.Get("/customers", middleware.RequirePrivilege("customer:view"), catalogHandler.ListCustomers)
	protected.Get("/customers/:mobile", middleware.RequirePrivilege("customer:view"), catalogHandler.GetCustomer)
	protected.Post("/customers", middleware.RequirePrivilege("customer:create"), catalogHandler.RegisterCustomer)

	// Orders
	protected.Get("/orders", middleware.RequirePrivilege("order:view"), orderHandler.ListOrders)
	protected.Get("/orders/:id", middleware.RequirePrivilege("order:view"), orderHandler.GetOrder)
	protected.Get("/orders/:id/invoice", middleware.RequirePrivilege("order:view"), orderHandler.GetInvoice)
	protected.Post("/orders", middleware.RequirePrivilege("order:create"), orderHandler.CommitOrder)
	protected.Post("/orders/:id/cancel", middleware.RequirePrivilege("order:cancel"), orderHandler.CancelOrder)

	// Analytics
	analytics := protected.Group("/analytics", middleware.RequirePrivilege("analytics:view"))
	analytics.Get("/summary", analyticsHandler.GetFinancialSummary)
	analytics.Get("/sales-series", analyticsHandler.GetSalesSeries)
	analytics.Get("/forecast", analyticsHandler.GetForecast)
	analytics.Get("/hourly", analyticsHandler.GetHourlyTrend)
	analytics.Get("/daily", analyticsHandler.GetDailyTrend)
	analytics.Get("/top-products", analyticsHandler.GetTopProducts)
	analytics.Get("/categories", analyticsHandler.GetCategoryBreakdown)
	analytics.Get("/payments", analyticsHandler.GetPaymentBreakdown)

	// Settings
	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", middleware.RequirePrivilege("settings:update"), settingsHandler.UpdateSettings)

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

// seedDefaults creates privileges, the two roles, default settings and the
// demo admin/cashier accounts if they don't exist
func seedDefaults(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)
	settingRepo := repository.NewSettingRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Seed settings
	if err := settingRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed settings: %v", err)
	}

	// 4. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("ADMIN role assigned all privileges")
	}

	// CASHIER gets the billing-counter subset
	cashierRole, err := roleRepo.FindByCode(model.RoleCashier)
	if err == nil && len(cashierRole.Privileges) == 0 {
		cashierPrivileges, _ := privilegeRepo.FindByCodes(model.CashierPrivileges)
		db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
		log.Println("CASHIER role assigned billing privileges")
	}

	// 5. Create default accounts
	seedUser := func(username, fullName, password, roleCode string) {
		if _, err := userRepo.FindByUsername(username); err == nil {
			return
		}
		role, err := roleRepo.FindByCode(roleCode)
		if err != nil {
			log.Printf("Warning: role %s missing, cannot seed %s", roleCode, username)
			return
		}

		user := &model.User{
			Username:   username,
			FullName:   fullName,
			RoleID:     &role.ID,
			IsActive:   true,
			Privileges: role.Privileges,
		}
		user.CreatedBy = "system"
		user.UpdatedBy = "system"

		if err := user.SetPassword(password); err != nil {
			log.Printf("Warning: Failed to hash %s password: %v", username, err)
			return
		}
		if err := userRepo.Create(user); err != nil {
			log.Printf("Warning: Failed to create %s user: %v", username, err)
			return
		}
		log.Printf("Seeded user %s (%s)", username, roleCode)
	}

	seedUser("admin", "System Admin", "Admin@123", model.RoleAdmin)
	seedUser("pos1", "POS Operator 1", "Pos@123", model.RoleCashier)
}
