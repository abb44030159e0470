package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fabrisys-backend/internal/handler"
	"fabrisys-backend/internal/livequery"
	"fabrisys-backend/internal/model"
	"fabrisys-backend/internal/repository"
	"fabrisys-backend/internal/service"
	"fabrisys-backend/internal/store"
	"fabrisys-backend/internal/ws"
	"fabrisys-backend/pkg/database"

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
	// Additive migrations only: new versions add tables and columns,
	// existing rows are preserved.
	if err := db.AutoMigrate(
		&model.Warehouse{},
		&model.Item{},
		&model.Variant{},
		&model.Supplier{},
		&model.Invoice{},
		&model.User{},
	); err != nil {
		log.Fatal("Migration failed: ", err)
	}

	// 3. Live Query Engine + Store
	engine := livequery.NewEngine(db)
	st, err := store.Open(db, engine)
	if err != nil {
		log.Fatal("Failed to open store: ", err)
	}

	// 4. Seed default admin user
	seedAdmin(db)

	// 5. Dependency Injection (Wiring Layers)
	warehouseRepo := repository.NewWarehouseRepo(db)
	itemRepo := repository.NewItemRepo(db)
	variantRepo := repository.NewVariantRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	userRepo := repository.NewUserRepo(db)

	warehouseService := service.NewWarehouseService(warehouseRepo, st)
	invService := service.NewInventoryService(itemRepo, variantRepo, warehouseRepo, st)
	supplierService := service.NewSupplierService(supplierRepo, st)
	invoiceService := service.NewInvoiceService(invoiceRepo, supplierRepo, st)
	userService := service.NewUserService(userRepo, st)

	warehouseHandler := handler.NewWarehouseHandler(warehouseService)
	invHandler := handler.NewInventoryHandler(invService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	userHandler := handler.NewUserHandler(userService)

	wsHub := ws.NewHub(engine)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "FabriSys v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// Warehouse Routes
	api.Get("/warehouses", warehouseHandler.GetWarehouses)
	api.Get("/warehouses/:id", warehouseHandler.GetWarehouse)
	api.Post("/warehouses", warehouseHandler.CreateWarehouse)
	api.Put("/warehouses/:id", warehouseHandler.UpdateWarehouse)
	api.Patch("/warehouses/:id/active", warehouseHandler.SetWarehouseActive)

	// Item Routes
	api.Get("/items", invHandler.GetItems)
	api.Get("/items/low-stock", invHandler.GetLowStock)
	api.Get("/items/:id", invHandler.GetItem)
	api.Post("/items", invHandler.CreateItem)
	api.Put("/items/:id", invHandler.UpdateItem)
	api.Delete("/items/:id", invHandler.DeleteItem)

	// Variant Routes (stock batches under an item)
	api.Get("/items/:id/variants", invHandler.GetVariants)
	api.Post("/items/:id/variants", invHandler.AddVariant)
	api.Put("/variants/:id", invHandler.UpdateVariant)
	api.Delete("/variants/:id", invHandler.DeleteVariant)

	// Supplier Routes
	api.Get("/suppliers", supplierHandler.GetSuppliers)
	api.Get("/suppliers/:id", supplierHandler.GetSupplier)
	api.Post("/suppliers", supplierHandler.CreateSupplier)
	api.Put("/suppliers/:id", supplierHandler.UpdateSupplier)
	api.Patch("/suppliers/:id/status", supplierHandler.SetSupplierStatus)
	api.Delete("/suppliers/:id", supplierHandler.DeleteSupplier)

	// Invoice Routes
	api.Get("/invoices", invoiceHandler.GetInvoices)
	api.Get("/invoices/:id", invoiceHandler.GetInvoice)
	api.Post("/invoices", invoiceHandler.CreateInvoice)
	api.Post("/invoices/:id/payments", invoiceHandler.AddPayment)
	api.Patch("/invoices/:id/cancel", invoiceHandler.CancelInvoice)
	api.Delete("/invoices/:id", invoiceHandler.DeleteInvoice)

	// User Management Routes
	api.Get("/users", userHandler.GetUsers)
	api.Get("/users/:id", userHandler.GetUser)
	api.Post("/users", userHandler.CreateUser)
	api.Put("/users/:id", userHandler.UpdateUser)
	api.Patch("/users/:id/status", userHandler.SetUserStatus)
	api.Delete("/users/:id", userHandler.DeleteUser)

	// WebSocket Route (live query push)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.HandleConn(c)
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

// seedAdmin creates the default admin user if no user exists yet
func seedAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		log.Printf("Warning: Failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin := &model.User{
		Username:    "admin",
		DisplayName: "Administrator",
		Role:        model.RoleAdmin,
		Status:      model.UserActive,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin / admin123")
	}
}
