package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"crossroads-renthub/internal/adapters/http/middleware"
	"crossroads-renthub/internal/adapters/http/routes"
	"crossroads-renthub/internal/adapters/persistence/models"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/config"
	"crossroads-renthub/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// @title RentHub API
// @version 1.0
// @description Property rental management API: tenants, houses, rent ledger and maintenance
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@renthub.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.renthub.local
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed the default manager account and sample data
	if err := config.SeedData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Start the daily reminder job (lease expiries, overdue charges)
	notifier := services.NewNotificationService(cfg)
	reminderService := services.NewReminderService(
		repositories.NewTenantRepository(db),
		repositories.NewChargeRepository(db),
		notifier,
		cfg.Reminder,
	)
	if err := reminderService.Start(); err != nil {
		log.Fatalf("❌ Failed to start reminder job: %v", err)
	}
	defer reminderService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "RentHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
