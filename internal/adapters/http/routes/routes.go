package routes

import (
	"time"

	"crossroads-renthub/internal/adapters/http/handlers"
	"crossroads-renthub/internal/adapters/http/middleware"
	"crossroads-renthub/internal/adapters/persistence/repositories"
	"crossroads-renthub/internal/config"
	"crossroads-renthub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	passwordResetRepo := repositories.NewPasswordResetRepository(db)
	tenantRepo := repositories.NewTenantRepository(db)
	houseRepo := repositories.NewHouseRepository(db)
	landlordRepo := repositories.NewLandlordRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	chargeRepo := repositories.NewChargeRepository(db)
	maintenanceRepo := repositories.NewMaintenanceRepository(db)
	deviceRepo := repositories.NewDeviceRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)

	// Initialize services
	policy := services.NewPolicy()
	notifier := services.NewNotificationService(cfg)
	occupancyService := services.NewOccupancyService(houseRepo, tenantRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, passwordResetRepo, notifier, cfg)
	userService := services.NewUserService(userRepo)
	tenantService := services.NewTenantService(tenantRepo, houseRepo, occupancyService)
	houseService := services.NewHouseService(houseRepo, tenantRepo, landlordRepo, occupancyService)
	landlordService := services.NewLandlordService(landlordRepo, houseRepo)
	paymentService := services.NewPaymentService(paymentRepo, tenantRepo, occupancyService, notifier)
	chargeService := services.NewChargeService(chargeRepo, tenantRepo)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, deviceRepo, tenantRepo, notifier)
	dashboardService := services.NewDashboardService(tenantRepo, houseRepo, paymentRepo)
	documentService := services.NewDocumentService(documentRepo, tenantRepo, houseRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, policy, cfg)
	userHandler := handlers.NewUserHandler(userService)
	tenantHandler := handlers.NewTenantHandler(tenantService, policy)
	houseHandler := handlers.NewHouseHandler(houseService)
	landlordHandler := handlers.NewLandlordHandler(landlordService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, tenantService, policy)
	chargeHandler := handlers.NewChargeHandler(chargeService, tenantService, policy)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService, tenantService, policy)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, tenantService)
	documentHandler := handlers.NewDocumentHandler(documentService, tenantService, policy)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler, tenantHandler,
		houseHandler, landlordHandler, paymentHandler, chargeHandler,
		maintenanceHandler, dashboardHandler, documentHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tenantHandler *handlers.TenantHandler,
	houseHandler *handlers.HouseHandler,
	landlordHandler *handlers.LandlordHandler,
	paymentHandler *handlers.PaymentHandler,
	chargeHandler *handlers.ChargeHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	dashboardHandler *handlers.DashboardHandler,
	documentHandler *handlers.DocumentHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public + authenticated), never cached
	authRoutes := router.Group("/auth")
	authRoutes.Use(middleware.NoCache())
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// User management routes (Manager only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.Auth(cfg))
	userRoutes.Use(middleware.ManagerOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Tenant routes
	tenantRoutes := router.Group("/tenants")
	tenantRoutes.Use(middleware.Auth(cfg))
	setupTenantRoutes(tenantRoutes, tenantHandler, paymentHandler, chargeHandler, maintenanceHandler, documentHandler)

	// House routes
	houseRoutes := router.Group("/houses")
	houseRoutes.Use(middleware.Auth(cfg))
	setupHouseRoutes(houseRoutes, houseHandler)

	// Landlord routes (Manager only)
	landlordRoutes := router.Group("/landlords")
	landlordRoutes.Use(middleware.Auth(cfg))
	landlordRoutes.Use(middleware.ManagerOnly())
	setupLandlordRoutes(landlordRoutes, landlordHandler)

	// Payment routes
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Use(middleware.Auth(cfg))
	setupPaymentRoutes(paymentRoutes, paymentHandler)

	// Charge routes
	chargeRoutes := router.Group("/charges")
	chargeRoutes.Use(middleware.Auth(cfg))
	chargeRoutes.Use(middleware.ManagerOnly())
	setupChargeRoutes(chargeRoutes, chargeHandler)

	// Maintenance routes
	maintenanceRoutes := router.Group("/maintenance")
	maintenanceRoutes.Use(middleware.Auth(cfg))
	setupMaintenanceRoutes(maintenanceRoutes, maintenanceHandler)

	// Document routes (Manager only)
	documentRoutes := router.Group("/documents")
	documentRoutes.Use(middleware.Auth(cfg))
	documentRoutes.Use(middleware.ManagerOnly())
	setupDocumentRoutes(documentRoutes, documentHandler)

	// Device registration (any authenticated user)
	router.Post("/devices", middleware.Auth(cfg), maintenanceHandler.RegisterDevice)

	// Dashboard routes
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.Auth(cfg))
	setupDashboardRoutes(dashboardRoutes, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate limited
	router.Post("/register", middleware.AuthRateLimiter(), middleware.OptionalAuth(cfg), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)
	router.Post("/forgot-password", middleware.StrictRateLimiter(), handler.ForgotPassword)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	// Protected routes
	router.Get("/me", middleware.Auth(cfg), handler.Me)
	router.Post("/logout-all", middleware.Auth(cfg), handler.LogoutAll)
	router.Post("/change-password", middleware.Auth(cfg), handler.ChangePassword)
}

// setupUserRoutes configures user administration routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id/active", handler.SetActive)
}

// setupTenantRoutes configures tenant routes and nested sub-resources
func setupTenantRoutes(
	router fiber.Router,
	tenantHandler *handlers.TenantHandler,
	paymentHandler *handlers.PaymentHandler,
	chargeHandler *handlers.ChargeHandler,
	maintenanceHandler *handlers.MaintenanceHandler,
	documentHandler *handlers.DocumentHandler,
) {
	// Own record lookup must precede the :id routes
	router.Get("/me", tenantHandler.Me)
	router.Get("/my-house", tenantHandler.MyHouse)

	router.Post("/", middleware.ManagerOnly(), tenantHandler.Create)
	router.Get("/", middleware.ManagerOnly(), tenantHandler.List)
	router.Get("/:id", tenantHandler.Get)
	router.Put("/:id", middleware.ManagerOnly(), tenantHandler.Update)
	router.Delete("/:id", middleware.ManagerOnly(), tenantHandler.Deactivate)
	router.Delete("/:id/hard", middleware.ManagerOnly(), tenantHandler.Delete)
	router.Patch("/:id/activate", middleware.ManagerOnly(), tenantHandler.Activate)
	router.Patch("/:id/assign-house", middleware.ManagerOnly(), tenantHandler.AssignHouse)
	router.Patch("/:id/unassign-house", middleware.ManagerOnly(), tenantHandler.UnassignHouse)
	router.Get("/:id/house", tenantHandler.GetHouse)
	router.Get("/:id/payments", paymentHandler.ListByTenant)
	router.Get("/:id/charges", chargeHandler.ListByTenant)
	router.Get("/:id/maintenance", maintenanceHandler.ListByTenant)
	router.Get("/:id/documents", documentHandler.ListByTenant)
}

// setupHouseRoutes configures house routes
func setupHouseRoutes(router fiber.Router, handler *handlers.HouseHandler) {
	router.Get("/", middleware.CacheControl(30*time.Second), handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", middleware.ManagerOnly(), handler.Create)
	router.Put("/:id", middleware.ManagerOnly(), handler.Update)
	router.Delete("/:id", middleware.ManagerOnly(), handler.Delete)
	router.Post("/:id/resync", middleware.ManagerOnly(), handler.Resync)
}

// setupLandlordRoutes configures landlord routes
func setupLandlordRoutes(router fiber.Router, handler *handlers.LandlordHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupPaymentRoutes configures payment routes
func setupPaymentRoutes(router fiber.Router, handler *handlers.PaymentHandler) {
	router.Post("/", middleware.ManagerOnly(), handler.Record)
	router.Get("/", middleware.ManagerOnly(), handler.List)
	router.Get("/:id", middleware.ManagerOnly(), handler.Get)
}

// setupChargeRoutes configures charge routes
func setupChargeRoutes(router fiber.Router, handler *handlers.ChargeHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/overdue", handler.ListOverdue)
	router.Post("/:id/pay", handler.MarkPaid)
}

// setupMaintenanceRoutes configures maintenance routes
func setupMaintenanceRoutes(router fiber.Router, handler *handlers.MaintenanceHandler) {
	router.Post("/", handler.Create)
	router.Get("/", middleware.ManagerOnly(), handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", middleware.ManagerOnly(), handler.Update)
}

// setupDocumentRoutes configures document routes
func setupDocumentRoutes(router fiber.Router, handler *handlers.DocumentHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/:id/verify", handler.Verify)
	router.Delete("/:id", handler.Delete)
}

// setupDashboardRoutes configures dashboard routes
func setupDashboardRoutes(router fiber.Router, handler *handlers.DashboardHandler) {
	router.Get("/manager", middleware.ManagerOnly(), handler.GetManagerDashboard)
	router.Get("/tenant", handler.GetTenantDashboard)
}
