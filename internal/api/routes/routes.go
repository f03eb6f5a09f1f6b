package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"ojolmate-backend/internal/alerts"
	"ojolmate-backend/internal/api/handlers"
	"ojolmate-backend/internal/api/middleware"
	"ojolmate-backend/internal/notify"
	"ojolmate-backend/internal/repository"
	"ojolmate-backend/internal/services"
)

func SetupRoutes(router *gin.Engine, db *mongo.Database, engine *alerts.Engine, store *alerts.Store, dispatcher *notify.Dispatcher, kicker services.FuelCheckKicker) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	fuelRepo := repository.NewFuelLogRepository(db)
	serviceRepo := repository.NewServiceLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	healthRepo := repository.NewHealthScoreRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	healthService := services.NewHealthScoreService(healthRepo, fuelRepo, serviceRepo)
	fuelService := services.NewFuelLogService(fuelRepo, settingsRepo, healthService)
	fuelService.SetFuelCheckKicker(kicker)
	serviceLogService := services.NewServiceLogService(serviceRepo, healthService)
	settingsService := services.NewSettingsService(settingsRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	fuelHandler := handlers.NewFuelLogHandler(fuelService)
	serviceHandler := handlers.NewServiceLogHandler(serviceLogService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	alertHandler := handlers.NewAlertHandler(engine, store)
	streamHandler := handlers.NewStreamHandler(dispatcher)
	healthHandler := handlers.NewHealthHandler(db, healthService)

	// API routes
	api := router.Group("/api/v1")

	// Public routes
	api.GET("/health", healthHandler.Liveness)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		// Fuel logs
		fuelLogs := protected.Group("/fuel-logs")
		{
			fuelLogs.GET("", fuelHandler.GetFuelLogs)
			fuelLogs.POST("", fuelHandler.AddFuelLog)
			fuelLogs.GET("/stats", fuelHandler.GetFuelStats)
		}

		// Service logs
		serviceLogs := protected.Group("/service-logs")
		{
			serviceLogs.GET("", serviceHandler.GetServiceLogs)
			serviceLogs.POST("", serviceHandler.AddServiceLog)
			serviceLogs.PATCH("/:id/confirm", serviceHandler.ConfirmServiceLog)
		}

		// Settings
		settings := protected.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.UpdateSettings)
		}

		// Alerts
		alertRoutes := protected.Group("/alerts")
		{
			alertRoutes.GET("", alertHandler.GetAlerts)
			alertRoutes.PATCH("/:id/read", alertHandler.MarkAlertRead)
			alertRoutes.DELETE("", alertHandler.ResetAlerts)
			alertRoutes.POST("/recompute", alertHandler.RecomputeAlerts)
			alertRoutes.GET("/stream", streamHandler.StreamAlerts)
		}

		// Health score
		healthScore := protected.Group("/health-score")
		{
			healthScore.GET("", healthHandler.GetHealthScore)
			healthScore.GET("/history", healthHandler.GetHealthScoreHistory)
		}
	}
}
