package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"ojolmate-backend/internal/alerts"
	"ojolmate-backend/internal/api/routes"
	"ojolmate-backend/internal/config"
	"ojolmate-backend/internal/notify"
	"ojolmate-backend/internal/repository"
	"ojolmate-backend/internal/scheduler"
	"ojolmate-backend/pkg/alertcache"
	"ojolmate-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect(db.Client())

	// Redis-backed alert snapshot, alert state survives restarts
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := alertcache.New(redisClient, "", 0)
	store := alerts.NewStore(cache)
	if err := store.Load(ctx); err != nil {
		log.Printf("Failed to restore alert snapshot: %v", err)
	}

	// Alert derivation reads from the same repositories the API serves
	fuelRepo := repository.NewFuelLogRepository(db)
	serviceRepo := repository.NewServiceLogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	engine := alerts.NewEngine(repository.NewAlertSource(fuelRepo, serviceRepo, settingsRepo))

	// Notification plumbing and background checks
	platform := notify.NewLocalPlatform()
	defer platform.Close()

	dispatcher := notify.NewDispatcher(platform)
	go dispatcher.Run(ctx)

	sched := scheduler.New(engine, store, dispatcher, platform, scheduler.Config{
		FuelCheckInterval:   cfg.FuelCheckInterval,
		ServiceCheckHour:    cfg.ServiceCheckHour,
		ServiceCheckMinute:  cfg.ServiceCheckMinute,
		FuelTaskInterval:    cfg.FuelTaskInterval,
		ServiceTaskInterval: cfg.ServiceTaskInterval,
	})
	if err := sched.Start(ctx); err != nil {
		log.Fatal("Failed to start alert scheduler:", err)
	}

	// Setup Gin router
	router := gin.Default()

	// CORS middleware
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Upgrade", "Connection", "Sec-WebSocket-Key", "Sec-WebSocket-Version", "Sec-WebSocket-Protocol"},
		ExposeHeaders: []string{"Content-Length"},
	}

	// Handle wildcard origin for development
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(router, db, engine, store, dispatcher, sched)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(router.Run(":" + cfg.Port))
}
