package main

import (
	"context"
	"log"
	"time"

	"github.com/Aravind-813/GigSphere/chat"
	"github.com/Aravind-813/GigSphere/config"
	"github.com/Aravind-813/GigSphere/controllers"
	"github.com/Aravind-813/GigSphere/repository"
	"github.com/Aravind-813/GigSphere/routes"
	"github.com/Aravind-813/GigSphere/scheduler"
	"github.com/Aravind-813/GigSphere/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.ConnectDatabase()

	// Seed the first operator account
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create admin account: %v", err)
		log.Fatal("Failed to create admin account:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Wire the service layer
	controllers.InitServices(cfg)

	// Expire lapsed acceptance and payment windows in the background
	sweeper := scheduler.NewDeadlineSweeper(
		repository.NewOrderRepository(config.DB),
		controllers.OrderService(),
		chat.NewService(config.DB),
		5*time.Minute,
	)
	go sweeper.Run(context.Background())

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	utils.LogInfo("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
