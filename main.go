package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"clinic-management-server/internal/config"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/routes"
	"clinic-management-server/internal/seed"
	"clinic-management-server/internal/utils"
)

func main() {
	// Load environment variables; a missing .env is fine in production where
	// the environment is set directly.
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Create a DatabaseConfig for models
	modelDbConfig := models.DatabaseConfig{
		DSN: cfg.Database.DSN,
	}

	// Initialize database connection
	db, err := models.InitDB(modelDbConfig)
	if err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}

	// Register the clinic-specific binding validators (phone, national ID,
	// blood pressure)
	utils.RegisterCustomValidators()

	// Seed the lab and imaging price list when asked
	if cfg.SeedCatalog {
		if err := seed.Catalog(db); err != nil {
			logrus.Fatalf("Error seeding test-type catalog: %v", err)
		}
	}

	// Initialize Gin router
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes - passing DB and config to let routes.go create the handlers
	routes.SetupRoutes(router, db, cfg)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logrus.Infof("Server running on port %s", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
