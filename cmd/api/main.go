package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ps-dashboard-api/config"
	"ps-dashboard-api/controllers"
	"ps-dashboard-api/middleware"
	"ps-dashboard-api/routes"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize logging, database and object storage
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}
	config.InitDB()
	config.InitStorage()

	// Wire controllers to their services
	controllers.Init()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Register /logs route early (before 404 catch-all in SetupRoutes)
	router.GET("/logs", func(c *gin.Context) {
		accessToken := os.Getenv("LOG_ACCESS_TOKEN")
		if accessToken == "" || c.Query("token") != accessToken {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}

		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}

		c.Data(200, "text/plain; charset=utf-8", logData)
	})

	// Setup routes
	routes.SetupRoutes(router)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if ginMode == "release" {
		log.Printf("Running in production mode")
	} else {
		log.Printf("Running in development mode")
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
