package main

import (
	"log"
	"net/http"

	"asset-tracker/internal/api"
	"asset-tracker/internal/config"
	"asset-tracker/internal/database"
	"asset-tracker/internal/services/quotes"
	"asset-tracker/internal/services/series"
	"asset-tracker/internal/services/snapshot"
	"asset-tracker/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize services
	store := database.NewMarketStore(db)
	goldClient := quotes.NewGoldClient(cfg.GoldAPIURL, cfg.GoldAPIKey)
	fxClient := quotes.NewFXClient(cfg.FXAPIURL, cfg.FXAPIKey)
	writer := snapshot.NewWriter(goldClient, fxClient, store)
	reader := series.NewReader(store)

	hub := ws.NewHub()
	hub.Start()

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// WebSocket endpoint for live snapshot pushes
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})

	// API routes
	apiGroup := r.Group("/api/v1")
	api.SetupRoutes(apiGroup, db, writer, reader, store, hub)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
