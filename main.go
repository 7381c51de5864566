package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/checkout"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/config"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/handlers"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/notify"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/otp"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/payment"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/routes"
	"github.com/Henry-Paul/Paperless-Restaurant-Menu/session"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load configuration and initialize database
	config.Load()
	config.InitDB()

	// OTP codes live in Redis when configured, otherwise in memory
	var codeStore otp.CodeStore = otp.NewMemoryStore()
	if config.RedisAddr != "" {
		codeStore = otp.NewRedisStore(config.RedisAddr)
		log.Println("✅ OTP store backed by Redis at " + config.RedisAddr)
	}
	codes := otp.NewStoreChannel(codeStore, 5*time.Minute)

	// Owner notifications go to Telegram when configured, otherwise the log
	var notifier checkout.Notifier = notify.LogNotifier{}
	if config.TelegramToken != "" {
		tg, err := notify.NewTelegramNotifier(config.TelegramToken, config.TelegramChatID)
		if err != nil {
			log.Fatal("Failed to connect Telegram notifier:", err)
		}
		notifier = tg
		log.Println("✅ Order notifications routed to Telegram")
	}

	handlers.Configure(
		session.NewRegistry(session.DefaultTTL),
		codes,
		notifier,
		payment.NewStubProvider(config.BaseURL),
	)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Session-Token")
		c.Header("Access-Control-Expose-Headers", "X-Session-Token")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "MenuHub API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍽️ Welcome to the MenuHub API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"owner", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
