package config

import (
	"log"
	"os"
	"strconv"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret []byte

// BaseURL is the public address menu links and QR codes point at.
var BaseURL string

// RedisAddr, when set, moves OTP codes out of process memory.
var RedisAddr string

// Telegram owner-notification settings (optional).
var TelegramToken string
var TelegramChatID int64

// Load reads .env if present and captures process configuration.
func Load() {
	_ = godotenv.Load()

	JWTSecret = []byte(getEnv("JWT_SECRET", "menuhub_super_secret_2024"))
	BaseURL = getEnv("BASE_URL", "http://localhost:8080")
	RedisAddr = os.Getenv("REDIS_ADDR")
	TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	TelegramChatID = getEnvInt64("TELEGRAM_CHAT_ID", 0)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(getEnv("DB_PATH", "menuhub.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.QRCode{},
		&models.Plan{},
		&models.Subscription{},
		&models.Invoice{},
		&models.SupportTicket{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedPlans()

	log.Println("✅ Database connected and migrated successfully")
}

// seedPlans makes sure the two subscription tiers exist.
func seedPlans() {
	plans := []models.Plan{
		{
			Name:     "Starter",
			Slug:     models.PlanStarter,
			Price:    0,
			Features: []string{"Digital menu", "Menu QR code"},
		},
		{
			Name:     "Premium",
			Slug:     models.PlanPremium,
			Price:    299,
			Features: []string{"Digital menu", "Menu QR code", "WhatsApp ordering", "Item images", "Google review QR code"},
		},
	}
	for _, p := range plans {
		var existing models.Plan
		if err := DB.Where("slug = ?", p.Slug).First(&existing).Error; err != nil {
			DB.Create(&p)
		}
	}
}
