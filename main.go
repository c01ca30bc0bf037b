package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/peermart/marketplace-api/models"
	"github.com/peermart/marketplace-api/pkg/cloudinary"
	"github.com/peermart/marketplace-api/pkg/mailer"
	"github.com/peermart/marketplace-api/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting marketplace API...")

	// Load environment variables
	_ = godotenv.Load()

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.PaymentOption{},
		&models.Review{},
		&models.Order{},
		&models.Cart{},
		&models.CartItem{},
		&models.OTP{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// External image storage
	uploader, err := cloudinary.New()
	if err != nil {
		log.Fatalf("Failed to init Cloudinary: %v", err)
	}

	// OTP email delivery
	mail := mailer.NewFromEnv()

	// Gin setup
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20 // 32 MB

	// CORS restricted to the single configured frontend origin
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, db, uploader, mail)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection, retrying indefinitely on a
// fixed delay until the database is reachable.
func initDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	for {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			return db
		}
		log.Printf("DB connection failed: %v (retrying in 5s)", err)
		time.Sleep(5 * time.Second)
	}
}
