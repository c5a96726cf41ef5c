package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/batibatii/textilecom-sub000/auth"
	"github.com/batibatii/textilecom-sub000/cache"
	orderControllers "github.com/batibatii/textilecom-sub000/controllers/order"
	"github.com/batibatii/textilecom-sub000/middleware"
	"github.com/batibatii/textilecom-sub000/models"
	"github.com/batibatii/textilecom-sub000/payment"
	"github.com/batibatii/textilecom-sub000/routes"
	"github.com/batibatii/textilecom-sub000/store"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	ctx := context.Background()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
		&models.CheckoutSession{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Identity provider
	authService, err := auth.NewService(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to init auth service: %v", err)
	}

	// Payment gateway
	gateway, err := payment.NewGatewayFromEnv()
	if err != nil {
		log.Fatalf("❌ Failed to init payment gateway: %v", err)
	}

	// Product listing cache; optional, the store works without it
	var productCache cache.ProductCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("⚠️ Redis unreachable, product cache disabled: %v", err)
		} else {
			productCache = cache.NewRedisCache(client)
		}
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("STOREFRONT_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Page-level gate for /admin, /cart and /checkout path prefixes
	r.Use(middleware.RouteGate(authService, db))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		Auth:     authService,
		Carts:    store.NewCartStore(db),
		Products: productCache,
		Gateway:  gateway,
		Orders:   orderControllers.NewHub(),
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}
