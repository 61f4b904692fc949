package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/openshelf/bookstore-api/internal/router"
	"github.com/openshelf/bookstore-api/pkg/ai"
	"github.com/openshelf/bookstore-api/pkg/auth"
	"github.com/openshelf/bookstore-api/pkg/commerce"
	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/logger"
	"github.com/openshelf/bookstore-api/pkg/mongo"
	"github.com/openshelf/bookstore-api/pkg/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	mongo.InitMongoDB()
	mongo.EnsureIndexesOnStartup()

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongo.SeedIfEmpty(seedCtx); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	cancel()

	ai.InitializeAIService()

	provider := auth.NewTokenProvider(global.GetJWTSecret(),
		time.Duration(global.GetEnvIntOrDefault("JWT_EXPIRATION_SECONDS", 900))*time.Second)
	refreshTTL := time.Duration(global.GetEnvIntOrDefault("REFRESH_TOKEN_TTL_HOURS", 168)) * time.Hour

	books := mongo.NewBookRepo()
	tx := mongo.NewTxRunner()
	api := &router.API{
		Auth:       auth.NewService(mongo.NewUserRepo(), mongo.NewTokenRepo(), provider, refreshTTL, tx),
		Cart:       commerce.NewCartService(books, mongo.NewCartRepo(), tx),
		Checkout:   commerce.NewCheckoutService(books, mongo.NewCartRepo(), mongo.NewOrderRepo(), tx),
		Books:      books,
		Categories: mongo.NewCategoryRepo(),
		Limiter:    redis.NewRateLimiterFromEnv(),
	}

	router.InitEngine(api)
	router.InitializeRoutes(api)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := router.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
