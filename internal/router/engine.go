package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openshelf/bookstore-api/pkg/auth"
	"github.com/openshelf/bookstore-api/pkg/commerce"
	"github.com/openshelf/bookstore-api/pkg/global"
	"github.com/openshelf/bookstore-api/pkg/mongo"
	"github.com/openshelf/bookstore-api/pkg/redis"
)

var Router *gin.Engine

// API holds the services the handlers dispatch to.
type API struct {
	Auth       *auth.Service
	Cart       *commerce.CartService
	Checkout   *commerce.CheckoutService
	Books      *mongo.BookRepo
	Categories *mongo.CategoryRepo
	Limiter    *redis.RateLimiter
}

func InitEngine(api *API) {
	if os.Getenv("ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	Router = gin.New()
	Router.Use(gin.Recovery())

	origins := strings.Split(global.GetEnvOrDefault("CORS_ALLOWED_ORIGINS",
		"http://localhost:3000,http://localhost:5173"), ",")
	Router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	Router.Use(RequestID())
	Router.Use(RequestLogger())
	Router.Use(Metrics())
	Router.Use(RateLimit(api.Limiter))
}

func InitializeRoutes(api *API) {
	Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := Router.Group("/api")
	{
		root.GET("/health", api.HealthCheck)

		authRoutes := root.Group("/auth")
		{
			authRoutes.POST("/register", api.Register)
			authRoutes.POST("/login", api.Login)
			authRoutes.POST("/refresh", api.Refresh)
		}

		books := root.Group("/books")
		{
			books.GET("", api.ListBooks)
			books.GET("/search", api.SearchBooks)
			books.GET("/category/:categoryId", api.ListBooksByCategory)
			books.GET("/:id", api.GetBook)

			books.POST("", Auth(api.Auth), AdminOnly(), api.CreateBook)
			books.PUT("/:id", Auth(api.Auth), AdminOnly(), api.UpdateBook)
			books.DELETE("/:id", Auth(api.Auth), AdminOnly(), api.DeleteBook)
		}

		categories := root.Group("/categories")
		{
			categories.GET("", api.ListCategories)
			categories.GET("/:id", api.GetCategory)

			categories.POST("", Auth(api.Auth), AdminOnly(), api.CreateCategory)
			categories.PUT("/:id", Auth(api.Auth), AdminOnly(), api.UpdateCategory)
			categories.DELETE("/:id", Auth(api.Auth), AdminOnly(), api.DeleteCategory)
		}

		cart := root.Group("/cart", Auth(api.Auth))
		{
			cart.GET("", api.GetCart)
			cart.POST("/add", api.AddToCart)
			cart.PUT("/update/:id", api.UpdateCartItem)
			cart.DELETE("/remove/:id", api.RemoveCartItem)
			cart.DELETE("/clear", api.ClearCart)
		}

		orders := root.Group("/orders", Auth(api.Auth))
		{
			orders.POST("/checkout", api.PlaceOrder)
			orders.GET("", api.ListOrders)
			orders.GET("/:id", api.GetOrder)
		}

		admin := root.Group("/admin", Auth(api.Auth), AdminOnly())
		{
			admin.GET("/reports/sales", api.SalesReport)
			admin.GET("/reports/inventory", api.InventoryReport)
		}
	}
}
