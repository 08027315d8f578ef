package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/frete99/frete99-backend/internal/handlers"
	"github.com/frete99/frete99-backend/internal/middleware"
	"github.com/frete99/frete99-backend/internal/models"
	"github.com/frete99/frete99-backend/internal/services"
	"github.com/frete99/frete99-backend/internal/store"
	"github.com/frete99/frete99-backend/pkg/utils"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using environment variables")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	tokens := utils.NewTokenManager(secret)

	st := store.New(log)

	storage, err := services.NewStorage()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if !storage.IsUsingS3() {
		log.Warn("AWS S3 not configured, storing photos on local disk")
	}

	hub := services.NewHub(log)
	go hub.Run()

	limiter := middleware.NewRateLimiter()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Local-disk photo fallback
	r.Static("/uploads", "./uploads")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		authLimited := api.Group("/")
		authLimited.Use(middleware.AuthRateLimit(limiter))
		{
			authLimited.POST("/register", handlers.Register(st, tokens))
			authLimited.POST("/login", handlers.Login(st, tokens))
		}

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(tokens))
		{
			protected.GET("/ws", handlers.WebSocketHandler(hub))
			protected.GET("/me", handlers.GetProfile(st))
			protected.GET("/drivers", handlers.ListDrivers(st))

			driver := protected.Group("/driver")
			driver.Use(middleware.RequireRole(models.RoleDriver))
			{
				driver.POST("/status", handlers.UpdateDriverAvailability(st))
				driver.POST("/photo", handlers.UploadDriverPhoto(st, storage))
			}

			rides := protected.Group("/rides")
			{
				rides.POST("", middleware.RequireRole(models.RoleClient), handlers.CreateRide(st, hub))
				rides.GET("/open", middleware.RequireRole(models.RoleDriver), handlers.GetOpenRides(st))
				rides.GET("/my", handlers.GetMyRides(st))
				rides.POST("/:id/claim", middleware.RequireRole(models.RoleDriver), handlers.ClaimRide(st, hub))
				rides.PATCH("/:id/status", middleware.RequireRole(models.RoleDriver), handlers.UpdateRideStatus(st, hub))
				rides.POST("/:id/rate", handlers.RateRide(st))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("starting server")
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
