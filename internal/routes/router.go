package routes

import (
	"net/http"

	"contacts-api/internal/config"
	"contacts-api/internal/delivery/http/handler"
	"contacts-api/internal/infrastructure/database/postgres"
	"contacts-api/internal/infrastructure/storage"
	"contacts-api/internal/logger"
	"contacts-api/internal/middleware"
	"contacts-api/internal/usecase/contact"
	"contacts-api/internal/usecase/user"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB, mailer user.Mailer, avatarStore storage.AvatarStore) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware in order: recovery, request ID, logging, security headers,
	// CORS, request size limit, general rate limit
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	userRepository := postgres.NewUserRepository(db)
	userService := user.NewService(userRepository, mailer, avatarStore, cfg)
	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)

	contactRepository := postgres.NewContactRepository(db)
	contactService := contact.NewService(contactRepository)
	contactHandler := handler.NewContactHandler(contactService)

	profileLimiter := middleware.PerMinuteRateLimitMiddleware(cfg.RateLimit.ProfileRPM, cfg.RateLimit.ProfileBurst)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/healthchecker", func(c *gin.Context) {
			if err := db.Health(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "Error connecting to the database",
				})
				return
			}

			c.JSON(http.StatusOK, gin.H{
				"message": "Service is running",
			})
		})

		authHandler.RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(userService))
		{
			userHandler.RegisterRoutes(protected, profileLimiter)
			contactHandler.RegisterRoutes(protected)

			admin := protected.Group("/auth")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
