package main

import (
	"os"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"microservices-demo/internal/config"
	"microservices-demo/internal/platform/database"
	platformmw "microservices-demo/internal/platform/middleware"
	"microservices-demo/internal/platform/ratelimit"
	"microservices-demo/internal/userstore/api"
	"microservices-demo/internal/userstore/repository"
	"microservices-demo/internal/userstore/service"
	"microservices-demo/migrations"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "user-service").Logger()

	cfg, err := config.LoadUserService()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	db, err := database.Connect(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := migrations.AutoMigrateUsers(3, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate users table")
	}

	// Initialize UserService
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	userHandler := api.NewUserHandler(userService)

	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(platformmw.TraceID())
	e.Use(platformmw.Metrics("user-service"))
	e.Use(middleware.RateLimiterWithConfig(ratelimit.NewConfig(rate.Limit(20), 50)))

	// Routes
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/:id", userHandler.GetUserByID)
	e.POST("/users", userHandler.CreateUser)

	// Internal lookup route for the order service, guarded by the shared
	// service secret.
	e.GET("/internal/users/:id", userHandler.GetUserByID, echojwt.JWT([]byte(cfg.ServiceJWTSecret)))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/users/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "user-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
