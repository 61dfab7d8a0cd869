package main

import (
	"database/sql"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"microservices-demo/internal/config"
	"microservices-demo/internal/orderflow/api"
	"microservices-demo/internal/orderflow/client"
	"microservices-demo/internal/orderflow/repository"
	"microservices-demo/internal/orderflow/service"
	"microservices-demo/internal/orderflow/sharding"
	"microservices-demo/internal/platform/database"
	"microservices-demo/internal/platform/kafkacfg"
	platformmw "microservices-demo/internal/platform/middleware"
	"microservices-demo/internal/platform/ratelimit"
	"microservices-demo/migrations"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "order-service").Logger()

	cfg, err := config.LoadOrderService()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	dsns := cfg.ShardDSNs()
	dbShards := make([]*sql.DB, 0, len(dsns))
	for _, dsn := range dsns {
		db, err := database.Connect(dsn, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to database shard")
		}
		dbShards = append(dbShards, db)
	}

	if err := migrations.AutoMigrateOrders(3, dbShards...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate orders table")
	}

	// Optional collaborators: both disabled when unconfigured.
	var rdb *redis.Client
	var idemStore service.IdempotencyStore
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		idemStore = service.NewRedisIdempotencyStore(rdb)
	}
	kafkaWriter := kafkacfg.NewWriter(cfg.KafkaBrokers, "order-topic")

	router := sharding.NewShardRouter(len(dbShards))

	orderRepo := repository.NewOrderRepository(dbShards, router)
	userClient := client.NewUserClient(cfg.UserServiceURL, cfg.ServiceJWTSecret, cfg.UserServiceTimeout, rdb)
	orderService := service.NewOrderService(orderRepo, userClient, idemStore, kafkaWriter)
	orderHandler := api.NewOrderHandler(orderService)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(platformmw.TraceID())
	e.Use(platformmw.Metrics("order-service"))
	e.Use(middleware.RateLimiterWithConfig(ratelimit.NewConfig(rate.Limit(20), 50)))

	e.POST("/orders", orderHandler.CreateOrder)
	e.GET("/orders", orderHandler.ListOrders)
	e.GET("/orders/:id", orderHandler.GetOrderByID)
	e.GET("/orders/user/:userId", orderHandler.ListOrdersByUser)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/orders/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "order-service",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
