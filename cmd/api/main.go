package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/clickhouse"
	"gorm.io/gorm"

	"pricefeed/config"
	"pricefeed/internal/cache"
	"pricefeed/internal/handler"
	"pricefeed/internal/queue"
	"pricefeed/internal/repository"
	"pricefeed/internal/router"
	"pricefeed/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := config.Load()

	db, err := gorm.Open(clickhouse.Open(cfg.ClickHouseDSN), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	migrateFlag := flag.Bool("migrate", false, "Run database migrations and exit")
	flag.Parse()

	if *migrateFlag {
		sqlDB, err := db.DB()
		if err != nil {
			logger.Error("Failed to get sql.DB", "error", err)
			os.Exit(1)
		}
		if err := goose.SetDialect("clickhouse"); err != nil {
			logger.Error("Goose: failed to set dialect", "error", err)
			os.Exit(1)
		}
		logger.Info("Running database migrations")
		if err := goose.Up(sqlDB, "migrations"); err != nil {
			logger.Error("Goose migration failed", "error", err)
			os.Exit(1)
		}
	}

	publisher, err := queue.NewKafkaPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic)
	if err != nil {
		logger.Error("Failed to create Kafka publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	var resultCache service.ResultCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, logger)
		defer redisCache.Close()
		resultCache = redisCache
	}

	priceRepo := repository.NewGormPriceRepository(db, logger)
	priceService := service.NewPriceService(publisher, priceRepo, resultCache, logger, service.Config{
		PublishTimeout: cfg.PublishTimeout,
		QueryTimeout:   cfg.QueryTimeout,
	})
	priceHandler := handler.NewPriceHandler(priceService, logger)

	routerConfig := &router.Config{
		PriceHandler:      priceHandler,
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}

	r := router.NewRouter(routerConfig)

	if err := r.Run(fmt.Sprintf(":%s", cfg.ServerPort)); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
