package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"pricefeed/config"
	"pricefeed/internal/ingester"
	"pricefeed/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()

	priceStorage, err := storage.NewClickHouseStorage(cfg.ClickHouseDSN)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to ClickHouse")
	}
	defer priceStorage.Close()

	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          cfg.Kafka.Topic,
		GroupID:        cfg.Kafka.GroupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: 0,    // Commits are handled manually after DB inserts
	})
	defer kafkaReader.Close()

	svc := ingester.NewIngester(
		kafkaReader,
		priceStorage,
		logger,
		ingester.Config{
			BatchSize:    cfg.Ingester.BatchSize,
			BatchTimeout: cfg.Ingester.BatchTimeout,
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Ingester started successfully")

	if err := svc.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Ingester stopped with error")
	}

	logger.Info("Ingester shutdown complete")
}
