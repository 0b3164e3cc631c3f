package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"overcooked-pos/config"
	"overcooked-pos/notify-svc/internal/service"
	"overcooked-pos/notify-svc/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg, logger)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg, cfg.NotificationsTopic, cfg.NotifyGroupID)
	defer reader.Close()

	consumer := service.NewConsumer(
		reader,
		storage.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPassword),
		storage.NewRedisDeliveryLog(rdb, 7*24*time.Hour),
		logger,
	)
	consumer.Start(ctx)
}
