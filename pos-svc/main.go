package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"overcooked-pos/config"
	httpapi "overcooked-pos/pos-svc/internal/api/http"
	"overcooked-pos/pos-svc/internal/service"
	"overcooked-pos/pos-svc/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)
	defer logger.Sync()

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg, logger)
	defer db.Close()
	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal("failed to ensure schema", zap.Error(err))
	}

	rdb := config.MustInitRedis(cfg, logger)
	defer rdb.Close()

	writer := config.NewKafkaWriter(cfg, cfg.NotificationsTopic)
	defer writer.Close()

	policy, err := service.ParseDuplicatePolicy(cfg.DuplicateOrderPolicy)
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	bills := service.NewBillLedger(repo, service.DefaultQRGenerator{BaseURL: cfg.ReceiptBaseURL}, cfg.TaxRate, logger)
	orders := service.NewOrderBook(repo, policy, cfg.TaxRate, logger)
	menu := service.NewMenuService(repo, repo, logger)
	users := service.NewUserService(repo, storage.NewRedisCache(rdb), storage.NewKafkaMailer(writer), cfg.BcryptCost, cfg.FrontendOrigin, logger)

	handler := httpapi.NewHandler(
		bills, orders, menu, users,
		storage.NewRedisSessions(rdb, cfg.SessionTTL),
		httpapi.CookieConfig{Name: cfg.CookieName, Secure: cfg.CookieSecure, TTL: cfg.SessionTTL},
		logger,
	)

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("tax_rate", cfg.TaxRate.String()),
		zap.Stringer("duplicate_order_policy", policy),
	)

	if err := httpapi.StartServer(ctx, cfg.HTTPAddr, httpapi.NewRouter(handler, cfg.FrontendOrigin), logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
