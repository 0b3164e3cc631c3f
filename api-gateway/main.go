package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"overcooked-pos/api-gateway/internal/gateway"
	"overcooked-pos/config"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)
	defer logger.Sync()

	gw := gateway.NewGateway(gateway.Config{
		PosSvcURL: cfg.PosSvcURL,
		StaticDir: cfg.StaticDir,
	}, &http.Client{Timeout: 30 * time.Second}, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.GatewayAddr,
		Handler:           c.Handler(gw.SetupRoutes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("API Gateway starting", zap.String("addr", cfg.GatewayAddr), zap.String("upstream", cfg.PosSvcURL))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("gateway stopped", zap.Error(err))
	}
}
