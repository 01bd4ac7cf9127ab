package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"caelis-storefront/internal/client"
	"caelis-storefront/internal/config"
	"caelis-storefront/internal/mailer"
	"caelis-storefront/internal/repository"
	"caelis-storefront/internal/server"
	"caelis-storefront/internal/service"
	"caelis-storefront/internal/signature"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := client.InitSQLiteClient(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}

	gateway := client.NewRazorpayClient(&cfg.Razorpay)
	verifier := signature.NewVerifier(cfg.Razorpay.KeySecret, cfg.Razorpay.WebhookSecret)

	orderRepo := repository.NewOrderRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	notifier := service.NewNotifier(mailer.New(&cfg.Mail), logger)
	orderService := service.NewOrderService(gateway, verifier, orderRepo, subscriptionRepo, notifier, logger)

	srv := server.NewServer(orderService, cfg, logger)
	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.Info("starting HTTP server",
		zap.String("addr", serverAddr),
		zap.String("environment", cfg.Environment.Name),
		zap.String("razorpay_key_id", cfg.Razorpay.KeyID))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	// stop taking requests first, then drain pending notifications
	notifier.Close()

	logger.Info("shutdown complete")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
