package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	_ "brcargo_cotacoes/docs"
	"brcargo_cotacoes/internal/adapter/http/routes"
	"brcargo_cotacoes/internal/infrastructure/config"
	"brcargo_cotacoes/pkg/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Freight Quote API
// @version         1.0
// @description     Freight quotation workflow between sales consultants and logistics operators.

// @contact.name   BR Cargo
// @contact.email  ti@brcargo.com.br

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
// @description Id of a registered user.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg, zlog); err != nil {
		zlog.Error("application stopped", zap.Error(err))
		stop()
		os.Exit(1)
	}
}
