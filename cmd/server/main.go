// Package main initializes and starts the GopherKeeper API server: config,
// logging, database, repositories, services, handlers and routing.
package main

import (
	"cmp"
	"fmt"
	"log"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/mkalinin/gopherkeeper/internal/config"
	"github.com/mkalinin/gopherkeeper/internal/db"
	"github.com/mkalinin/gopherkeeper/internal/logger"
	"github.com/mkalinin/gopherkeeper/internal/repository"
	"github.com/mkalinin/gopherkeeper/internal/server/handler/http"
	"github.com/mkalinin/gopherkeeper/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	zapLogger, err := logger.New("info")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is required, set -s or JWT_SECRET")
	}

	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	secretsRepo := repository.NewPostgresSecretsRepository(postgresDB)

	authService := service.NewAuthService(authRepo, options.JWTSecret)
	secretsService := service.NewSecretsService(secretsRepo)

	authHandler := &http.AuthHandler{AuthService: authService}
	dataHandler := &http.DataHandler{SecretsService: secretsService}

	router := http.NewRouter(authHandler, dataHandler, options.JWTSecret, zapLogger)

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := nethttp.ListenAndServe(options.Address, router); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
