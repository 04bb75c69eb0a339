package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenside/greenside/internal/auth"
	"github.com/greenside/greenside/internal/config"
	"github.com/greenside/greenside/internal/handlers"
	"github.com/greenside/greenside/internal/service"
	"github.com/greenside/greenside/internal/storage/sqlite"
	"github.com/greenside/greenside/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	configPath := getEnv("CONFIG_PATH", "./config.yaml")

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(logging.ParseLevel(cfg.Logging.Level))

	store, err := sqlite.New(cfg.Storage.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Storage.Path)

	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	roundService := service.NewRoundService(store, cfg.Rounds.AutosaveDebounce)

	router := handlers.NewRouter(handlers.Services{
		Auth:    service.NewAuthService(authenticator, jwtManager),
		Courses: service.NewCourseService(store),
		Scores:  service.NewScoreService(store),
		Rounds:  roundService,
		JWT:     jwtManager,
	})

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "address", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Persist any pending scorecard entries before the process exits.
	roundService.Shutdown(ctx)

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
