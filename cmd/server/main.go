package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/welldanyogia/recipe-api-backend/internal/api"
	"github.com/welldanyogia/recipe-api-backend/internal/api/middleware"
	"github.com/welldanyogia/recipe-api-backend/internal/config"
	"github.com/welldanyogia/recipe-api-backend/internal/database"
	"github.com/welldanyogia/recipe-api-backend/internal/logger"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
	"github.com/welldanyogia/recipe-api-backend/internal/services"
	"github.com/welldanyogia/recipe-api-backend/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	createSuperuser := flag.Bool("createsuperuser", false, "create a staff account from SUPERUSER_EMAIL / SUPERUSER_PASSWORD and exit")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadWithValidation()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	slog.Info("Starting Recipe API Server...")
	cfg.LogConfig(log)

	if err := run(cfg, log, *createSuperuser); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func run(cfg *config.Config, log *slog.Logger, createSuperuser bool) error {
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	userService := services.NewUserService(repository.NewUserRepository(db), services.UserServiceConfig{})

	if createSuperuser {
		return createSuperuserFromEnv(userService)
	}

	fileStorage, err := storage.NewLocalStorage(cfg.MediaRoot)
	if err != nil {
		return fmt.Errorf("failed to initialize media storage: %w", err)
	}

	tokenService, err := services.NewTokenService(services.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		return err
	}

	e := api.NewRouter(&api.RouterConfig{
		DB:             db,
		FileStorage:    fileStorage,
		Logger:         log,
		SecurityLogger: logger.NewSecurityLogger(),
		UserService:    userService,
		TokenService:   tokenService,
		AllowedOrigins: middleware.ParseOrigins(cfg.AllowedOrigins),
		Production:     cfg.IsProduction(),
		RateLimit:      cfg.RateLimitRequests,
		RateBurst:      cfg.RateLimitBurst,
		MediaRoot:      cfg.MediaRoot,
	})

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		slog.Info("HTTP server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func createSuperuserFromEnv(users services.UserService) error {
	email := os.Getenv("SUPERUSER_EMAIL")
	password := os.Getenv("SUPERUSER_PASSWORD")
	if email == "" || password == "" {
		return errors.New("SUPERUSER_EMAIL and SUPERUSER_PASSWORD are required with -createsuperuser")
	}

	user, err := users.CreateSuperuser(context.Background(), email, password)
	if err != nil {
		return fmt.Errorf("failed to create superuser: %w", err)
	}

	slog.Info("Superuser created", "user_id", user.ID, "email", user.Email)
	return nil
}
