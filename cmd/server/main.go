// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	authRouter "github.com/savelyev-an/admin-console/internal/auth/router"
	"github.com/savelyev-an/admin-console/internal/config"
	"github.com/savelyev-an/admin-console/internal/database"
	"github.com/savelyev-an/admin-console/internal/database/migrate"
	"github.com/savelyev-an/admin-console/internal/database/seed"
	"github.com/savelyev-an/admin-console/internal/health"
	menuRouter "github.com/savelyev-an/admin-console/internal/menu/router"
	"github.com/savelyev-an/admin-console/internal/middleware"
	roleRouter "github.com/savelyev-an/admin-console/internal/role/router"
	teamRouter "github.com/savelyev-an/admin-console/internal/team/router"
	userRouter "github.com/savelyev-an/admin-console/internal/user/router"
	"github.com/savelyev-an/admin-console/pkg/logger"
	"github.com/savelyev-an/admin-console/pkg/token"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	appLogger, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	db, err := database.New()
	if err != nil {
		appLogger.Fatalw("failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLogger.Errorw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		appLogger.Fatalw("failed to apply migrations", "error", err)
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := seed.Run(seedCtx, db, appLogger); err != nil {
		cancelSeed()
		appLogger.Fatalw("failed to seed bootstrap data", "error", err)
	}
	cancelSeed()

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(appLogger))
	r.Use(middleware.Recovery(appLogger))

	tokens := token.New(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	healthHandler := health.New(db, appLogger)
	r.GET("/health", healthHandler.Check)

	authRouter.RegisterRoutes(r, db, tokens, appLogger)
	userRouter.RegisterRoutes(r, db, appLogger)
	teamRouter.RegisterRoutes(r, db, appLogger)
	roleRouter.RegisterRoutes(r, db, appLogger)
	menuRouter.RegisterRoutes(r, db, appLogger)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Infow("starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Infow("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorw("forced shutdown", "error", err)
	}
}
