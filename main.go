package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/employee-directory/config"
	"github.com/employee-directory/database"
	"github.com/employee-directory/logger"
	"github.com/employee-directory/repositories"
	"github.com/employee-directory/routes"
	"github.com/employee-directory/services"
	"github.com/employee-directory/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	err = run(cfg, log)
	if err != nil {
		log.Error("server stopped", zap.Error(err))
	}
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting Employee Management API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
		zap.String("db_mode", cfg.DBConnectMode),
	)

	hasher, err := utils.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return fmt.Errorf("invalid password hasher: %w", err)
	}

	gateway := database.NewGateway(database.Options{
		DSN:            cfg.DatabaseURL,
		Schema:         config.DatabaseName,
		ConnectTimeout: cfg.DBConnectTimeout,
		LogLevel:       database.LogLevelFor(cfg.LogLevel),
	}, log)
	defer func() {
		if err := gateway.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()

	if cfg.DBConnectMode == config.ConnectEager {
		if err := gateway.Connect(context.Background()); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connected successfully")
	}

	// Initialize repositories and services
	userService := services.NewUserService(repositories.NewUserRepository(gateway), hasher, log)
	employeeService := services.NewEmployeeService(repositories.NewEmployeeRepository(gateway), log)

	var origins []string
	if !cfg.AllowAllOrigins() {
		origins = cfg.AllowedOrigins
	}

	router := routes.NewRouter(routes.Dependencies{
		Logger:         log,
		DB:             gateway,
		Users:          userService,
		Employees:      employeeService,
		AllowedOrigins: origins,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(serveErr, fmt.Errorf("server shutdown: %w", err))
	}
	if serveErr != nil {
		return fmt.Errorf("server error: %w", serveErr)
	}
	log.Info("server exited gracefully")
	return nil
}
