package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-forecast-dashboard/internal/dashboard/config"
	delivery "stock-forecast-dashboard/internal/dashboard/delivery/http"
	_ "stock-forecast-dashboard/internal/dashboard/docs"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/internal/dashboard/session"
	"stock-forecast-dashboard/pkg/logger"
	"stock-forecast-dashboard/pkg/redis"

	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service",
		logger.Field("name", cfg.App.Name),
		logger.StringField("backend", cfg.Backend.BaseURL),
	)

	// Sidebar lists live in Redis when enabled, in memory otherwise.
	// Visitor lists expire with their browser session.
	symbolLists := repository.NewMemorySymbolListRepository(cfg.Auth.SessionTTL)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		symbolLists = repository.NewRedisSymbolListRepository(redisClient, cfg.Auth.SessionTTL)
	}

	// Initialize repositories
	forecastRepo := repository.NewForecastAPIRepository(cfg.Backend, appLogger)
	authRepo := repository.NewAuthRepository(cfg.Auth, appLogger)

	// Initialize services
	marketSvc := service.NewMarketService(forecastRepo, cfg.Polling.MoversCacheTTL, appLogger)
	stockSvc := service.NewStockService(forecastRepo, marketSvc, appLogger)
	sidebarSvc := service.NewSidebarService(forecastRepo, symbolLists, appLogger)

	sessions := session.NewStore(cfg.Auth.SessionTTL, func() *session.Provider {
		return session.NewProvider(authRepo, cfg.Auth, appLogger)
	})
	defer sessions.Flush()

	// Keep the shared movers snapshot warm
	refresher, err := service.NewMoversRefresher(marketSvc, cfg.Polling.MoversRefreshSpec, appLogger)
	if err != nil {
		appLogger.Fatal("Invalid movers refresh schedule", logger.ErrorField(err))
	}
	go refresher.Start(ctx)

	// Initialize Echo server
	e, err := delivery.NewRouter(delivery.Dependencies{
		Sessions: sessions,
		Market:   marketSvc,
		Stocks:   stockSvc,
		Sidebar:  sidebarSvc,
		NewPages: func() *service.Pages {
			return service.NewPages(forecastRepo, appLogger)
		},
		Polling:      cfg.Polling,
		SecureCookie: cfg.Auth.SecureCookie,
		Logger:       appLogger,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize router", logger.ErrorField(err))
	}

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Event streams hold their connections open until the client leaves, so
	// close them if they outlive the grace period
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
		_ = e.Close()
	}

	appLogger.Info("Server exiting", logger.IntField("sessions", sessions.Len()))
}

// @title Forecast Dashboard API
// @version 1.0
// @description Session-scoped JSON and stream endpoints of the stock forecast dashboard.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "dashboard-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
