package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hospital/dashboard/internal/config"
	"github.com/hospital/dashboard/internal/domain/masterdata"
	"github.com/hospital/dashboard/internal/domain/patientflow"
	"github.com/hospital/dashboard/internal/domain/sales"
	"github.com/hospital/dashboard/internal/domain/staff"
	"github.com/hospital/dashboard/internal/graph"
	"github.com/hospital/dashboard/internal/platform/auth"
	"github.com/hospital/dashboard/internal/platform/db"
	"github.com/hospital/dashboard/internal/platform/middleware"
	"github.com/hospital/dashboard/internal/platform/reporting"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hospital-dashboard",
		Short: "Hospital operations reporting API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.Level(level)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newManager(cfg *config.Config, logger zerolog.Logger) *db.Manager {
	return db.NewManager(db.PoolConfig{
		DatabaseURL:    cfg.DSN(),
		MaxConns:       cfg.DBMaxConns,
		MinConns:       cfg.DBMinConns,
		ConnectTimeout: cfg.DBConnectTimeout,
	}, logger)
}

// newServer wires the services and routes. The pool is not touched until the
// first query.
func newServer(cfg *config.Config, mgr *db.Manager, logger zerolog.Logger) (*echo.Echo, error) {
	masterSvc := masterdata.NewService(masterdata.NewRepo(mgr))
	flowSvc := patientflow.NewService(patientflow.NewRepo(mgr))
	staffSvc := staff.NewService(staff.NewRepo(mgr))
	salesSvc := sales.NewService(sales.NewRepo(mgr))

	schema, err := graph.NewSchema(graph.Services{
		MasterData:  masterSvc,
		PatientFlow: flowSvc,
		Staff:       staffSvc,
		Sales:       salesSvc,
	}, graph.Options{SalesMinLevel: cfg.SalesMinLevel})
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.HTTPErrorHandler(logger)

	rl := middleware.DefaultRateLimitConfig()
	rl.RequestsPerSecond = cfg.RateLimitRPS
	rl.BurstSize = cfg.RateLimitBurst

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderXRequestID, auth.StaffIDHeader},
		ExposeHeaders: []string{echo.HeaderXRequestID, echo.HeaderContentDisposition},
	}))
	e.Use(middleware.SecurityHeaders(graph.Path))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(middleware.RateLimit(rl))
	e.Use(auth.StaffIdentity(staffSvc, cfg.AuthDisabled()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(mgr))

	graph.Register(e, graph.NewHandler(schema, logger))
	reporting.NewHandler(salesSvc, cfg.SalesMinLevel, logger).RegisterRoutes(e)

	return e, nil
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	if cfg.AuthDisabled() {
		logger.Warn().Msg("AUTH_MODE=disabled: permission levels are not enforced")
	}

	mgr := newManager(cfg, logger)
	defer mgr.Close()

	e, err := newServer(cfg, mgr, logger)
	if err != nil {
		return err
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
