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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recruit-tracker/config"
	"recruit-tracker/internal/api/handler"
	"recruit-tracker/internal/api/middleware"
	"recruit-tracker/internal/api/router"
	"recruit-tracker/internal/repository"
	"recruit-tracker/internal/service"
	"recruit-tracker/pkg/database"
	"recruit-tracker/pkg/jwt"
	applogger "recruit-tracker/pkg/logger"
	"recruit-tracker/pkg/metrics"
	"recruit-tracker/pkg/redis"
)

func main() {
	// 1. configuration
	cfg, err := config.Load(os.Getenv("RT_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// 4. Redis is optional: without it there is no token blacklist and no login throttling
	var (
		blacklist service.TokenBlacklist
		limiter   middleware.RateLimiter
		checks    []handler.HealthCheck
	)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running without token blacklist and rate limiting", zap.Error(err))
	} else {
		blacklist = rdb
		limiter = rdb
		checks = append(checks, handler.HealthCheck{Name: "redis", Ping: rdb.Ping})
	}

	// 5. metrics and JWT
	m := metrics.New()
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. repository -> service -> handler
	repo := repository.NewRepository(db)
	checks = append(checks, handler.HealthCheck{Name: "database", Required: true, Ping: repo.Ping})

	svc := service.NewService(cfg, repo, jwtMgr, blacklist, m, logger)
	h := handler.NewHandler(cfg, svc, checks...)

	// 7. routes
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.Setup(cfg, h, jwtMgr, router.Options{
		Blacklist: blacklist,
		Limiter:   limiter,
		Metrics:   m,
		Logger:    logger,
	})

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("close database", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
