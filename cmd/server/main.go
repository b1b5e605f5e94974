package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/SwiftWareCo/GolfSync-sub005/config"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/api/handler"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/api/router"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/repository"
	"github.com/SwiftWareCo/GolfSync-sub005/internal/service"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/database"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/jwt"
	applogger "github.com/SwiftWareCo/GolfSync-sub005/pkg/logger"
	"github.com/SwiftWareCo/GolfSync-sub005/pkg/redis"
)

func main() {
	// 1. load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting up",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("database connected")

	// 3.1 run schema migrations
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Redis is optional: without it the processing lock and submit rate
	// limit degrade, nothing else does.
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis connection failed, processing lock and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	// 5. SSO token validator
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. dependency injection: repository -> service -> handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(cfg, svc, rdb)

	// 7. routes
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// 9. wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received, draining", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
