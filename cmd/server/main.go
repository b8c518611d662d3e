package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/commercekit/sales-service/internal/adapter/handler"
	"github.com/commercekit/sales-service/internal/adapter/storage"
	"github.com/commercekit/sales-service/internal/config"
	"github.com/commercekit/sales-service/internal/core/service"
	"github.com/commercekit/sales-service/internal/obs"
)

func main() {
	obs.InitLogger()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		obs.Logger.Error("failed to open mysql", "error", err)
		os.Exit(1)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		obs.Logger.Error("failed to ping mysql", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("connected to mysql")

	if err := storage.InitSchema(ctx, db); err != nil {
		obs.Logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("schema up to date")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: cfg.RedisPoolSize,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		obs.Logger.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	obs.Logger.Info("connected to redis")

	// Initialize adapters and services
	store := storage.NewMySQLAdapter(db)
	cache := storage.NewRedisAdapter(rdb)

	saleService := service.NewSaleService(store, cache, cfg.SaleTxRetries)
	catalogService := service.NewCatalogService(store)

	// Initialize HTTP server
	gin.SetMode(gin.ReleaseMode)
	gin.EnableJsonDecoderDisallowUnknownFields()
	router := gin.New()
	router.Use(gin.Recovery())

	httpHandler := handler.NewHTTPHandler(saleService, catalogService)
	httpHandler.RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		obs.Logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			obs.Logger.Error("HTTP server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	obs.Logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		obs.Logger.Error("HTTP server shutdown error", "error", err)
	}
	obs.Logger.Info("HTTP server stopped")

	if err := rdb.Close(); err != nil {
		obs.Logger.Error("redis close error", "error", err)
	}
	if err := db.Close(); err != nil {
		obs.Logger.Error("mysql close error", "error", err)
	}
	obs.Logger.Info("connections closed")
}
