package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-reserved-seating/internal/api"
	"github.com/sanosuguru/go-reserved-seating/internal/api/handler"
	custommw "github.com/sanosuguru/go-reserved-seating/internal/api/middleware"
	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/config"
	"github.com/sanosuguru/go-reserved-seating/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-reserved-seating/internal/infrastructure/redis"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/clock"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/logger"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/metrics"
	"github.com/sanosuguru/go-reserved-seating/internal/worker"
)

func main() {
	// .env ファイルがあれば読み込む（ローカル開発用）
	_ = godotenv.Load()

	cfg := config.Load()
	defer func() { _ = logger.Sync() }()

	// データベース接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Error("データベース接続に失敗", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// マイグレーション実行
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Error("マイグレーションに失敗", zap.Error(err))
		os.Exit(1)
	}

	// Redis接続
	redisClient := redisinfra.NewClient(&cfg.Redis)
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisinfra.Ping(ctx, redisClient); err != nil {
		logger.Warn("Redis接続に失敗（キャッシュ・分散ロックなしで継続）", zap.Error(err))
		redisClient = nil
	}
	cancel()

	// メトリクス
	m := metrics.Init()

	// リポジトリ
	venueRepo := postgres.NewVenueRepository(db)
	configRepo := postgres.NewConfigurationRepository(db)
	seatRepo := postgres.NewSeatRepository(db)
	tableRepo := postgres.NewTableRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	stateRepo := postgres.NewSeatStateRepository(db)
	txManager := postgres.NewTxManager(db)

	var (
		cache       *redisinfra.AvailabilityCache
		lockManager *redisinfra.LockManager
	)
	if redisClient != nil {
		cache = redisinfra.NewAvailabilityCache(redisClient)
		lockManager = redisinfra.NewLockManager(redisClient)
	}

	// サービス
	clk := clock.NewSystem()
	venueService := application.NewVenueService(venueRepo, configRepo, eventRepo)
	layoutService := application.NewLayoutService(seatRepo, tableRepo, configRepo)
	eventService := application.NewEventService(txManager, eventRepo, configRepo, seatRepo, tableRepo, stateRepo, cache)
	orderService := application.NewOrderService(txManager, orderRepo, stateRepo, seatRepo, eventRepo, m, clk)
	holdService := application.NewHoldService(txManager, orderRepo, stateRepo, seatRepo, eventRepo, cache, m, clk)
	autoSelectService := application.NewAutoSelectService(holdService, orderRepo, stateRepo, seatRepo, eventRepo, lockManager, m, clk)

	// 期限切れ注文リーパー
	reaperCtx, reaperCancel := context.WithCancel(context.Background())
	reaper := worker.NewOrderReaper(orderService, cfg.Reaper.Interval)
	go reaper.Start(reaperCtx)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	custommw.SetupMiddleware(e)
	e.Use(custommw.PrometheusMiddleware(m))

	// ハンドラー
	healthHandler := handler.NewHealthHandler()
	venueHandler := handler.NewVenueHandler(venueService)
	layoutHandler := handler.NewLayoutHandler(layoutService)
	eventHandler := handler.NewEventHandler(eventService, holdService)
	orderHandler := handler.NewOrderHandler(orderService, holdService, autoSelectService)

	// ルーティング
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommw.MetricsBasicAuth())

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.POST("/venues", venueHandler.Create)
	v1.GET("/venues", venueHandler.List)
	v1.GET("/venues/:id", venueHandler.GetByID)
	v1.PUT("/venues/:id", venueHandler.Update)
	v1.DELETE("/venues/:id", venueHandler.Delete)
	v1.POST("/venues/:id/configurations", venueHandler.CreateConfiguration)
	v1.GET("/venues/:id/configurations", venueHandler.ListConfigurations)

	v1.GET("/configurations/:id", venueHandler.GetConfiguration)
	v1.PUT("/configurations/:id", venueHandler.UpdateConfiguration)
	v1.PUT("/configurations/:id/availability", venueHandler.UpdateAvailability)
	v1.DELETE("/configurations/:id", venueHandler.DeleteConfiguration)
	v1.POST("/configurations/:id/seats", layoutHandler.CreateSeat)
	v1.GET("/configurations/:id/seats", layoutHandler.ListSeats)
	v1.POST("/configurations/:id/tables", layoutHandler.CreateTable)
	v1.GET("/configurations/:id/tables", layoutHandler.ListTables)

	v1.GET("/seats/:id", layoutHandler.GetSeat)
	v1.PUT("/seats/:id", layoutHandler.UpdateSeat)
	v1.DELETE("/seats/:id", layoutHandler.DeleteSeat)
	v1.GET("/tables/:id", layoutHandler.GetTable)
	v1.PUT("/tables/:id", layoutHandler.UpdateTable)
	v1.DELETE("/tables/:id", layoutHandler.DeleteTable)

	v1.POST("/events", eventHandler.Create)
	v1.GET("/events", eventHandler.List)
	v1.GET("/events/:id", eventHandler.GetByID)
	v1.PUT("/events/:id", eventHandler.Update)
	v1.DELETE("/events/:id", eventHandler.Delete)
	v1.POST("/events/:id/cancel", eventHandler.Cancel)
	v1.GET("/events/:id/seats", eventHandler.GetSeatsAndTables)
	v1.GET("/events/:id/free-seats", eventHandler.CountFreeSeats)

	v1.POST("/orders", orderHandler.Create)
	v1.GET("/orders", orderHandler.ListForUser)
	v1.GET("/orders/abandoned", orderHandler.ListAbandoned)
	v1.GET("/orders/:id", orderHandler.GetByID)
	v1.GET("/orders/:id/summary", orderHandler.GetSummary)
	v1.DELETE("/orders/:id", orderHandler.Delete)
	v1.POST("/orders/:id/continue", orderHandler.Continue)
	v1.POST("/orders/:id/complete", orderHandler.Complete)
	v1.POST("/orders/:id/seats", orderHandler.AddSeat)
	v1.DELETE("/orders/:id/seats/:seatId", orderHandler.RemoveSeat)
	v1.POST("/orders/:id/auto-select", orderHandler.AutoSelect)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Error("サーバー起動エラー", zap.Error(err))
			os.Exit(1)
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	// リーパー停止
	reaperCancel()
	reaper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
