package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-reserved-seating/internal/api"
	"github.com/sanosuguru/go-reserved-seating/internal/api/handler"
	"github.com/sanosuguru/go-reserved-seating/internal/api/middleware"
	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/config"
	"github.com/sanosuguru/go-reserved-seating/internal/infrastructure/postgres"
	redisinfra "github.com/sanosuguru/go-reserved-seating/internal/infrastructure/redis"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/clock"
)

// TestServer はE2Eテスト用のサーバー
type TestServer struct {
	Echo    *echo.Echo
	Cleanup func()
}

// NewTestServer はテスト用サーバーを作成
// DB・Redisが起動していない環境ではテストをスキップする
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	cfg := config.Load()

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		t.Skipf("DB接続エラー: %v", err)
	}

	if err := postgres.RunMigrations(db.DB, "../migrations"); err != nil {
		db.Close()
		t.Skipf("マイグレーションエラー: %v", err)
	}

	redisClient := redisinfra.NewClient(&cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisinfra.Ping(pingCtx, redisClient); err != nil {
		db.Close()
		t.Skipf("Redis接続エラー: %v", err)
	}

	lockManager := redisinfra.NewLockManager(redisClient)
	cache := redisinfra.NewAvailabilityCache(redisClient)

	venueRepo := postgres.NewVenueRepository(db)
	configRepo := postgres.NewConfigurationRepository(db)
	seatRepo := postgres.NewSeatRepository(db)
	tableRepo := postgres.NewTableRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	stateRepo := postgres.NewSeatStateRepository(db)
	txManager := postgres.NewTxManager(db)

	clk := clock.NewSystem()
	venueService := application.NewVenueService(venueRepo, configRepo, eventRepo)
	layoutService := application.NewLayoutService(seatRepo, tableRepo, configRepo)
	eventService := application.NewEventService(txManager, eventRepo, configRepo, seatRepo, tableRepo, stateRepo, cache)
	orderService := application.NewOrderService(txManager, orderRepo, stateRepo, seatRepo, eventRepo, nil, clk)
	holdService := application.NewHoldService(txManager, orderRepo, stateRepo, seatRepo, eventRepo, cache, nil, clk)
	autoSelectService := application.NewAutoSelectService(holdService, orderRepo, stateRepo, seatRepo, eventRepo, lockManager, nil, clk)

	healthHandler := handler.NewHealthHandler()
	venueHandler := handler.NewVenueHandler(venueService)
	layoutHandler := handler.NewLayoutHandler(layoutService)
	eventHandler := handler.NewEventHandler(eventService, holdService)
	orderHandler := handler.NewOrderHandler(orderService, holdService, autoSelectService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	middleware.SetupMiddleware(e)

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

	cleanup := func() {
		db.Exec("TRUNCATE TABLE order_seats, orders, seat_states, seat_adjacency, seats, tables, events, venue_configurations, venues CASCADE")
		redisClient.FlushDB(context.Background())
		redisClient.Close()
		db.Close()
	}

	return &TestServer{Echo: e, Cleanup: cleanup}
}

// Request はHTTPリクエストを実行
func (s *TestServer) Request(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

// decode はレスポンスボディをmapへデコードする
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}
