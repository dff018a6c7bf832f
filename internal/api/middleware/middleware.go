package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupMiddleware は全ルート共通のミドルウェアを登録する
// 登録順は リクエストID → リクエストログ → リカバリー → CORS
func SetupMiddleware(e *echo.Echo) {
	e.Use(middleware.RequestID())

	// zapによる構造化リクエストログ（リクエストID付与後に実行する）
	e.Use(RequestLogger())

	// ハンドラー内のパニックを500に変換する
	e.Use(middleware.Recover())

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
}
