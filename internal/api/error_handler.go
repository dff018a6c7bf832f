package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/inventory"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
	"github.com/sanosuguru/go-reserved-seating/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// notFoundErrors は 404 に対応するドメインエラー
var notFoundErrors = []error{
	venue.ErrVenueNotFound,
	venue.ErrConfigurationNotFound,
	layout.ErrSeatNotFound,
	layout.ErrTableNotFound,
	event.ErrEventNotFound,
	order.ErrOrderNotFound,
	inventory.ErrStateNotFound,
}

// conflictErrors は 409 に対応するドメインエラー（状態遷移の競合・前提条件違反）
var conflictErrors = []error{
	venue.ErrVenueHasConfigurations,
	venue.ErrConfigurationStillAvailable,
	venue.ErrConfigurationInUse,
	layout.ErrTableInUse,
	event.ErrEventStillOnSale,
	event.ErrEventNotOnSale,
	event.ErrConfigurationUnavailable,
	order.ErrOrderExpired,
	order.ErrOrderAlreadyCompleted,
	order.ErrOrderAlreadyCancelled,
	order.ErrOrderAbandoned,
	order.ErrOrderStillActive,
	order.ErrOrderHasSeats,
	inventory.ErrSeatUnavailable,
	inventory.ErrSeatNotHeldByOrder,
	inventory.ErrInconsistentHoldState,
	application.ErrInsufficientAvailability,
}

// badRequestErrors は 400 に対応するドメインエラー（入力値の不備）
var badRequestErrors = []error{
	venue.ErrOwnerIDRequired,
	venue.ErrVenueIDRequired,
	venue.ErrVenueNameRequired,
	venue.ErrConfigurationNameRequired,
	venue.ErrInvalidMaxPeople,
	layout.ErrVenueConfigIDRequired,
	layout.ErrSeatNameRequired,
	layout.ErrSeatClassRequired,
	layout.ErrInvalidTableSize,
	layout.ErrInvalidGeometry,
	layout.ErrSeatNotInConfiguration,
	layout.ErrTableNotInConfiguration,
	event.ErrOwnerIDRequired,
	event.ErrVenueConfigIDRequired,
	event.ErrInvalidMaxPeople,
	order.ErrUserIDRequired,
	order.ErrEventIDRequired,
	order.ErrExpiryRequired,
	order.ErrInvalidExpiry,
	order.ErrNoSeatsHeld,
	application.ErrInvalidPagination,
	application.ErrInvalidNumSeats,
}

// DomainError はドメインエラーを適切なHTTPステータスのecho.HTTPErrorへ変換する
// どの分類にも該当しないエラー（DB障害など）は内部情報を隠して 500 を返す
func DomainError(err error) *echo.HTTPError {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "内部サーバーエラー").SetInternal(err)
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		code    = http.StatusInternalServerError
		message = "内部サーバーエラー"
	)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	// エラーログを出力（5xx エラーの場合）
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	// JSONレスポンスを返す
	if err := c.JSON(code, ErrorResponse{
		Error: message,
		Code:  code,
	}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
