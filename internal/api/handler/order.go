package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-reserved-seating/internal/api"
	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/order"
)

type OrderHandler struct {
	orderService      OrderServiceInterface
	holdService       HoldServiceInterface
	autoSelectService AutoSelectServiceInterface
}

func NewOrderHandler(
	os OrderServiceInterface,
	hs HoldServiceInterface,
	as AutoSelectServiceInterface,
) *OrderHandler {
	return &OrderHandler{orderService: os, holdService: hs, autoSelectService: as}
}

type CreateOrderRequest struct {
	EventID string `json:"event_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Expires int64  `json:"expires" validate:"required,gt=0" example:"1767193200"`
}

type ContinueOrderRequest struct {
	Expires int64 `json:"expires" validate:"required,gt=0" example:"1767196800"`
}

type OrderResponse struct {
	ID        string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID    string   `json:"user_id" example:"user-123"`
	EventID   string   `json:"event_id"`
	Status    string   `json:"status" example:"active"`
	Expires   int64    `json:"expires" example:"1767193200"`
	SeatIDs   []string `json:"seat_ids"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		EventID:   o.EventID,
		Status:    string(o.Status),
		Expires:   o.ExpiresAt.Unix(),
		SeatIDs:   o.HeldSeatIDs,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
}

type OrderSummaryResponse struct {
	Order     *OrderResponse  `json:"order"`
	Seats     []*SeatResponse `json:"seats"`
	SeatCount int             `json:"seat_count" example:"3"`
}

type AddSeatRequest struct {
	SeatID string `json:"seat_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

type AutoSelectRequest struct {
	NumSeats            int      `json:"num_seats" validate:"required,gt=0" example:"3"`
	SeatClassPreference []string `json:"seat_class_preference" example:"VIP,GA"`
}

type AutoSelectResponse struct {
	SeatIDs []string `json:"seat_ids"`
}

// Create godoc
// @Summary 注文を作成
// @Description 販売中のイベントに対して期限付きの注文を作成します
// @Tags orders
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param request body CreateOrderRequest true "注文情報"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	o, err := h.orderService.CreateOrder(c.Request().Context(), application.CreateOrderInput{
		UserID: userID, EventID: req.EventID, ExpiresAt: time.Unix(req.Expires, 0),
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// GetByID godoc
// @Summary 注文を取得
// @Tags orders
// @Produce json
// @Param id path string true "注文ID"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(c echo.Context) error {
	o, err := h.orderService.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// GetSummary godoc
// @Summary 注文の概要を取得
// @Description 保持している座席の詳細付きで注文を返します
// @Tags orders
// @Produce json
// @Param id path string true "注文ID"
// @Success 200 {object} OrderSummaryResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /orders/{id}/summary [get]
func (h *OrderHandler) GetSummary(c echo.Context) error {
	sum, err := h.orderService.GetOrderSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	resp := &OrderSummaryResponse{
		Order:     toOrderResponse(sum.Order),
		Seats:     make([]*SeatResponse, len(sum.Seats)),
		SeatCount: sum.SeatCount,
	}
	for i, s := range sum.Seats {
		resp.Seats[i] = toSeatResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListForUser godoc
// @Summary ユーザーの注文一覧を取得
// @Tags orders
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param page query int false "ページ番号" default(1)
// @Param per_page query int false "1ページの件数" default(20)
// @Success 200 {array} OrderResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListForUser(c echo.Context) error {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	page, perPage := pageParams(c)
	orders, err := h.orderService.GetOrdersForUser(c.Request().Context(), userID, page, perPage)
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	return c.JSON(http.StatusOK, resp)
}

// ListAbandoned godoc
// @Summary 放棄済みの注文一覧を取得
// @Tags orders
// @Produce json
// @Param page query int false "ページ番号" default(1)
// @Param per_page query int false "1ページの件数" default(20)
// @Success 200 {array} OrderResponse
// @Router /orders/abandoned [get]
func (h *OrderHandler) ListAbandoned(c echo.Context) error {
	page, perPage := pageParams(c)
	orders, err := h.orderService.FindAbandonedOrders(c.Request().Context(), page, perPage)
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	return c.JSON(http.StatusOK, resp)
}

// Continue godoc
// @Summary 注文の有効期限を延長
// @Description 現在の期限より後ろへの延長のみ受け付けます
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "注文ID"
// @Param request body ContinueOrderRequest true "新しい有効期限"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /orders/{id}/continue [post]
func (h *OrderHandler) Continue(c echo.Context) error {
	var req ContinueOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	o, err := h.orderService.ContinueOrder(c.Request().Context(), c.Param("id"), time.Unix(req.Expires, 0))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// Delete godoc
// @Summary 注文を削除
// @Description 座席を保持していない終了済みの注文を削除します
// @Tags orders
// @Param id path string true "注文ID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "進行中または座席を保持中"
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	if err := h.orderService.DeleteOrder(c.Request().Context(), c.Param("id")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddSeat godoc
// @Summary 座席を仮押さえして注文に追加
// @Description 空き座席のみ追加できます。既に保持している座席は成功扱いです
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "注文ID"
// @Param request body AddSeatRequest true "座席ID"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "座席が空いていない"
// @Router /orders/{id}/seats [post]
func (h *OrderHandler) AddSeat(c echo.Context) error {
	var req AddSeatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	orderID := c.Param("id")
	if err := h.holdService.AddSeatToOrder(c.Request().Context(), orderID, req.SeatID); err != nil {
		return api.DomainError(err)
	}
	o, err := h.orderService.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// RemoveSeat godoc
// @Summary 座席の仮押さえ・予約を解放
// @Tags orders
// @Param id path string true "注文ID"
// @Param seatId path string true "座席ID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "座席がこの注文に保持されていない"
// @Router /orders/{id}/seats/{seatId} [delete]
func (h *OrderHandler) RemoveSeat(c echo.Context) error {
	if err := h.holdService.CancelReservation(c.Request().Context(), c.Param("id"), c.Param("seatId")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Complete godoc
// @Summary 注文を完了し座席を予約確定
// @Description 仮押さえ中の全座席を予約に変換します
// @Tags orders
// @Produce json
// @Param id path string true "注文ID"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "仮押さえ状態が不整合"
// @Router /orders/{id}/complete [post]
func (h *OrderHandler) Complete(c echo.Context) error {
	o, err := h.holdService.CompleteOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// AutoSelect godoc
// @Summary 座席を自動選択して仮押さえ
// @Description 座席クラスの希望順に、できるだけ隣接した座席を選びます
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "注文ID"
// @Param request body AutoSelectRequest true "自動選択条件"
// @Success 200 {object} AutoSelectResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "条件を満たす空き座席がない"
// @Router /orders/{id}/auto-select [post]
func (h *OrderHandler) AutoSelect(c echo.Context) error {
	var req AutoSelectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	seatIDs, err := h.autoSelectService.AutoSelect(c.Request().Context(), application.AutoSelectInput{
		OrderID:             c.Param("id"),
		NumSeats:            req.NumSeats,
		SeatClassPreference: req.SeatClassPreference,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, AutoSelectResponse{SeatIDs: seatIDs})
}
