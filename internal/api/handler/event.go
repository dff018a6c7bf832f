package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-reserved-seating/internal/api"
	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/event"
)

type EventHandler struct {
	eventService EventServiceInterface
	holdService  HoldServiceInterface
}

func NewEventHandler(es EventServiceInterface, hs HoldServiceInterface) *EventHandler {
	return &EventHandler{eventService: es, holdService: hs}
}

type CreateEventRequest struct {
	VenueConfigID string `json:"venue_config_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	MaxPeople     int    `json:"max_people" validate:"required,gt=0" example:"1800"`
}

type UpdateEventRequest struct {
	MaxPeople int  `json:"max_people" validate:"required,gt=0" example:"1800"`
	OnSale    bool `json:"on_sale" example:"true"`
}

type EventResponse struct {
	ID            string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID       string `json:"owner_id" example:"user-123"`
	VenueConfigID string `json:"venue_config_id"`
	MaxPeople     int    `json:"max_people" example:"1800"`
	OnSale        bool   `json:"on_sale" example:"true"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toEventResponse(e *event.Event) *EventResponse {
	return &EventResponse{
		ID:            e.ID,
		OwnerID:       e.OwnerID,
		VenueConfigID: e.VenueConfigID,
		MaxPeople:     e.MaxPeople,
		OnSale:        e.OnSale,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
}

type EventSeatResponse struct {
	Seat  *SeatResponse `json:"seat"`
	State string        `json:"state" example:"free"`
}

type EventLayoutResponse struct {
	Seats  []*EventSeatResponse `json:"seats"`
	Tables []*TableResponse     `json:"tables"`
}

type FreeSeatCountResponse struct {
	EventID string `json:"event_id"`
	Count   int    `json:"count" example:"42"`
}

// Create godoc
// @Summary イベントを作成
// @Description 利用可能な会場構成の全座席を販売対象として初期化します
// @Tags events
// @Accept json
// @Produce json
// @Param X-User-ID header string true "オーナーID"
// @Param request body CreateEventRequest true "イベント情報"
// @Success 201 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	e, err := h.eventService.CreateEvent(c.Request().Context(), application.CreateEventInput{
		OwnerID: ownerID, VenueConfigID: req.VenueConfigID, MaxPeople: req.MaxPeople,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toEventResponse(e))
}

// GetByID godoc
// @Summary イベントを取得
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} EventResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetByID(c echo.Context) error {
	e, err := h.eventService.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// List godoc
// @Summary 販売中のイベント一覧を取得
// @Tags events
// @Produce json
// @Param page query int false "ページ番号" default(1)
// @Param per_page query int false "1ページの件数" default(20)
// @Success 200 {array} EventResponse
// @Router /events [get]
func (h *EventHandler) List(c echo.Context) error {
	page, perPage := pageParams(c)
	events, err := h.eventService.GetAllEventsOnSale(c.Request().Context(), page, perPage)
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]*EventResponse, len(events))
	for i, e := range events {
		resp[i] = toEventResponse(e)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary イベントを更新
// @Description 収容人数と販売状態を更新します
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "イベントID"
// @Param request body UpdateEventRequest true "イベント情報"
// @Success 200 {object} EventResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	e, err := h.eventService.UpdateEvent(c.Request().Context(), application.UpdateEventInput{
		ID: c.Param("id"), MaxPeople: req.MaxPeople, OnSale: req.OnSale,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toEventResponse(e))
}

// Cancel godoc
// @Summary イベントをキャンセル
// @Description 販売を停止し、全注文の座席を解放します
// @Tags events
// @Param id path string true "イベントID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id}/cancel [post]
func (h *EventHandler) Cancel(c echo.Context) error {
	if err := h.holdService.CancelEvent(c.Request().Context(), c.Param("id")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete godoc
// @Summary イベントを削除
// @Description 販売停止済みのイベントと座席状態を削除します
// @Tags events
// @Param id path string true "イベントID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "販売中"
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.DeleteEvent(c.Request().Context(), c.Param("id")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetSeatsAndTables godoc
// @Summary イベントの座席・テーブル一覧を取得
// @Description 座席ごとの在庫状態（free/held/reserved）付きで返します
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Param page query int false "ページ番号" default(1)
// @Param per_page query int false "1ページの件数" default(20)
// @Success 200 {object} EventLayoutResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id}/seats [get]
func (h *EventHandler) GetSeatsAndTables(c echo.Context) error {
	page, perPage := pageParams(c)
	l, err := h.eventService.GetSeatsAndTablesForEvent(c.Request().Context(), c.Param("id"), page, perPage)
	if err != nil {
		return api.DomainError(err)
	}
	resp := &EventLayoutResponse{
		Seats:  make([]*EventSeatResponse, len(l.Seats)),
		Tables: make([]*TableResponse, len(l.Tables)),
	}
	for i, es := range l.Seats {
		resp.Seats[i] = &EventSeatResponse{Seat: toSeatResponse(es.Seat), State: string(es.State)}
	}
	for i, t := range l.Tables {
		resp.Tables[i] = toTableResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}

// CountFreeSeats godoc
// @Summary イベントの空き座席数を取得
// @Tags events
// @Produce json
// @Param id path string true "イベントID"
// @Success 200 {object} FreeSeatCountResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /events/{id}/free-seats [get]
func (h *EventHandler) CountFreeSeats(c echo.Context) error {
	eventID := c.Param("id")
	count, err := h.eventService.CountFreeSeats(c.Request().Context(), eventID)
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, FreeSeatCountResponse{EventID: eventID, Count: count})
}

// pageParams はクエリからページ指定を読み取る
func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.QueryParam("per_page"))
	if perPage < 1 {
		perPage = 20
	}
	return page, perPage
}
