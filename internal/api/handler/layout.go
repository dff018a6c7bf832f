package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-reserved-seating/internal/api"
	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/layout"
)

type LayoutHandler struct {
	service LayoutServiceInterface
}

func NewLayoutHandler(s LayoutServiceInterface) *LayoutHandler {
	return &LayoutHandler{service: s}
}

type SeatRequest struct {
	Name      string          `json:"name" validate:"required" example:"A-12"`
	SeatClass string          `json:"seat_class" validate:"required" example:"VIP"`
	NextTo    []string        `json:"next_to" example:"seat-A11,seat-A13"`
	TableID   *string         `json:"table_id,omitempty"`
	Geometry  json.RawMessage `json:"geom,omitempty"`
}

type SeatResponse struct {
	ID            string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	VenueConfigID string          `json:"venue_config_id"`
	Name          string          `json:"name" example:"A-12"`
	SeatClass     string          `json:"seat_class" example:"VIP"`
	NextTo        []string        `json:"next_to"`
	TableID       *string         `json:"table_id,omitempty"`
	Geometry      json.RawMessage `json:"geom,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func toSeatResponse(s *layout.Seat) *SeatResponse {
	return &SeatResponse{
		ID:            s.ID,
		VenueConfigID: s.VenueConfigID,
		Name:          s.Name,
		SeatClass:     s.SeatClass,
		NextTo:        s.NextTo,
		TableID:       s.TableID,
		Geometry:      rawJSON(s.Geometry),
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

type TableRequest struct {
	MinSeats int             `json:"min_seats" validate:"required,gt=0" example:"2"`
	MaxSeats int             `json:"max_seats" validate:"required,gt=0" example:"6"`
	Geometry json.RawMessage `json:"geom,omitempty"`
}

type TableResponse struct {
	ID            string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	VenueConfigID string          `json:"venue_config_id"`
	MinSeats      int             `json:"min_seats" example:"2"`
	MaxSeats      int             `json:"max_seats" example:"6"`
	Geometry      json.RawMessage `json:"geom,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func toTableResponse(t *layout.Table) *TableResponse {
	return &TableResponse{
		ID:            t.ID,
		VenueConfigID: t.VenueConfigID,
		MinSeats:      t.MinSeats,
		MaxSeats:      t.MaxSeats,
		Geometry:      rawJSON(t.Geometry),
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateSeat godoc
// @Summary 座席を作成
// @Description 利用不可状態の会場構成に座席を追加します
// @Tags seats
// @Accept json
// @Produce json
// @Param id path string true "会場構成ID"
// @Param request body SeatRequest true "座席情報"
// @Success 201 {object} SeatResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "会場構成が利用可能状態"
// @Router /configurations/{id}/seats [post]
func (h *LayoutHandler) CreateSeat(c echo.Context) error {
	var req SeatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	s, err := h.service.CreateSeat(c.Request().Context(), application.CreateSeatInput{
		VenueConfigID: c.Param("id"),
		Name:          req.Name,
		SeatClass:     req.SeatClass,
		NextTo:        req.NextTo,
		TableID:       req.TableID,
		Geometry:      req.Geometry,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toSeatResponse(s))
}

// GetSeat godoc
// @Summary 座席を取得
// @Tags seats
// @Produce json
// @Param id path string true "座席ID"
// @Success 200 {object} SeatResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /seats/{id} [get]
func (h *LayoutHandler) GetSeat(c echo.Context) error {
	s, err := h.service.GetSeat(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toSeatResponse(s))
}

// ListSeats godoc
// @Summary 会場構成の座席一覧を取得
// @Tags seats
// @Produce json
// @Param id path string true "会場構成ID"
// @Success 200 {array} SeatResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /configurations/{id}/seats [get]
func (h *LayoutHandler) ListSeats(c echo.Context) error {
	seats, err := h.service.GetSeatsForConfiguration(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]*SeatResponse, len(seats))
	for i, s := range seats {
		resp[i] = toSeatResponse(s)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateSeat godoc
// @Summary 座席を更新
// @Description 隣接関係は渡された内容で置き換わります
// @Tags seats
// @Accept json
// @Produce json
// @Param id path string true "座席ID"
// @Param request body SeatRequest true "座席情報"
// @Success 200 {object} SeatResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /seats/{id} [put]
func (h *LayoutHandler) UpdateSeat(c echo.Context) error {
	var req SeatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	s, err := h.service.UpdateSeat(c.Request().Context(), application.UpdateSeatInput{
		ID:        c.Param("id"),
		Name:      req.Name,
		SeatClass: req.SeatClass,
		NextTo:    req.NextTo,
		TableID:   req.TableID,
		Geometry:  req.Geometry,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toSeatResponse(s))
}

// DeleteSeat godoc
// @Summary 座席を削除
// @Tags seats
// @Param id path string true "座席ID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "会場構成が利用可能状態"
// @Router /seats/{id} [delete]
func (h *LayoutHandler) DeleteSeat(c echo.Context) error {
	if err := h.service.DeleteSeat(c.Request().Context(), c.Param("id")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateTable godoc
// @Summary テーブルを作成
// @Tags tables
// @Accept json
// @Produce json
// @Param id path string true "会場構成ID"
// @Param request body TableRequest true "テーブル情報"
// @Success 201 {object} TableResponse
// @Failure 400 {object} api.ErrorResponse
// @Router /configurations/{id}/tables [post]
func (h *LayoutHandler) CreateTable(c echo.Context) error {
	var req TableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t, err := h.service.CreateTable(c.Request().Context(), application.CreateTableInput{
		VenueConfigID: c.Param("id"),
		MinSeats:      req.MinSeats,
		MaxSeats:      req.MaxSeats,
		Geometry:      req.Geometry,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toTableResponse(t))
}

// GetTable godoc
// @Summary テーブルを取得
// @Tags tables
// @Produce json
// @Param id path string true "テーブルID"
// @Success 200 {object} TableResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /tables/{id} [get]
func (h *LayoutHandler) GetTable(c echo.Context) error {
	t, err := h.service.GetTable(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toTableResponse(t))
}

// ListTables godoc
// @Summary 会場構成のテーブル一覧を取得
// @Tags tables
// @Produce json
// @Param id path string true "会場構成ID"
// @Success 200 {array} TableResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /configurations/{id}/tables [get]
func (h *LayoutHandler) ListTables(c echo.Context) error {
	tables, err := h.service.GetTablesForConfiguration(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]*TableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateTable godoc
// @Summary テーブルを更新
// @Tags tables
// @Accept json
// @Produce json
// @Param id path string true "テーブルID"
// @Param request body TableRequest true "テーブル情報"
// @Success 200 {object} TableResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /tables/{id} [put]
func (h *LayoutHandler) UpdateTable(c echo.Context) error {
	var req TableRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t, err := h.service.UpdateTable(c.Request().Context(), application.UpdateTableInput{
		ID:       c.Param("id"),
		MinSeats: req.MinSeats,
		MaxSeats: req.MaxSeats,
		Geometry: req.Geometry,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toTableResponse(t))
}

// DeleteTable godoc
// @Summary テーブルを削除
// @Description 座席が参照していないテーブルを削除します
// @Tags tables
// @Param id path string true "テーブルID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "座席が参照中"
// @Router /tables/{id} [delete]
func (h *LayoutHandler) DeleteTable(c echo.Context) error {
	if err := h.service.DeleteTable(c.Request().Context(), c.Param("id")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
