package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-reserved-seating/internal/api"
	"github.com/sanosuguru/go-reserved-seating/internal/application"
	"github.com/sanosuguru/go-reserved-seating/internal/domain/venue"
)

type VenueHandler struct {
	service VenueServiceInterface
}

func NewVenueHandler(s VenueServiceInterface) *VenueHandler {
	return &VenueHandler{service: s}
}

type CreateVenueRequest struct {
	Name      string `json:"name" validate:"required" example:"中野サンプラザ"`
	MaxPeople int    `json:"max_people" validate:"required,gt=0" example:"2000"`
}

type VenueResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OwnerID   string `json:"owner_id" example:"user-123"`
	Name      string `json:"name" example:"中野サンプラザ"`
	MaxPeople int    `json:"max_people" example:"2000"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toVenueResponse(v *venue.Venue) *VenueResponse {
	return &VenueResponse{
		ID:        v.ID,
		OwnerID:   v.OwnerID,
		Name:      v.Name,
		MaxPeople: v.MaxPeople,
		CreatedAt: v.CreatedAt.Format(time.RFC3339),
		UpdatedAt: v.UpdatedAt.Format(time.RFC3339),
	}
}

type VenueConfigurationResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	VenueID   string `json:"venue_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name      string `json:"name" example:"コンサート配置"`
	MaxPeople int    `json:"max_people" example:"1800"`
	Available bool   `json:"available" example:"false"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toConfigurationResponse(c *venue.Configuration) *VenueConfigurationResponse {
	return &VenueConfigurationResponse{
		ID:        c.ID,
		VenueID:   c.VenueID,
		Name:      c.Name,
		MaxPeople: c.MaxPeople,
		Available: c.Available,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 会場を作成
// @Description 新しい会場を作成します
// @Tags venues
// @Accept json
// @Produce json
// @Param X-User-ID header string true "オーナーID"
// @Param request body CreateVenueRequest true "会場情報"
// @Success 201 {object} VenueResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /venues [post]
func (h *VenueHandler) Create(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	var req CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	v, err := h.service.CreateVenue(c.Request().Context(), application.CreateVenueInput{
		OwnerID: ownerID, Name: req.Name, MaxPeople: req.MaxPeople,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toVenueResponse(v))
}

// GetByID godoc
// @Summary 会場を取得
// @Tags venues
// @Produce json
// @Param id path string true "会場ID"
// @Success 200 {object} VenueResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /venues/{id} [get]
func (h *VenueHandler) GetByID(c echo.Context) error {
	v, err := h.service.GetVenue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toVenueResponse(v))
}

// List godoc
// @Summary オーナーの会場一覧を取得
// @Tags venues
// @Produce json
// @Param X-User-ID header string true "オーナーID"
// @Success 200 {array} VenueResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /venues [get]
func (h *VenueHandler) List(c echo.Context) error {
	ownerID := c.Request().Header.Get("X-User-ID")
	if ownerID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	venues, err := h.service.GetAllVenuesByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]*VenueResponse, len(venues))
	for i, v := range venues {
		resp[i] = toVenueResponse(v)
	}
	return c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary 会場を更新
// @Tags venues
// @Accept json
// @Produce json
// @Param id path string true "会場ID"
// @Param request body CreateVenueRequest true "会場情報"
// @Success 200 {object} VenueResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /venues/{id} [put]
func (h *VenueHandler) Update(c echo.Context) error {
	var req CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	v, err := h.service.UpdateVenue(c.Request().Context(), application.UpdateVenueInput{
		ID: c.Param("id"), Name: req.Name, MaxPeople: req.MaxPeople,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toVenueResponse(v))
}

// Delete godoc
// @Summary 会場を削除
// @Description 会場構成が残っていない会場を削除します
// @Tags venues
// @Param id path string true "会場ID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "会場構成が残っている"
// @Router /venues/{id} [delete]
func (h *VenueHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteVenue(c.Request().Context(), c.Param("id")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type CreateVenueConfigurationRequest struct {
	Name      string `json:"name" validate:"required" example:"コンサート配置"`
	MaxPeople int    `json:"max_people" validate:"required,gt=0" example:"1800"`
}

// CreateConfiguration godoc
// @Summary 会場構成を作成
// @Description 新しい会場構成を作成します（作成直後は利用不可）
// @Tags venue-configurations
// @Accept json
// @Produce json
// @Param id path string true "会場ID"
// @Param request body CreateVenueConfigurationRequest true "会場構成情報"
// @Success 201 {object} VenueConfigurationResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /venues/{id}/configurations [post]
func (h *VenueHandler) CreateConfiguration(c echo.Context) error {
	var req CreateVenueConfigurationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cfg, err := h.service.CreateVenueConfiguration(c.Request().Context(), application.CreateVenueConfigurationInput{
		VenueID: c.Param("id"), Name: req.Name, MaxPeople: req.MaxPeople,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusCreated, toConfigurationResponse(cfg))
}

// GetConfiguration godoc
// @Summary 会場構成を取得
// @Tags venue-configurations
// @Produce json
// @Param id path string true "会場構成ID"
// @Success 200 {object} VenueConfigurationResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /configurations/{id} [get]
func (h *VenueHandler) GetConfiguration(c echo.Context) error {
	cfg, err := h.service.GetVenueConfiguration(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toConfigurationResponse(cfg))
}

// ListConfigurations godoc
// @Summary 会場の構成一覧を取得
// @Tags venue-configurations
// @Produce json
// @Param id path string true "会場ID"
// @Success 200 {array} VenueConfigurationResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /venues/{id}/configurations [get]
func (h *VenueHandler) ListConfigurations(c echo.Context) error {
	configs, err := h.service.GetVenueConfigurations(c.Request().Context(), c.Param("id"))
	if err != nil {
		return api.DomainError(err)
	}
	resp := make([]*VenueConfigurationResponse, len(configs))
	for i, cfg := range configs {
		resp[i] = toConfigurationResponse(cfg)
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateConfiguration godoc
// @Summary 会場構成を更新
// @Tags venue-configurations
// @Accept json
// @Produce json
// @Param id path string true "会場構成ID"
// @Param request body CreateVenueConfigurationRequest true "会場構成情報"
// @Success 200 {object} VenueConfigurationResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /configurations/{id} [put]
func (h *VenueHandler) UpdateConfiguration(c echo.Context) error {
	var req CreateVenueConfigurationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cfg, err := h.service.UpdateVenueConfiguration(c.Request().Context(), application.UpdateVenueConfigurationInput{
		ID: c.Param("id"), Name: req.Name, MaxPeople: req.MaxPeople,
	})
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toConfigurationResponse(cfg))
}

type UpdateAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required" example:"true"`
}

// UpdateAvailability godoc
// @Summary 会場構成の利用可否を切り替え
// @Description 販売中のイベントが参照している間は利用不可へ戻せません
// @Tags venue-configurations
// @Accept json
// @Produce json
// @Param id path string true "会場構成ID"
// @Param request body UpdateAvailabilityRequest true "利用可否"
// @Success 200 {object} VenueConfigurationResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "販売中のイベントが参照中"
// @Router /configurations/{id}/availability [put]
func (h *VenueHandler) UpdateAvailability(c echo.Context) error {
	var req UpdateAvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cfg, err := h.service.UpdateVenueConfigurationAvailability(c.Request().Context(), c.Param("id"), *req.Available)
	if err != nil {
		return api.DomainError(err)
	}
	return c.JSON(http.StatusOK, toConfigurationResponse(cfg))
}

// DeleteConfiguration godoc
// @Summary 会場構成を削除
// @Description 利用不可かつイベントが参照していない構成を削除します
// @Tags venue-configurations
// @Param id path string true "会場構成ID"
// @Success 204
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse "利用可能またはイベントが参照中"
// @Router /configurations/{id} [delete]
func (h *VenueHandler) DeleteConfiguration(c echo.Context) error {
	if err := h.service.DeleteVenueConfiguration(c.Request().Context(), c.Param("id")); err != nil {
		return api.DomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
