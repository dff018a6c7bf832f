package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator はリクエストボディの構造体タグ検証を行う
type RequestValidator struct {
	validate *validator.Validate
}

// NewValidator はEchoに設定するバリデーターを作成する
func NewValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate は構造体タグに基づく検証を実行し、違反を400として返す
func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
