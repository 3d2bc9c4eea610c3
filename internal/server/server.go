package server

import (
	"log/slog"
	"net/http"

	"github.com/IcaroDrumond17/onhappy/internal/config"
	appmw "github.com/IcaroDrumond17/onhappy/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// echoに渡すvalidator/v10ラッパ
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Routable はルート登録できるhandlerの約束。
type Routable interface {
	RegisterRoutes(e *echo.Echo, cfg config.Config)
}

func New(cfg config.Config, logger *slog.Logger, handlers ...Routable) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(appmw.RequestLogger(logger))
	e.Use(appmw.Metrics())

	RegisterRoutes(e, cfg, handlers...)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
