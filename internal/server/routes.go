package server

import (
	"net/http"

	"github.com/IcaroDrumond17/onhappy/internal/config"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, handlers ...Routable) {
	//動作確認用
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "API funcionando!",
			"status":  "ok",
		})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	for _, h := range handlers {
		h.RegisterRoutes(e, cfg)
	}
}
