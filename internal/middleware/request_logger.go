package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// アクセスログ用ミドルウェア。
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("request",
				slog.Int("status", c.Response().Status),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("remote", c.RealIP()),
				slog.String("duration", time.Since(start).String()),
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return nil
		}
	}
}
