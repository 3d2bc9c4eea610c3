package handler

import (
	"net/http"
	"strconv"

	"github.com/IcaroDrumond17/onhappy/internal/config"
	"github.com/IcaroDrumond17/onhappy/internal/middleware"
	"github.com/IcaroDrumond17/onhappy/internal/usecase"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	uc *usecase.NotificationUsecase
}

func NewNotificationHandler(uc *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/notifications")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.PATCH("/:id/viewed", h.markViewed)
}

// GET /notifications：自分宛ての通知一覧
func (h *NotificationHandler) list(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	out, err := h.uc.List(c.Request().Context(), caller)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": out})
}

// PATCH /notifications/:id/viewed：既読にする
func (h *NotificationHandler) markViewed(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, MessageResponse{Message: "Notificação não encontrada."})
	}

	out, err := h.uc.MarkViewed(c.Request().Context(), caller, id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DataResponse{Message: "Notificação marcada como visualizada.", Data: out})
}
