package handler

import (
	"net/http"
	"strconv"

	"github.com/IcaroDrumond17/onhappy/internal/config"
	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	"github.com/IcaroDrumond17/onhappy/internal/middleware"
	"github.com/IcaroDrumond17/onhappy/internal/usecase"

	"github.com/labstack/echo/v4"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type DataResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, MessageResponse{Message: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, MessageResponse{Message: "Erro interno."})
}

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	RequestorName string `json:"requestor_name" validate:"required,max=255"`
	Destination   string `json:"destination" validate:"required,max=255"`
	DepartureDate string `json:"departure_date" validate:"required"`
	ReturnDate    string `json:"return_date" validate:"required"`
	Status        string `json:"status" validate:"omitempty"`
}

type OrderUpdateRequest struct {
	RequestorName *string `json:"requestor_name" validate:"omitempty,max=255"`
	Destination   *string `json:"destination" validate:"omitempty,max=255"`
	DepartureDate *string `json:"departure_date"`
	ReturnDate    *string `json:"return_date"`
	Status        *string `json:"status"`
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.GET("/user", h.listMine)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.PATCH("/:id/status", h.updateStatus)
	g.DELETE("/:id", h.remove)
}

// GET /orders（allスコープ、adminだけ全件）
func (h *OrderHandler) list(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	out, err := h.uc.List(c.Request().Context(), caller, usecase.ScopeAll, filterParamsFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Pedidos listados com sucesso.", Data: out})
}

// GET /orders/user（mineスコープ）
func (h *OrderHandler) listMine(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	out, err := h.uc.List(c.Request().Context(), caller, usecase.ScopeMine, filterParamsFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Pedidos do usuário listados com sucesso.", Data: out})
}

func (h *OrderHandler) create(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, MessageResponse{Message: "Dados inválidos."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, MessageResponse{Message: "Dados inválidos."})
	}

	out, err := h.uc.Create(c.Request().Context(), caller, usecase.CreateOrderInput{
		RequestorName: req.RequestorName,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Status:        req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, DataResponse{Message: "Pedido criado com sucesso.", Data: out})
}

func (h *OrderHandler) detail(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, MessageResponse{Message: "Pedido não encontrado."})
	}

	out, err := h.uc.Get(c.Request().Context(), caller, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Pedido encontrado.", Data: out})
}

func (h *OrderHandler) update(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, MessageResponse{Message: "Pedido não encontrado."})
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, MessageResponse{Message: "Dados inválidos."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, MessageResponse{Message: "Dados inválidos."})
	}

	out, err := h.uc.Update(c.Request().Context(), caller, id, usecase.UpdateOrderInput{
		RequestorName: req.RequestorName,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Status:        req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Pedido atualizado com sucesso.", Data: out})
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, MessageResponse{Message: "Pedido não encontrado."})
	}

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, MessageResponse{Message: "Dados inválidos."})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, MessageResponse{Message: "Dados inválidos."})
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), caller, id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "Status atualizado com sucesso.", Data: out})
}

func (h *OrderHandler) remove(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, MessageResponse{Message: "Não autenticado."})
	}

	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, MessageResponse{Message: "Pedido não encontrado."})
	}

	if err := h.uc.Delete(c.Request().Context(), caller, id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Pedido deletado com sucesso."})
}

// クエリパラメータをそのまま詰める。配列は status / status[] の両方を受ける。
func filterParamsFromQuery(c echo.Context) usecase.OrderFilterParams {
	return usecase.OrderFilterParams{
		RequestorName: c.QueryParam("requestor_name"),
		Statuses:      queryArray(c, "status"),
		Destinations:  queryArray(c, "destination"),
		DepartureDate: c.QueryParam("departure_date"),
		ReturnDate:    c.QueryParam("return_date"),
		StartDate:     c.QueryParam("start_date"),
		EndDate:       c.QueryParam("end_date"),
	}
}

func queryArray(c echo.Context, key string) []string {
	params := c.QueryParams()
	vals := append([]string{}, params[key]...)
	vals = append(vals, params[key+"[]"]...)
	return vals
}

func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func getCallerFromContext(c echo.Context) (usecase.Caller, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return usecase.Caller{}, false
	}
	id, ok := v.(int64)
	if !ok {
		return usecase.Caller{}, false
	}

	role, _ := c.Get(middleware.CtxUserRoleKey).(string)
	if role == "" {
		return usecase.Caller{}, false
	}

	return usecase.Caller{ID: id, Role: model.Role(role)}, true
}
