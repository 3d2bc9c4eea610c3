package handler

import (
	"errors"
	"net/http"

	"github.com/IcaroDrumond17/onhappy/internal/config"
	"github.com/IcaroDrumond17/onhappy/internal/middleware"
	"github.com/IcaroDrumond17/onhappy/internal/repository"
	"github.com/IcaroDrumond17/onhappy/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DIコンストラクタ
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success     bool        `json:"success"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        interface{} `json:"user"`
}

type authFailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type meResponse struct {
	Success bool        `json:"success"`
	User    interface{} `json:"user"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/login", h.login)

	g := e.Group("/me")
	g.Use(middleware.AuthJWT(cfg))
	g.GET("", h.me)
}

// POST /login：認証してJWTを返す
func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, authFailResponse{Success: false, Message: "E-mail ou senha inválidas!"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, authFailResponse{Success: false, Message: "E-mail ou senha inválidas!"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if err == usecase.ErrInvalidCredentials {
			return c.JSON(http.StatusUnauthorized, authFailResponse{Success: false, Message: "E-mail ou senha inválidas!"})
		}
		return c.JSON(http.StatusInternalServerError, authFailResponse{
			Success: false,
			Message: "Erro interno ao tentar autenticar. Tente novamente mais tarde.",
		})
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success:     true,
		AccessToken: out.Token,
		TokenType:   "bearer",
		ExpiresIn:   out.ExpiresIn,
		User:        out.User,
	})
}

// GET /me：認証済みユーザー自身を返す
func (h *AuthHandler) me(c echo.Context) error {
	caller, ok := getCallerFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, authFailResponse{Success: false, Message: "Usuário não autenticado."})
	}

	user, err := h.uc.Me(c.Request().Context(), caller.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, authFailResponse{Success: false, Message: "Usuário não autenticado."})
		}
		return c.JSON(http.StatusInternalServerError, authFailResponse{
			Success: false,
			Message: "Erro interno ao recuperar dados do usuário.",
		})
	}

	return c.JSON(http.StatusOK, meResponse{Success: true, User: user})
}
